// Package testsupport provides helpers for constructing test fixtures:
// synthetic FLAC files, config values, and stub executables.
package testsupport

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// FLACSpec describes the stream parameters of a synthetic FLAC fixture.
type FLACSpec struct {
	SampleRate    int
	BitsPerSample int
	Channels      int
	// Tags become a Vorbis comment block when non-empty. Order is preserved.
	Tags [][2]string
}

// WriteFLAC writes a metadata-only FLAC file (STREAMINFO plus an optional
// Vorbis comment block) to path. The file carries no audio frames, which is
// sufficient for inspection and tagging tests.
func WriteFLAC(t testing.TB, path string, spec FLACSpec) {
	t.Helper()
	if spec.SampleRate == 0 {
		spec.SampleRate = 44100
	}
	if spec.BitsPerSample == 0 {
		spec.BitsPerSample = 16
	}
	if spec.Channels == 0 {
		spec.Channels = 2
	}

	data := []byte("fLaC")
	streamInfo := buildStreamInfo(spec)
	lastBlock := len(spec.Tags) == 0
	data = append(data, blockHeader(0, len(streamInfo), lastBlock)...)
	data = append(data, streamInfo...)
	if len(spec.Tags) > 0 {
		comment := buildVorbisComment(spec.Tags)
		data = append(data, blockHeader(4, len(comment), true)...)
		data = append(data, comment...)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write flac fixture: %v", err)
	}
}

func blockHeader(blockType byte, length int, last bool) []byte {
	first := blockType
	if last {
		first |= 0x80
	}
	return []byte{first, byte(length >> 16), byte(length >> 8), byte(length)}
}

func buildStreamInfo(spec FLACSpec) []byte {
	body := make([]byte, 0, 34)
	// min/max block size
	body = append(body, 0x10, 0x00, 0x10, 0x00)
	// min/max frame size (unknown)
	body = append(body, 0, 0, 0, 0, 0, 0)
	// sample rate (20 bits), channels-1 (3), bps-1 (5), total samples (36)
	packed := uint64(spec.SampleRate)<<44 |
		uint64(spec.Channels-1)<<41 |
		uint64(spec.BitsPerSample-1)<<36
	var group [8]byte
	binary.BigEndian.PutUint64(group[:], packed)
	body = append(body, group[:]...)
	// md5 of the unencoded audio (zero: unknown)
	body = append(body, make([]byte, 16)...)
	return body
}

func buildVorbisComment(tags [][2]string) []byte {
	const vendor = "testsupport"
	body := make([]byte, 0, 64)
	body = appendLenPrefixed(body, vendor)
	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(tags)))
	body = append(body, count[:]...)
	for _, tag := range tags {
		body = appendLenPrefixed(body, tag[0]+"="+tag[1])
	}
	return body
}

func appendLenPrefixed(dst []byte, s string) []byte {
	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(s)))
	dst = append(dst, length[:]...)
	return append(dst, s...)
}

// WriteStub installs an executable shell script named name into dir and
// returns its path. The script body runs under sh.
func WriteStub(t testing.TB, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}
