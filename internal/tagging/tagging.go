// Package tagging propagates Vorbis comments from lossless sources onto
// transcoded files and verifies that the required fields survived.
package tagging

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/meta"

	"flacsmith/internal/logging"
	"flacsmith/internal/services"
)

// requiredTags are the Vorbis comment fields a transcoded file must carry.
var requiredTags = []string{"artist", "album", "title", "tracknumber"}

// Tagger copies and verifies metadata. MP3 files are written in-process;
// FLAC files are rewritten through metaflac.
type Tagger struct {
	metaflac string
	logger   *slog.Logger
}

// New constructs a Tagger that shells out to the given metaflac binary for
// FLAC targets. A nil logger disables logging.
func New(metaflacBinary string, logger *slog.Logger) *Tagger {
	return &Tagger{
		metaflac: metaflacBinary,
		logger:   logging.NewComponentLogger(logger, "tagging"),
	}
}

// CopyTags transfers the Vorbis comments of src onto dst. The destination
// format is derived from its extension.
func (t *Tagger) CopyTags(src, dst string) error {
	tags, err := readVorbisComments(src)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(dst)) {
	case ".mp3":
		return writeID3(dst, tags)
	case ".flac":
		return t.writeFLACTags(dst, tags)
	default:
		return services.Wrap(
			services.ErrTranscode,
			"tagging",
			"copy tags",
			fmt.Sprintf("unsupported destination type %s", filepath.Ext(dst)),
			nil,
		)
	}
}

// CheckTags reports whether dst carries artist, album, title and track number
// metadata, with a reason naming the first missing field.
func (t *Tagger) CheckTags(dst string) (bool, string, error) {
	var present map[string]string
	var err error
	switch strings.ToLower(filepath.Ext(dst)) {
	case ".mp3":
		present, err = readID3(dst)
	case ".flac":
		present, err = readVorbisComments(dst)
	default:
		return false, "", services.Wrap(
			services.ErrTranscode,
			"tagging",
			"check tags",
			fmt.Sprintf("unsupported file type %s", filepath.Ext(dst)),
			nil,
		)
	}
	if err != nil {
		return false, "", err
	}
	for _, field := range requiredTags {
		if strings.TrimSpace(present[field]) == "" {
			return false, fmt.Sprintf("%s is missing tag %s", dst, field), nil
		}
	}
	return true, "", nil
}

// readVorbisComments parses the Vorbis comment block of a FLAC file into a
// map keyed by lowercased field name. Files without a comment block yield an
// empty map.
func readVorbisComments(path string) (map[string]string, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "tagging", "parse flac metadata", path, err)
	}
	defer stream.Close()

	tags := make(map[string]string)
	for _, block := range stream.Blocks {
		comment, ok := block.Body.(*meta.VorbisComment)
		if !ok {
			continue
		}
		for _, tag := range comment.Tags {
			key := strings.ToLower(tag[0])
			if _, exists := tags[key]; !exists {
				tags[key] = tag[1]
			}
		}
	}
	return tags, nil
}

func writeID3(path string, tags map[string]string) error {
	file, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return services.Wrap(services.ErrIO, "tagging", "open mp3", path, err)
	}
	defer file.Close()

	if v := tags["artist"]; v != "" {
		file.SetArtist(v)
	}
	if v := tags["album"]; v != "" {
		file.SetAlbum(v)
	}
	if v := tags["title"]; v != "" {
		file.SetTitle(v)
	}
	if v := tags["genre"]; v != "" {
		file.SetGenre(v)
	}
	if v := tags["date"]; v != "" {
		file.AddTextFrame(file.CommonID("Year"), file.DefaultEncoding(), v)
	}
	if v := tags["tracknumber"]; v != "" {
		file.AddTextFrame(file.CommonID("Track number/Position in set"), file.DefaultEncoding(), v)
	}
	if err := file.Save(); err != nil {
		return services.Wrap(services.ErrIO, "tagging", "write id3 tags", path, err)
	}
	return nil
}

func readID3(path string) (map[string]string, error) {
	file, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "tagging", "parse id3 tags", path, err)
	}
	defer file.Close()

	tags := map[string]string{
		"artist": file.Artist(),
		"album":  file.Album(),
		"title":  file.Title(),
		"genre":  file.Genre(),
	}
	if frame := file.GetTextFrame(file.CommonID("Track number/Position in set")); frame.Text != "" {
		tags["tracknumber"] = frame.Text
	}
	if frame := file.GetTextFrame(file.CommonID("Year")); frame.Text != "" {
		tags["date"] = frame.Text
	}
	return tags, nil
}

// writeFLACTags replaces the Vorbis comments of a FLAC file through metaflac.
func (t *Tagger) writeFLACTags(path string, tags map[string]string) error {
	args := []string{"--remove-all-tags"}
	for key, value := range tags {
		args = append(args, fmt.Sprintf("--set-tag=%s=%s", strings.ToUpper(key), value))
	}
	args = append(args, path)

	cmd := exec.Command(t.metaflac, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return services.Wrap(services.ErrExternalTool, "tagging", "metaflac", detail, err)
	}
	t.logger.Debug("rewrote flac tags", logging.String("path", path), logging.Int("tags", len(tags)))
	return nil
}
