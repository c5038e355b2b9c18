// Package catalog defines the static target-format and encoder descriptors
// consumed by the transcode engine.
package catalog

import (
	"fmt"
	"strings"
)

// Encoder describes how to invoke an external encoder for a target format.
type Encoder struct {
	// Program is the encoder executable identifier (e.g. "lame", "flac").
	Program string
	// Ext is the output file extension including the leading dot.
	Ext string
	// Opts is the option string inserted verbatim into the encode command.
	Opts string
}

// OptArgs splits the option string into argv elements.
func (e Encoder) OptArgs() []string {
	return strings.Fields(e.Opts)
}

// Format describes a target audio format. A Format without an Encoder is
// descriptive only and cannot be transcoded to.
type Format struct {
	// Name is the short format name (e.g. "MP3", "FLAC").
	Name string
	// Encoding is the quality label (e.g. "320", "V0 (VBR)", "Lossless").
	Encoding string
	// LongName is the human-readable label used in release directory names.
	LongName string
	// Encoder drives command construction; nil for descriptive formats.
	Encoder *Encoder
}

// Key is the comparable identity of a Format: name and encoding label only.
// Descriptive fields do not participate in equality, so Key values are safe
// to use as map keys wherever format identity matters.
type Key struct {
	Name     string
	Encoding string
}

// Key returns the comparable identity of the format.
func (f Format) Key() Key {
	return Key{Name: f.Name, Encoding: f.Encoding}
}

// Equal reports whether two formats share the same identity.
func (f Format) Equal(other Format) bool {
	return f.Key() == other.Key()
}

// Lossless reports whether the format represents lossless audio.
func (f Format) Lossless() bool {
	return f.Name == "FLAC"
}

var encoders = map[string]Encoder{
	"320":  {Program: "lame", Ext: ".mp3", Opts: "-h -b 320 --ignore-tag-errors"},
	"V0":   {Program: "lame", Ext: ".mp3", Opts: "-V 0 --vbr-new --ignore-tag-errors"},
	"V2":   {Program: "lame", Ext: ".mp3", Opts: "-V 2 --vbr-new --ignore-tag-errors"},
	"FLAC": {Program: "flac", Ext: ".flac", Opts: "--best"},
}

var formats = []Format{
	{Name: "FLAC", Encoding: "Lossless", LongName: "FLAC", Encoder: encoderRef("FLAC")},
	{Name: "MP3", Encoding: "320", LongName: "MP3 320", Encoder: encoderRef("320")},
	{Name: "MP3", Encoding: "V0 (VBR)", LongName: "MP3 V0", Encoder: encoderRef("V0")},
	{Name: "MP3", Encoding: "V2 (VBR)", LongName: "MP3 V2", Encoder: encoderRef("V2")},
}

func encoderRef(name string) *Encoder {
	enc := encoders[name]
	return &enc
}

// Lookup resolves a target format by its long name (e.g. "MP3 V0", "FLAC").
func Lookup(name string) (Format, error) {
	trimmed := strings.TrimSpace(name)
	for _, f := range formats {
		if strings.EqualFold(f.LongName, trimmed) {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("unknown target format %q", name)
}

// Formats returns all known target formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}
