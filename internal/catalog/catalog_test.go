package catalog

import "testing"

func TestFormatIdentityIgnoresDescriptiveFields(t *testing.T) {
	t.Parallel()
	a := Format{Name: "MP3", Encoding: "320", LongName: "MP3 320"}
	b := Format{Name: "MP3", Encoding: "320", LongName: "a different label", Encoder: &Encoder{Program: "lame"}}
	if !a.Equal(b) {
		t.Fatal("formats with matching name and encoding must be equal")
	}
	if a.Key() != b.Key() {
		t.Fatal("map keys must be consistent with equality")
	}
	c := Format{Name: "MP3", Encoding: "V0 (VBR)"}
	if a.Equal(c) {
		t.Fatal("formats with differing encodings must not be equal")
	}
}

func TestLookupByLongName(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"MP3 320": "320",
		"MP3 V0":  "V0 (VBR)",
		"mp3 v2":  "V2 (VBR)",
		"FLAC":    "Lossless",
	}
	for name, wantEncoding := range cases {
		f, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		if f.Encoding != wantEncoding {
			t.Fatalf("Lookup(%q) = encoding %q, want %q", name, f.Encoding, wantEncoding)
		}
		if f.Encoder == nil {
			t.Fatalf("Lookup(%q) returned format without encoder", name)
		}
	}
}

func TestLookupUnknownFormat(t *testing.T) {
	t.Parallel()
	if _, err := Lookup("OGG Vorbis"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestEncoderOptArgs(t *testing.T) {
	t.Parallel()
	f, err := Lookup("MP3 320")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	args := f.Encoder.OptArgs()
	want := []string{"-h", "-b", "320", "--ignore-tag-errors"}
	if len(args) != len(want) {
		t.Fatalf("unexpected args %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestLosslessClassification(t *testing.T) {
	t.Parallel()
	flac, _ := Lookup("FLAC")
	mp3, _ := Lookup("MP3 V0")
	if !flac.Lossless() || mp3.Lossless() {
		t.Fatal("lossless classification incorrect")
	}
}
