package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	t.Parallel()
	err := Wrap(ErrTranscode, "transcode", "run pipeline", "flac decode failed", errors.New("exit status 1"))
	if !errors.Is(err, ErrTranscode) {
		t.Fatalf("expected ErrTranscode marker, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"transcode", "run pipeline", "flac decode failed", "exit status 1"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
}

func TestWrapNilMarkerDefaults(t *testing.T) {
	t.Parallel()
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTranscode) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	t.Parallel()
	err := Wrap(ErrDownmixUnsupported, "transcode", "inspect", "3 channels", nil)
	if errors.Is(err, ErrUnknownSampleRate) || errors.Is(err, ErrTranscode) {
		t.Fatalf("marker leaked into unrelated sentinels: %v", err)
	}
	if !errors.Is(err, ErrDownmixUnsupported) {
		t.Fatalf("expected ErrDownmixUnsupported, got %v", err)
	}
}
