package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"flacsmith/internal/services"
)

func TestConsoleHandlerIncludesComponentAndFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger = NewComponentLogger(logger, "packager")
	logger.Info("release packaged", String("dest", "/tmp/out"))
	line := buf.String()
	if !strings.Contains(line, "packager: release packaged") {
		t.Fatalf("missing component prefix: %q", line)
	}
	if !strings.Contains(line, "dest=/tmp/out") {
		t.Fatalf("missing attribute: %q", line)
	}
}

func TestWithContextAddsJobFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := services.WithJobID(context.Background(), "abc-123")
	ctx = services.WithStage(ctx, "transcoding")
	WithContext(ctx, logger).Debug("pipeline started")
	line := buf.String()
	if !strings.Contains(line, "job_id=abc-123") || !strings.Contains(line, "stage=transcoding") {
		t.Fatalf("missing context fields: %q", line)
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	t.Parallel()
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestJSONFormatAccepted(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Fatalf("unexpected json output: %q", buf.String())
	}
}
