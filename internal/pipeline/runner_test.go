package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"flacsmith/internal/services"
)

func sh(script string) Command {
	return Command{Program: "sh", Args: []string{"-c", script}}
}

func TestRunEmptySpecIsNoOp(t *testing.T) {
	t.Parallel()
	results, err := NewRunner(nil).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestRunCollectsEveryStageStatus(t *testing.T) {
	t.Parallel()
	spec := Spec{
		sh("echo upstream-noise >&2; echo data"),
		sh("cat >/dev/null"),
	}
	results, err := NewRunner(nil).Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Failed() || results[1].Failed() {
		t.Fatalf("expected clean run, got %+v", results)
	}
	if !strings.Contains(string(results[0].Stderr), "upstream-noise") {
		t.Fatalf("stderr of first stage not captured: %q", results[0].Stderr)
	}
}

func TestRunMiddleStageFailureIsVisible(t *testing.T) {
	t.Parallel()
	spec := Spec{
		sh("echo data"),
		sh("echo middle broke >&2; exit 3"),
		sh("cat >/dev/null; exit 0"),
	}
	results, err := NewRunner(nil).Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results[0].Failed() && !results[0].BrokenPipe() {
		t.Fatalf("first stage should not report a genuine failure: %+v", results[0])
	}
	if results[1].ExitCode != 3 {
		t.Fatalf("middle stage exit code = %d, want 3", results[1].ExitCode)
	}
	if results[2].Failed() {
		t.Fatalf("last stage should succeed, got %+v", results[2])
	}

	diagErr := Diagnose(results)
	if !errors.Is(diagErr, services.ErrTranscode) {
		t.Fatalf("expected ErrTranscode, got %v", diagErr)
	}
	if !strings.Contains(diagErr.Error(), "middle broke") {
		t.Fatalf("diagnosis %q does not identify the middle stage", diagErr.Error())
	}
}

func TestRunUpstreamKilledBySIGPIPE(t *testing.T) {
	t.Parallel()
	spec := Spec{
		{Program: "yes", Args: nil},
		sh("head -c 16 >/dev/null; exit 0"),
	}
	results, err := NewRunner(nil).Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !results[0].BrokenPipe() {
		t.Fatalf("expected SIGPIPE on upstream stage, got %+v", results[0])
	}
	if results[1].Failed() {
		t.Fatalf("downstream stage should succeed, got %+v", results[1])
	}
}

func TestRunSpawnFailure(t *testing.T) {
	t.Parallel()
	spec := Spec{
		{Program: "flacsmith-no-such-binary", Args: []string{"x"}},
		sh("cat >/dev/null"),
	}
	_, err := NewRunner(nil).Run(context.Background(), spec)
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected ErrIO for spawn failure, got %v", err)
	}
}
