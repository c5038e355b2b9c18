package pipeline

import (
	"errors"
	"strings"
	"syscall"
	"testing"

	"golang.org/x/sys/unix"

	"flacsmith/internal/services"
)

func okStage(name string) StageResult {
	return StageResult{Command: Command{Program: name}}
}

func failedStage(name string, code int, stderr string) StageResult {
	return StageResult{Command: Command{Program: name}, ExitCode: code, Stderr: []byte(stderr)}
}

func sigpipeStage(name string) StageResult {
	return StageResult{Command: Command{Program: name}, ExitCode: -1, Signal: syscall.Signal(unix.SIGPIPE)}
}

func TestDiagnoseAllClean(t *testing.T) {
	t.Parallel()
	if err := Diagnose([]StageResult{okStage("flac"), okStage("lame")}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestDiagnoseEarliestGenuineFailureWins(t *testing.T) {
	t.Parallel()
	results := []StageResult{
		okStage("flac"),
		failedStage("sox", 2, "sox: rate out of range"),
		failedStage("lame", 1, "lame: no input"),
	}
	err := Diagnose(results)
	if !errors.Is(err, services.ErrTranscode) {
		t.Fatalf("expected ErrTranscode, got %v", err)
	}
	if !strings.Contains(err.Error(), "sox: rate out of range") {
		t.Fatalf("diagnosis should name the earliest failure, got %q", err.Error())
	}
}

func TestDiagnoseGenuineFailureBeatsBrokenPipe(t *testing.T) {
	t.Parallel()
	results := []StageResult{
		sigpipeStage("flac"),
		failedStage("lame", 1, "lame: corrupt stream"),
	}
	err := Diagnose(results)
	if err == nil || !strings.Contains(err.Error(), "corrupt stream") {
		t.Fatalf("genuine failure should win over SIGPIPE, got %v", err)
	}
}

func TestDiagnoseBrokenPipeOnlyIsLastResort(t *testing.T) {
	t.Parallel()
	results := []StageResult{
		sigpipeStage("flac"),
		okStage("lame"),
	}
	err := Diagnose(results)
	if !errors.Is(err, services.ErrTranscode) {
		t.Fatalf("expected ErrTranscode, got %v", err)
	}
	if !strings.Contains(err.Error(), "SIGPIPE") {
		t.Fatalf("expected SIGPIPE mention, got %q", err.Error())
	}
}

func TestDiagnoseEmptyResults(t *testing.T) {
	t.Parallel()
	if err := Diagnose(nil); err != nil {
		t.Fatalf("expected nil for empty results, got %v", err)
	}
}
