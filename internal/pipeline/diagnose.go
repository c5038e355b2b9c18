package pipeline

import (
	"strconv"
	"strings"

	"flacsmith/internal/services"
)

// Diagnose inspects a complete pipeline result set and returns the root-cause
// failure, or nil when every stage succeeded.
//
// Policy: the earliest stage with a genuine failure (non-zero exit or a
// signal other than SIGPIPE) is the root cause. SIGPIPE terminations are
// backpressure noise caused by a downstream stage exiting early, so they are
// reported only when no genuine failure exists anywhere in the chain.
func Diagnose(results []StageResult) error {
	var brokenPipe *StageResult
	for i := range results {
		result := &results[i]
		if !result.Failed() {
			continue
		}
		if result.BrokenPipe() {
			if brokenPipe == nil {
				brokenPipe = result
			}
			continue
		}
		return services.Wrap(
			services.ErrTranscode,
			"pipeline",
			result.Command.String(),
			failureDetail(result),
			nil,
		)
	}
	if brokenPipe != nil {
		return services.Wrap(
			services.ErrTranscode,
			"pipeline",
			brokenPipe.Command.String(),
			"terminated by SIGPIPE with no downstream failure",
			nil,
		)
	}
	return nil
}

func failureDetail(result *StageResult) string {
	stderr := strings.TrimSpace(string(result.Stderr))
	if stderr != "" {
		return stderr
	}
	if result.Signal != 0 {
		return "terminated by signal " + signalName(result.Signal)
	}
	return "exit status " + strconv.Itoa(result.ExitCode)
}
