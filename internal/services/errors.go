package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDownmixUnsupported marks sources with more than two channels.
	// Never retried.
	ErrDownmixUnsupported = errors.New("downmix unsupported")
	// ErrUnknownSampleRate marks sources whose rate is not a clean multiple
	// of 44100 or 48000 Hz. Never retried.
	ErrUnknownSampleRate = errors.New("unknown sample rate")
	// ErrTranscode marks generic transcode failures: missing encoder data,
	// unknown encoder identifiers, pipeline stage failures, tag check
	// failures.
	ErrTranscode = errors.New("transcode error")
	// ErrExternalTool marks failures of invoked external programs.
	ErrExternalTool = errors.New("external tool error")
	// ErrIO marks filesystem and process-spawn failures.
	ErrIO = errors.New("io error")
	// ErrValidation marks rejected inputs.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTranscode
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
