package transcode

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"flacsmith/internal/audio"
	"flacsmith/internal/catalog"
	"flacsmith/internal/logging"
	"flacsmith/internal/pipeline"
	"flacsmith/internal/services"
	"flacsmith/internal/textutil"
)

// Runner executes a command pipeline and reports per-stage termination.
type Runner interface {
	Run(ctx context.Context, spec pipeline.Spec) ([]pipeline.StageResult, error)
}

// Tagger propagates and verifies audio metadata on transcoded files.
type Tagger interface {
	// CopyTags transfers the metadata of src onto dst.
	CopyTags(src, dst string) error
	// CheckTags verifies that dst carries the required metadata fields and
	// returns a human-readable reason when it does not.
	CheckTags(dst string) (ok bool, reason string, err error)
}

// Job describes one file conversion.
type Job struct {
	SourcePath string
	DestDir    string
	Format     catalog.Format
}

// Orchestrator converts individual lossless files into a target format.
type Orchestrator struct {
	runner Runner
	tagger Tagger
	logger *slog.Logger
}

// NewOrchestrator constructs an Orchestrator. A nil logger disables logging.
func NewOrchestrator(runner Runner, tagger Tagger, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		runner: runner,
		tagger: tagger,
		logger: logging.NewComponentLogger(logger, "transcode"),
	}
}

// Transcode converts one source file and returns the destination path.
//
// The source is inspected before any external process is spawned: files with
// more than two channels are rejected outright, and files above 16-bit/48kHz
// get a per-file resample target. After conversion the source metadata is
// copied onto the destination and verified.
func (o *Orchestrator) Transcode(ctx context.Context, job Job) (string, error) {
	logger := logging.WithContext(ctx, o.logger)

	props, err := audio.InspectFile(job.SourcePath)
	if err != nil {
		return "", err
	}
	if props.Channels > 2 {
		return "", services.Wrap(
			services.ErrDownmixUnsupported,
			"transcode",
			"inspect source",
			fmt.Sprintf("%s has %d channels", job.SourcePath, props.Channels),
			nil,
		)
	}

	resample := props.NeedsResample()
	targetRate := 0
	if resample {
		targetRate, err = audio.TargetRateFor(props)
		if err != nil {
			return "", err
		}
	}

	dst, err := destinationPath(job)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(job.DestDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrIO, "transcode", "create destination directory", job.DestDir, err)
	}

	spec, err := pipeline.Build(job.Format, resample, targetRate, job.SourcePath, dst)
	if err != nil {
		return "", err
	}
	logger.Debug(
		"transcoding file",
		logging.String("source", job.SourcePath),
		logging.String("destination", dst),
		logging.Bool("resample", resample),
	)

	results, err := o.runner.Run(ctx, spec)
	if err != nil {
		return "", err
	}
	if err := pipeline.Diagnose(results); err != nil {
		return "", err
	}

	if err := o.tagger.CopyTags(job.SourcePath, dst); err != nil {
		return "", err
	}
	ok, reason, err := o.tagger.CheckTags(dst)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", services.Wrap(services.ErrTranscode, "transcode", "verify tags", reason, nil)
	}
	return dst, nil
}

// destinationPath derives the output file path from the source basename,
// swapping the extension for the encoder's and replacing characters that are
// unsafe in file names.
func destinationPath(job Job) (string, error) {
	encoder := job.Format.Encoder
	if encoder == nil {
		return "", services.Wrap(
			services.ErrTranscode,
			"transcode",
			"resolve encoder",
			fmt.Sprintf("missing encoder data for format %s", job.Format.LongName),
			nil,
		)
	}
	base := filepath.Base(job.SourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(job.DestDir, textutil.SanitizeFileName(stem)+encoder.Ext), nil
}
