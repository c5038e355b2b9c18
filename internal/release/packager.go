package release

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"flacsmith/internal/audio"
	"flacsmith/internal/catalog"
	"flacsmith/internal/fileutil"
	"flacsmith/internal/logging"
	"flacsmith/internal/services"
	"flacsmith/internal/transcode"
)

// ancillaryExts are the non-audio files carried into the packaged release.
var ancillaryExts = []string{
	".cue", ".gif", ".jpeg", ".jpg", ".log", ".md5",
	".nfo", ".pdf", ".png", ".sfv", ".txt",
}

// Transcoder converts one source file into the release's target format.
type Transcoder interface {
	Transcode(ctx context.Context, job transcode.Job) (string, error)
}

// Job describes one release packaging run. A job owns its destination tree
// exclusively until it either succeeds or rolls back.
type Job struct {
	ID        uuid.UUID
	SourceDir string
	DestRoot  string
	Format    catalog.Format
	Meta      Metadata
}

// Packager assembles complete release directories from lossless sources.
type Packager struct {
	transcoder Transcoder
	logger     *slog.Logger
}

// NewPackager constructs a Packager. A nil logger disables logging.
func NewPackager(transcoder Transcoder, logger *slog.Logger) *Packager {
	return &Packager{
		transcoder: transcoder,
		logger:     logging.NewComponentLogger(logger, "release"),
	}
}

// Package transcodes every FLAC under the source directory into a freshly
// created release directory and copies the ancillary files along, mirroring
// the source layout. It returns the destination path.
//
// Two short circuits apply: a lossless target that needs no resampling
// returns the source directory untouched, and an already existing destination
// directory is returned as-is. Any failure after directory creation removes
// the whole destination tree before the error is returned.
func (p *Packager) Package(ctx context.Context, job Job) (string, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	ctx = services.WithJobID(ctx, job.ID.String())
	logger := logging.WithContext(ctx, p.logger)

	props, err := audio.InspectDir(job.SourceDir)
	if err != nil {
		return "", err
	}
	if len(props) == 0 {
		return "", services.Wrap(services.ErrValidation, "package", "enumerate source", "no flac files under "+job.SourceDir, nil)
	}

	if job.Format.Lossless() && !audio.NeedsResample(props) {
		logger.Info("source already satisfies target format", logging.String("source", job.SourceDir))
		return job.SourceDir, nil
	}

	dest := filepath.Join(job.DestRoot, DirName(job.Meta, job.Format))
	if _, err := os.Stat(dest); err == nil {
		logger.Info("destination already exists, skipping", logging.String("destination", dest))
		return dest, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", services.Wrap(services.ErrIO, "package", "stat destination", dest, err)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", services.Wrap(services.ErrIO, "package", "create destination", dest, err)
	}
	logger.Info(
		"packaging release",
		logging.String("source", job.SourceDir),
		logging.String("destination", dest),
		logging.String("format", job.Format.LongName),
		logging.Int("files", len(props)),
	)

	if err := p.populate(ctx, job, props, dest); err != nil {
		if rmErr := os.RemoveAll(dest); rmErr != nil {
			logger.Warn("rollback failed", logging.String("destination", dest), logging.Error(rmErr))
		}
		return "", err
	}
	return dest, nil
}

// populate fills dest with transcodes and ancillary copies, mirroring the
// subdirectory layout of the source.
func (p *Packager) populate(ctx context.Context, job Job, props []audio.FileProperties, dest string) error {
	srcRoot, err := filepath.Abs(job.SourceDir)
	if err != nil {
		return services.Wrap(services.ErrIO, "package", "resolve source", job.SourceDir, err)
	}

	for _, file := range props {
		destDir, err := mirroredDir(srcRoot, file.Path, dest)
		if err != nil {
			return err
		}
		if _, err := p.transcoder.Transcode(ctx, transcode.Job{
			SourcePath: file.Path,
			DestDir:    destDir,
			Format:     job.Format,
		}); err != nil {
			return err
		}
	}

	extras, err := audio.FindFiles(srcRoot, ancillaryExts...)
	if err != nil {
		return err
	}
	for _, path := range extras {
		destDir, err := mirroredDir(srcRoot, path, dest)
		if err != nil {
			return err
		}
		target := filepath.Join(destDir, filepath.Base(path))
		if err := fileutil.CopyFile(path, target); err != nil {
			return services.Wrap(services.ErrIO, "package", "copy ancillary file", path, err)
		}
	}
	return nil
}

// mirroredDir maps a source file onto the destination directory that mirrors
// its position under the source root.
func mirroredDir(srcRoot, srcFile, dest string) (string, error) {
	rel, err := filepath.Rel(srcRoot, filepath.Dir(srcFile))
	if err != nil {
		return "", services.Wrap(services.ErrIO, "package", "relativize path", srcFile, err)
	}
	return filepath.Join(dest, rel), nil
}
