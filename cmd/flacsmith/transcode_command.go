package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"flacsmith/internal/catalog"
	"flacsmith/internal/logging"
	"flacsmith/internal/pipeline"
	"flacsmith/internal/release"
	"flacsmith/internal/tagging"
	"flacsmith/internal/torrent"
	"flacsmith/internal/transcode"
)

func newTranscodeCommand(ctx *commandContext) *cobra.Command {
	var formatFlags []string
	var outputFlag string
	var torrentDirFlag string
	var noTorrent bool

	var artists []string
	var composers []string
	var djs []string
	var title string
	var year int
	var media string
	var remasterTitle string
	var remasterYear int

	cmd := &cobra.Command{
		Use:   "transcode SOURCE_DIR",
		Short: "Transcode a lossless release into the target formats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			sourceDir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve source directory: %w", err)
			}
			if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
				return fmt.Errorf("source %s is not a directory", sourceDir)
			}

			formatNames := formatFlags
			if len(formatNames) == 0 {
				formatNames = cfg.Transcode.Formats
			}
			formats := make([]catalog.Format, 0, len(formatNames))
			for _, name := range formatNames {
				format, err := catalog.Lookup(name)
				if err != nil {
					return err
				}
				formats = append(formats, format)
			}

			outputDir := cfg.Paths.OutputDir
			if strings.TrimSpace(outputFlag) != "" {
				outputDir = outputFlag
			}
			torrentDir := cfg.Paths.TorrentDir
			if strings.TrimSpace(torrentDirFlag) != "" {
				torrentDir = torrentDirFlag
			}

			if err := os.MkdirAll(filepath.Dir(cfg.Paths.LockFile), 0o755); err != nil {
				return fmt.Errorf("create lock directory: %w", err)
			}
			lock := flock.New(cfg.Paths.LockFile)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire transcode lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another flacsmith transcode is already running (lock %s)", cfg.Paths.LockFile)
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release transcode lock", logging.Error(err))
				}
			}()

			meta := release.Metadata{
				Artists:       artists,
				Composers:     composers,
				DJs:           djs,
				Title:         title,
				Year:          year,
				Media:         media,
				RemasterTitle: remasterTitle,
				RemasterYear:  remasterYear,
			}
			if strings.TrimSpace(meta.Title) == "" {
				meta.Title = filepath.Base(sourceDir)
			}

			runner := pipeline.NewRunner(logger)
			tagger := tagging.New(cfg.MetaflacBinary(), logger)
			orchestrator := transcode.NewOrchestrator(runner, tagger, logger)
			packager := release.NewPackager(orchestrator, logger)
			creator := torrent.NewCreator(cfg.MktorrentBinary(), logger)

			for _, format := range formats {
				job := release.Job{
					ID:        uuid.New(),
					SourceDir: sourceDir,
					DestRoot:  outputDir,
					Format:    format,
					Meta:      meta,
				}
				dest, err := packager.Package(cmd.Context(), job)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", format.LongName, dest)

				if noTorrent {
					continue
				}
				if dest == sourceDir {
					logger.Info("skipping torrent for unmodified source", logging.String("source", sourceDir))
					continue
				}
				torrentPath, err := creator.Create(cmd.Context(), dest, torrentDir, cfg.AnnounceURL(), cfg.Tracker.Source)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", format.LongName, torrentPath)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&formatFlags, "format", "f", nil, "Target format (repeatable; defaults to transcode.formats)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination root for packaged releases")
	cmd.Flags().StringVar(&torrentDirFlag, "torrent-dir", "", "Directory for generated torrent files")
	cmd.Flags().BoolVar(&noTorrent, "no-torrent", false, "Package only, skip torrent creation")

	cmd.Flags().StringSliceVar(&artists, "artist", nil, "Release artist (repeatable)")
	cmd.Flags().StringSliceVar(&composers, "composer", nil, "Release composer (repeatable, takes precedence over artists)")
	cmd.Flags().StringSliceVar(&djs, "dj", nil, "Release DJ or compiler (repeatable)")
	cmd.Flags().StringVar(&title, "title", "", "Release title (defaults to the source directory name)")
	cmd.Flags().IntVar(&year, "year", 0, "Original release year")
	cmd.Flags().StringVar(&media, "media", "", "Source media (CD, WEB, Vinyl, ...)")
	cmd.Flags().StringVar(&remasterTitle, "remaster-title", "", "Remaster or edition title")
	cmd.Flags().IntVar(&remasterYear, "remaster-year", 0, "Remaster year")

	return cmd
}
