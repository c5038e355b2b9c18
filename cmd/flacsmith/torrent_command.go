package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"flacsmith/internal/torrent"
)

func newTorrentCommand(ctx *commandContext) *cobra.Command {
	torrentCmd := &cobra.Command{
		Use:   "torrent",
		Short: "Torrent utilities",
	}
	torrentCmd.AddCommand(newTorrentCreateCommand(ctx))
	torrentCmd.AddCommand(newTorrentNormalizeCommand())
	return torrentCmd
}

func newTorrentCreateCommand(ctx *commandContext) *cobra.Command {
	var torrentDirFlag string

	cmd := &cobra.Command{
		Use:   "create DIR",
		Short: "Create a private torrent for a release directory",
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

			input, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve release directory: %w", err)
			}
			torrentDir := cfg.Paths.TorrentDir
			if strings.TrimSpace(torrentDirFlag) != "" {
				torrentDir = torrentDirFlag
			}

			creator := torrent.NewCreator(cfg.MktorrentBinary(), logger)
			out, err := creator.Create(cmd.Context(), input, torrentDir, cfg.AnnounceURL(), cfg.Tracker.Source)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&torrentDirFlag, "torrent-dir", "", "Directory for the generated torrent file")
	return cmd
}

func newTorrentNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "normalize FILE",
		Short:       "Rewrite a torrent's path metadata to NFC in place",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve torrent path: %w", err)
			}
			if err := torrent.NormalizeFile(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
