package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"flacsmith/internal/audio"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "inspect DIR",
		Short:       "Show stream parameters and the resample plan for a release",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}
			props, err := audio.InspectDir(root)
			if err != nil {
				return err
			}
			if len(props) == 0 {
				return fmt.Errorf("no flac files under %s", root)
			}

			rows := make([][]string, 0, len(props))
			for _, p := range props {
				rel, err := filepath.Rel(root, p.Path)
				if err != nil {
					rel = p.Path
				}
				rows = append(rows, []string{
					rel,
					strconv.Itoa(p.SampleRate),
					strconv.Itoa(p.BitsPerSample),
					strconv.Itoa(p.Channels),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Rate", "Bits", "Channels"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))

			if audio.NeedsResample(props) {
				rate, err := audio.TargetRate(props)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Resample required: 16-bit / %d Hz\n", rate)
			} else {
				fmt.Fprintln(out, "No resample required")
			}
			return nil
		},
	}
	return cmd
}
