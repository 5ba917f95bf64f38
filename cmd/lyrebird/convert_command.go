package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lyrebird/internal/pipeline"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		start      string
		end        string
	)

	cmd := &cobra.Command{
		Use:         "convert <file.srt>",
		Short:       "Convert an SRT subtitle file to LRC lyrics",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := parseWindow(start, end)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read subtitles: %w", err)
			}
			document, count, err := pipeline.RenderLyrics(string(data), window)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				base := args[0]
				target = strings.TrimSuffix(base, filepath.Ext(base)) + ".lrc"
			}
			if err := os.WriteFile(target, []byte(document), 0o644); err != nil {
				return fmt.Errorf("write lyrics: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d lyric lines)\n", target, count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output LRC path (default: input with .lrc extension)")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Clip start (MM:SS or HH:MM:SS)")
	cmd.Flags().StringVarP(&end, "end", "e", "", "Clip end (MM:SS or HH:MM:SS)")
	return cmd
}
