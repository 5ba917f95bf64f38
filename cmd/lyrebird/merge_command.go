package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyrebird/internal/pipeline"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var (
		audioPath    string
		subtitlePath string
		outputPath   string
		start        string
		end          string
		enhance      bool
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Embed lyrics from a local SRT file into a local audio file",
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := parseWindow(start, end)
			if err != nil {
				return err
			}

			p, store, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := p.Merge(cmd.Context(), pipeline.MergeRequest{
				AudioPath:     audioPath,
				SubtitlePath:  subtitlePath,
				OutputPath:    outputPath,
				Window:        window,
				EnhanceStereo: enhance,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d lyric lines)\n", result.OutputPath, result.CueCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&audioPath, "audio", "a", "", "Audio file to convert")
	cmd.Flags().StringVar(&subtitlePath, "subtitle", "", "SRT file with the lyrics")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output MP3 path")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Clip start (MM:SS or HH:MM:SS)")
	cmd.Flags().StringVarP(&end, "end", "e", "", "Clip end (MM:SS or HH:MM:SS)")
	cmd.Flags().BoolVar(&enhance, "enhance-stereo", false, "Widen the stereo field of the audio")
	_ = cmd.MarkFlagRequired("audio")
	_ = cmd.MarkFlagRequired("subtitle")
	return cmd
}
