package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lyrebird/internal/pipeline"
	"lyrebird/internal/tracks"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var (
		lang      string
		start     string
		end       string
		outputDir string
		enhance   bool
		noCleanup bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a video's audio and embed synchronized lyrics",
		Args:  cobra.ExactArgs(1),
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

			result, err := p.Fetch(cmd.Context(), pipeline.FetchRequest{
				URL:           args[0],
				Lang:          lang,
				Window:        window,
				EnhanceStereo: enhance,
				NoCleanup:     noCleanup,
				OutputDir:     outputDir,
			})
			if err != nil {
				var notFound *tracks.NotFoundError
				if errors.As(err, &notFound) {
					printMissingTrack(cmd, notFound)
				}
				return err
			}

			out := cmd.OutOrStdout()
			if result.Reused {
				fmt.Fprintf(out, "Already processed: %s\n", result.OutputPath)
				return nil
			}
			if result.Fallback {
				fmt.Fprintf(out, "Note: no manual %q track, used automatic captions\n", lang)
			}
			fmt.Fprintf(out, "Wrote %s (%d lyric lines)\n", result.OutputPath, result.CueCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "Subtitle language code")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Clip start (MM:SS or HH:MM:SS)")
	cmd.Flags().StringVarP(&end, "end", "e", "", "Clip end (MM:SS or HH:MM:SS)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().BoolVar(&enhance, "enhance-stereo", false, "Widen the stereo field of the audio")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Keep downloaded source files")
	return cmd
}

// printMissingTrack renders the languages that are available when the
// requested one is not.
func printMissingTrack(cmd *cobra.Command, notFound *tracks.NotFoundError) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "No %q subtitle track found.\n", notFound.Requested)
	if len(notFound.Manual) == 0 && len(notFound.Auto) == 0 {
		fmt.Fprintln(out, "This video lists no subtitle tracks at all.")
		return
	}
	fmt.Fprintln(out, renderLanguageTable(notFound.Manual, notFound.Auto))
}
