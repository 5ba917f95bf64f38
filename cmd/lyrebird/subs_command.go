package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyrebird/internal/language"
	"lyrebird/internal/media/ytdlp"
	"lyrebird/internal/tracks"
)

func newSubsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "subs <url>",
		Short: "List the subtitle tracks a video offers",
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

			client := ytdlp.New(cfg, logger)
			entries, err := client.ListTracks(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			catalog := tracks.NewCatalog(entries)
			out := cmd.OutOrStdout()
			if catalog.Empty() {
				fmt.Fprintln(out, "No subtitle tracks listed for this video.")
				return nil
			}
			fmt.Fprintln(out, renderLanguageTable(
				catalog.Languages(tracks.KindManual),
				catalog.Languages(tracks.KindAuto),
			))
			return nil
		},
	}
}

func renderLanguageTable(manual, auto []string) string {
	rows := make([][]string, 0, len(manual)+len(auto))
	for _, code := range manual {
		rows = append(rows, []string{code, language.DisplayName(code), "manual"})
	}
	for _, code := range auto {
		rows = append(rows, []string{code, language.DisplayName(code), "automatic"})
	}
	return renderTable([]string{"Code", "Language", "Source"}, rows)
}
