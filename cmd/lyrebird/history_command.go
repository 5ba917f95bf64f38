package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lyrebird/internal/library"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past conversion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := library.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.CreatedAt.Local().Format(time.DateTime),
					run.VideoID,
					run.Title,
					run.Lang,
					describeSource(run),
					string(run.Status),
					run.OutputPath,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Video", "Title", "Lang", "Source", "Status", "Output"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func describeSource(run *library.Run) string {
	if run.Provenance == "" {
		return "-"
	}
	if run.Fallback {
		return run.Provenance + " (fallback)"
	}
	return run.Provenance
}
