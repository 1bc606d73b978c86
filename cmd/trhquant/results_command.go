package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trhquant/internal/results"
)

func newResultsCommand(ctx *commandContext) *cobra.Command {
	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "Inspect the run history",
	}

	resultsCmd.AddCommand(newResultsRunsCommand(ctx))
	resultsCmd.AddCommand(newResultsShowCommand(ctx))

	return resultsCmd
}

func newResultsRunsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			headers := []string{"Run ID", "Mode", "Started", "Finished", "CSV"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.Mode,
					formatTimestamp(run.StartedAt),
					formatFinished(run.FinishedAt),
					run.CSVPath,
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, nil))
			return nil
		},
	}
}

func newResultsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show every measurement of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			measurements, err := store.Measurements(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(measurements) == 0 {
				fmt.Fprintf(out, "No measurements recorded for run %s.\n", args[0])
				return nil
			}

			fmt.Fprintln(out, renderMeasurementTable(measurements, cfg.Analysis.DecimalPlaces))

			stats, err := store.Stats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Computed %d, failed %d\n", stats[results.StatusOK], stats[results.StatusFailed])
			return nil
		},
	}
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Local().Format("2006-01-02 15:04:05")
}

func formatFinished(value *time.Time) string {
	if value == nil {
		return "running"
	}
	return formatTimestamp(*value)
}
