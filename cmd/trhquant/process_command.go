package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"trhquant/internal/batch"
	"trhquant/internal/results"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process <report-directory>",
		Short: "Quantify a directory of MassHunter reports",
		Long: "Ingests every workbook in the directory, averages the blank runs, " +
			"computes each configured compound for each sample, records the " +
			"outcomes in the run history, and writes a CSV artifact.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runner := batch.New(cfg, store, logger)
			summary, err := runner.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s (%d blanks, %d samples)\n", summary.RunID, summary.Blanks, summary.Samples)
			fmt.Fprintln(out, renderMeasurementTable(summary.Measurements, cfg.Analysis.DecimalPlaces))
			label := statusText(out, "ok", false)
			if summary.Failed > 0 {
				label = statusText(out, "incomplete", true)
			}
			fmt.Fprintf(out, "%s: computed %d, failed %d\n", label, summary.Computed, summary.Failed)
			fmt.Fprintf(out, "Results written to %s\n", summary.CSVPath)
			if summary.Failed > 0 {
				return fmt.Errorf("%d measurement(s) failed; see table above", summary.Failed)
			}
			return nil
		},
	}
}

func renderMeasurementTable(measurements []results.Measurement, decimals int) string {
	headers := []string{"Sample", "Compound", "Fraction", "mg/L", "Status", "Detail"}
	rows := make([][]string, 0, len(measurements))
	for _, m := range measurements {
		rows = append(rows, []string{
			m.SampleName,
			m.Compound,
			m.Fraction,
			formatConcentration(m.Concentration, decimals),
			string(m.Status),
			m.ErrorMessage,
		})
	}
	return renderTable(headers, rows, []columnAlignment{
		alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft,
	})
}

func formatConcentration(value *float64, decimals int) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatFloat(*value, 'f', decimals, 64)
}
