package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trhquant/internal/calibration"
)

func newCalibrateCommand() *cobra.Command {
	var minR2 float64

	cmd := &cobra.Command{
		Use:   "calibrate <standards-csv>",
		Short: "Fit a calibration line from standard runs",
		Long: "Reads a CSV of standard runs with concentration_ratio and " +
			"response_ratio columns, fits a least-squares line, and prints the " +
			"slope and intercept to copy into the compound configuration.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := readStandards(args[0])
			if err != nil {
				return err
			}

			model, r2, err := calibration.Fit(points)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fitted %d standards\n", len(points))
			fmt.Fprintf(out, "slope     = %.6f\n", model.Slope)
			fmt.Fprintf(out, "intercept = %.6f\n", model.Intercept)
			fmt.Fprintf(out, "r-squared = %.6f\n", r2)
			if minR2 > 0 && r2 < minR2 {
				return fmt.Errorf("r-squared %.6f below required %.6f; rerun the standards", r2, minR2)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&minR2, "min-r2", 0, "Fail when r-squared falls below this value")
	return cmd
}

// readStandards parses standard points from a CSV file. Column headers are
// matched case-insensitively with spaces treated as underscores.
func readStandards(path string) ([]calibration.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open standards file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read standards file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("standards file %s has no data rows", path)
	}

	concCol, respCol := -1, -1
	for i, header := range rows[0] {
		switch normalizeHeader(header) {
		case "concentration_ratio":
			concCol = i
		case "response_ratio":
			respCol = i
		}
	}
	if concCol < 0 || respCol < 0 {
		return nil, fmt.Errorf("standards file %s needs concentration_ratio and response_ratio columns", path)
	}

	points := make([]calibration.Point, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if concCol >= len(row) || respCol >= len(row) {
			return nil, fmt.Errorf("standards row %d is short", i+2)
		}
		conc, err := strconv.ParseFloat(strings.TrimSpace(row[concCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("standards row %d: concentration ratio %q: %w", i+2, row[concCol], err)
		}
		resp, err := strconv.ParseFloat(strings.TrimSpace(row[respCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("standards row %d: response ratio %q: %w", i+2, row[respCol], err)
		}
		points = append(points, calibration.Point{ConcentrationRatio: conc, ResponseRatio: resp})
	}
	return points, nil
}

func normalizeHeader(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
}
