package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"trhquant/internal/calibration"
	"trhquant/internal/config"
	"trhquant/internal/peaks"
	"trhquant/internal/quant"
	"trhquant/internal/report"
	"trhquant/internal/results"
)

// CSVFields is the declared column set of the batch CSV artifact.
var CSVFields = []string{
	"Sample Name",
	"Acquired Time",
	"Compound",
	"Fraction",
	"Concentration (mg/L)",
	"Status",
	"Error",
}

// Summary reports the outcome of one batch run.
type Summary struct {
	RunID        string
	CSVPath      string
	Blanks       int
	Samples      int
	Computed     int
	Failed       int
	Measurements []results.Measurement
}

// Runner executes quantification batches against a directory of
// MassHunter reports.
type Runner struct {
	cfg    *config.Config
	store  *results.Store
	logger *slog.Logger
	calc   quant.Calculator
}

// New constructs a batch runner. A nil logger disables logging.
func New(cfg *config.Config, store *results.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		cfg:    cfg,
		store:  store,
		logger: logger.With("component", "batch"),
		calc:   quant.Calculator{DecimalPlaces: cfg.Analysis.DecimalPlaces},
	}
}

// Run ingests every report in inputDir, builds the blank average, computes
// each configured compound for each sample, persists the outcomes, and
// writes the CSV artifact. The output directory is locked for the
// duration so concurrent invocations cannot interleave artifacts.
func (r *Runner) Run(ctx context.Context, inputDir string) (*Summary, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.OutputDir, ".trhquant.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock output directory: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("output directory %s is locked by another batch", r.cfg.Paths.OutputDir)
	}
	defer func() { _ = lock.Unlock() }()

	blankPaths, samplePaths, err := r.discover(inputDir)
	if err != nil {
		return nil, err
	}
	if len(blankPaths) == 0 {
		return nil, fmt.Errorf("no blank reports (prefix %q) found in %s", r.cfg.Analysis.BlankPrefix, inputDir)
	}
	if len(samplePaths) == 0 {
		return nil, fmt.Errorf("no sample reports found in %s", inputDir)
	}

	blankAvg, err := r.buildBlankAverage(blankPaths)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	if err := r.store.StartRun(ctx, runID, string(r.cfg.Mode())); err != nil {
		return nil, err
	}
	r.logger.Info("batch started",
		"run_id", runID,
		"mode", string(r.cfg.Mode()),
		"blanks", len(blankPaths),
		"samples", len(samplePaths))

	summary := &Summary{RunID: runID, Blanks: len(blankPaths), Samples: len(samplePaths)}
	for _, path := range samplePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.processSample(ctx, summary, blankAvg, path)
	}

	csvPath, err := r.writeArtifact(runID, summary.Measurements)
	if err != nil {
		return nil, err
	}
	summary.CSVPath = csvPath

	if err := r.store.FinishRun(ctx, runID, csvPath); err != nil {
		return nil, err
	}
	r.logger.Info("batch finished",
		"run_id", runID,
		"computed", summary.Computed,
		"failed", summary.Failed,
		"csv", csvPath)
	return summary, nil
}

// discover partitions workbook files into blank and sample reports by the
// configured filename prefix. Excel owner files ("~$...") are skipped.
func (r *Runner) discover(inputDir string) (blanks, samples []string, err error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("read input directory: %w", err)
	}

	prefix := strings.ToUpper(r.cfg.Analysis.BlankPrefix)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx", ".xlsm":
		default:
			continue
		}

		path := filepath.Join(inputDir, name)
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			blanks = append(blanks, path)
		} else {
			samples = append(samples, path)
		}
	}
	sort.Strings(blanks)
	sort.Strings(samples)
	return blanks, samples, nil
}

// buildBlankAverage ingests every blank report and aggregates the batch
// background. Any unreadable or unresolvable blank aborts the batch.
func (r *Runner) buildBlankAverage(paths []string) (*quant.BlankAverage, error) {
	lists := make([]peaks.List, 0, len(paths))
	for _, path := range paths {
		rep, err := report.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("blank report %s: %w", filepath.Base(path), err)
		}
		lists = append(lists, rep.Peaks)
	}
	return quant.BuildBlankAverage(lists, r.cfg.Mode(), r.cfg.QuantBoundaries(), r.cfg.ISTDParams())
}

// processSample computes every configured compound for one sample report,
// recording failures without stopping the batch.
func (r *Runner) processSample(ctx context.Context, summary *Summary, blankAvg *quant.BlankAverage, path string) {
	rep, err := report.ReadFile(path)
	if err != nil {
		r.logger.Warn("sample report unreadable", "path", path, "error", err)
		r.record(ctx, summary, results.Measurement{
			RunID:        summary.RunID,
			SampleName:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Status:       results.StatusFailed,
			ErrorMessage: err.Error(),
		})
		return
	}

	for _, compound := range r.cfg.Compounds {
		fraction := quant.Fraction(compound.Fraction)

		concentration, err := r.computeCompound(rep, blankAvg, compound, fraction)
		if err != nil {
			wrapped := fmt.Errorf("sample %s: %s: %w", rep.SampleName, compound.Name, err)
			r.logger.Warn("compound not quantified",
				"sample", rep.SampleName,
				"compound", compound.Name,
				"error", err)
			r.record(ctx, summary, results.Measurement{
				RunID:        summary.RunID,
				SampleName:   rep.SampleName,
				AcquiredTime: rep.AcquiredTime,
				Compound:     compound.Name,
				Fraction:     compound.Fraction,
				Status:       results.StatusFailed,
				ErrorMessage: wrapped.Error(),
			})
			continue
		}

		value := concentration
		r.record(ctx, summary, results.Measurement{
			RunID:         summary.RunID,
			SampleName:    rep.SampleName,
			AcquiredTime:  rep.AcquiredTime,
			Compound:      compound.Name,
			Fraction:      compound.Fraction,
			Concentration: &value,
			Status:        results.StatusOK,
		})
	}
}

func (r *Runner) computeCompound(rep *report.Report, blankAvg *quant.BlankAverage, compound config.Compound, fraction quant.Fraction) (float64, error) {
	blankArea, err := blankAvg.Area(fraction)
	if err != nil {
		return 0, err
	}
	low, high, err := quant.FractionBounds(rep.Peaks, fraction, r.cfg.QuantBoundaries())
	if err != nil {
		return 0, err
	}
	return r.calc.Compute(
		rep.Peaks,
		low, high,
		r.cfg.ISTDParams(),
		blankAvg,
		blankArea,
		calibration.Model{Slope: compound.Slope, Intercept: compound.Intercept},
		r.cfg.ISTD.Concentration,
		compound.DilutionFactor,
	)
}

func (r *Runner) record(ctx context.Context, summary *Summary, m results.Measurement) {
	if err := r.store.AddMeasurement(ctx, &m); err != nil {
		r.logger.Error("persist measurement", "sample", m.SampleName, "error", err)
	}
	if m.Status == results.StatusOK {
		summary.Computed++
	} else {
		summary.Failed++
	}
	summary.Measurements = append(summary.Measurements, m)
}

// writeArtifact serializes the run's measurements to the CSV output sink.
func (r *Runner) writeArtifact(runID string, measurements []results.Measurement) (string, error) {
	records := make([]results.Record, 0, len(measurements))
	for _, m := range measurements {
		record := results.Record{
			"Sample Name":   m.SampleName,
			"Acquired Time": m.AcquiredTime,
			"Compound":      m.Compound,
			"Fraction":      m.Fraction,
			"Status":        string(m.Status),
			"Error":         m.ErrorMessage,
			"Run ID":        runID,
		}
		if m.Concentration != nil {
			record["Concentration (mg/L)"] = strconv.FormatFloat(*m.Concentration, 'f', r.cfg.Analysis.DecimalPlaces, 64)
		}
		records = append(records, record)
	}

	name := fmt.Sprintf("trh_%s_%s.csv", time.Now().UTC().Format("20060102-150405"), shortID(runID))
	path := filepath.Join(r.cfg.Paths.OutputDir, name)
	if err := results.WriteCSV(path, CSVFields, records); err != nil {
		return "", err
	}
	return path, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
