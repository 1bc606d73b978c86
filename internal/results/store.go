package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Status records whether a measurement produced a concentration.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Run is one batch invocation.
type Run struct {
	ID         string
	Mode       string
	StartedAt  time.Time
	FinishedAt *time.Time
	CSVPath    string
}

// Measurement is one sample/compound outcome within a run. Concentration
// is nil when the computation failed; ErrorMessage carries the cause.
type Measurement struct {
	ID            int64
	RunID         string
	SampleName    string
	AcquiredTime  string
	Compound      string
	Fraction      string
	Concentration *float64
	Status        Status
	ErrorMessage  string
	CreatedAt     time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    mode TEXT NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    csv_path TEXT
);

CREATE TABLE IF NOT EXISTS measurements (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    sample_name TEXT NOT NULL,
    acquired_time TEXT,
    compound TEXT NOT NULL,
    fraction TEXT NOT NULL,
    concentration REAL,
    status TEXT NOT NULL,
    error_message TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_measurements_run ON measurements(run_id);
`

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run-history database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// StartRun records the beginning of a batch.
func (s *Store) StartRun(ctx context.Context, id, mode string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, mode, started_at) VALUES (?, ?, ?)`,
		id, mode, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stamps a run complete and records the CSV artifact path.
func (s *Store) FinishRun(ctx context.Context, id, csvPath string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, csv_path = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), nullableString(csvPath), id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// AddMeasurement persists one sample/compound outcome.
func (s *Store) AddMeasurement(ctx context.Context, m *Measurement) error {
	if m == nil {
		return errors.New("measurement is nil")
	}
	m.CreatedAt = time.Now().UTC()

	var concentration any
	if m.Concentration != nil {
		concentration = *m.Concentration
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO measurements (
            run_id, sample_name, acquired_time, compound, fraction,
            concentration, status, error_message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID,
		m.SampleName,
		nullableString(m.AcquiredTime),
		m.Compound,
		m.Fraction,
		concentration,
		string(m.Status),
		nullableString(m.ErrorMessage),
		m.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert measurement: %w", err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// Runs returns every recorded run, most recent first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, mode, started_at, finished_at, csv_path FROM runs ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run         Run
			startedRaw  string
			finishedRaw sql.NullString
			csvPath     sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Mode, &startedRaw, &finishedRaw, &csvPath); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if started, err := parseTimeString(startedRaw); err == nil {
			run.StartedAt = started
		}
		if finishedRaw.Valid {
			if finished, err := parseTimeString(finishedRaw.String); err == nil {
				run.FinishedAt = &finished
			}
		}
		run.CSVPath = csvPath.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Measurements returns the outcomes of one run in insertion order.
func (s *Store) Measurements(ctx context.Context, runID string) ([]Measurement, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, sample_name, acquired_time, compound, fraction,
                concentration, status, error_message, created_at
         FROM measurements WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	var measurements []Measurement
	for rows.Next() {
		var (
			m             Measurement
			acquired      sql.NullString
			concentration sql.NullFloat64
			statusStr     string
			errorMessage  sql.NullString
			createdRaw    string
		)
		if err := rows.Scan(
			&m.ID, &m.RunID, &m.SampleName, &acquired, &m.Compound, &m.Fraction,
			&concentration, &statusStr, &errorMessage, &createdRaw,
		); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		m.AcquiredTime = acquired.String
		if concentration.Valid {
			value := concentration.Float64
			m.Concentration = &value
		}
		m.Status = Status(statusStr)
		m.ErrorMessage = errorMessage.String
		if created, err := parseTimeString(createdRaw); err == nil {
			m.CreatedAt = created
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

// Stats returns measurement counts per status for one run.
func (s *Store) Stats(ctx context.Context, runID string) (map[Status]int, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT status, COUNT(1) FROM measurements WHERE run_id = ? GROUP BY status`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("measurement stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
