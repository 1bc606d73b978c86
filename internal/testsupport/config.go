// Package testsupport provides shared fixtures for package tests: configs
// seeded with per-test temp directories and MassHunter-shaped report
// workbooks.
package testsupport

import (
	"path/filepath"
	"testing"

	"trhquant/internal/config"
)

// ConfigOption allows callers to customize the generated test
// configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "results")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DBPath = filepath.Join(base, "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithMode sets the analysis mode and an appropriate compound list.
func WithMode(mode string, compounds ...config.Compound) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Analysis.Mode = mode
		if len(compounds) > 0 {
			cfg.Compounds = compounds
		}
	}
}

// WithBoundaries overrides the fraction cutoff retention times.
func WithBoundaries(b config.Boundaries) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Analysis.Boundaries = b
	}
}

// WithISTD overrides the internal standard window.
func WithISTD(istd config.ISTD) ConfigOption {
	return func(cfg *config.Config) {
		cfg.ISTD = istd
	}
}
