package config

import (
	"os"
	"path/filepath"
)

// Default returns the repository default configuration. Boundary retention
// times and the ISTD window match the laboratory's standard 40-minute TRH
// acquisition method; calibration slopes are placeholders that must be
// replaced with fitted values before real batches are processed.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: filepath.Join(defaultDataDir(), "results"),
			LogDir:    filepath.Join(defaultDataDir(), "logs"),
			DBPath:    filepath.Join(defaultDataDir(), "history.db"),
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
		Analysis: Analysis{
			Mode:          "full",
			DecimalPlaces: 2,
			BlankPrefix:   "BLANK",
			Boundaries: Boundaries{
				C6C10End:    10.5,
				C10C16Start: 10.5,
				C10C16End:   18.6,
				C16C34End:   31.2,
				C34C40End:   38.4,
			},
		},
		ISTD: ISTD{
			RT:            12.9,
			RTTolerance:   0.3,
			AreaTarget:    250000,
			AreaTolerance: 75000,
			Concentration: 10,
		},
		Compounds: []Compound{
			{Name: "TRH C10-C16", Fraction: "C10-C16", Slope: 1, Intercept: 0, DilutionFactor: 1},
			{Name: "TRH C16-C34", Fraction: "C16-C34", Slope: 1, Intercept: 0, DilutionFactor: 1},
			{Name: "TRH C34-C40", Fraction: "C34-C40", Slope: 1, Intercept: 0, DilutionFactor: 1},
			{Name: "TRH C10-C40", Fraction: "C10-C40", Slope: 1, Intercept: 0, DilutionFactor: 1},
		},
	}
}

func defaultDataDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && base != "" {
		return filepath.Join(base, "trhquant")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "trhquant")
	}
	return filepath.Join(home, ".local", "share", "trhquant")
}
