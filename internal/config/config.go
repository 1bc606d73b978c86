package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"trhquant/internal/quant"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains output and state directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	DBPath    string `toml:"db_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Boundaries contains the fraction cutoff retention times in minutes.
type Boundaries struct {
	C6C10End    float64 `toml:"c6_c10_end"`
	C10C16Start float64 `toml:"c10_c16_start"`
	C10C16End   float64 `toml:"c10_c16_end"`
	C16C34End   float64 `toml:"c16_c34_end"`
	C34C40End   float64 `toml:"c34_c40_end"`
}

// Analysis selects the fraction set and report handling for a batch.
type Analysis struct {
	// Mode is "full" for the C10-C40 fraction set or "c6c10" for the
	// volatile gasoline-range analysis.
	Mode          string `toml:"mode"`
	DecimalPlaces int    `toml:"decimal_places"`
	// BlankPrefix classifies report files whose name starts with it
	// (case-insensitive) as blank runs.
	BlankPrefix string     `toml:"blank_prefix"`
	Boundaries  Boundaries `toml:"boundaries"`
}

// ISTD describes the internal standard identity window and its known
// concentration.
type ISTD struct {
	RT            float64 `toml:"rt"`
	RTTolerance   float64 `toml:"rt_tolerance"`
	AreaTarget    float64 `toml:"area_target"`
	AreaTolerance float64 `toml:"area_tolerance"`
	Concentration float64 `toml:"concentration"`
}

// Compound is one reported compound: a fraction paired with its
// calibration fit and dilution factor.
type Compound struct {
	Name           string  `toml:"name"`
	Fraction       string  `toml:"fraction"`
	Slope          float64 `toml:"slope"`
	Intercept      float64 `toml:"intercept"`
	DilutionFactor float64 `toml:"dilution_factor"`
}

// Config encapsulates all configuration values for trhquant.
type Config struct {
	Paths     Paths      `toml:"paths"`
	Logging   Logging    `toml:"logging"`
	Analysis  Analysis   `toml:"analysis"`
	ISTD      ISTD       `toml:"istd"`
	Compounds []Compound `toml:"compound"`
}

// Mode returns the analysis mode as the engine type.
func (c *Config) Mode() quant.Mode {
	return quant.Mode(c.Analysis.Mode)
}

// QuantBoundaries returns the fraction cutoffs as the engine type.
func (c *Config) QuantBoundaries() quant.Boundaries {
	b := c.Analysis.Boundaries
	return quant.Boundaries{
		C6C10End:    b.C6C10End,
		C10C16Start: b.C10C16Start,
		C10C16End:   b.C10C16End,
		C16C34End:   b.C16C34End,
		C34C40End:   b.C34C40End,
	}
}

// ISTDParams returns the internal standard identity window as the engine
// type.
func (c *Config) ISTDParams() quant.ISTDParams {
	return quant.ISTDParams{
		RT:            c.ISTD.RT,
		RTTolerance:   c.ISTD.RTTolerance,
		AreaTarget:    c.ISTD.AreaTarget,
		AreaTolerance: c.ISTD.AreaTolerance,
	}
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/trhquant/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("trhquant.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.DBPath, err = expandPath(c.Paths.DBPath); err != nil {
		return err
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Analysis.Mode = strings.ToLower(strings.TrimSpace(c.Analysis.Mode))
	c.Analysis.BlankPrefix = strings.TrimSpace(c.Analysis.BlankPrefix)

	for i := range c.Compounds {
		c.Compounds[i].Name = strings.TrimSpace(c.Compounds[i].Name)
		c.Compounds[i].Fraction = strings.TrimSpace(c.Compounds[i].Fraction)
	}
	return nil
}

// EnsureDirectories creates the output and state directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir, filepath.Dir(c.Paths.DBPath)}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified
// location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
