package config

import (
	"fmt"

	"trhquant/internal/quant"
)

// Validate checks cross-field constraints after normalization. It returns
// the first violation found.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}

	mode := c.Mode()
	if !mode.Valid() {
		return fmt.Errorf("analysis.mode: unknown mode %q", c.Analysis.Mode)
	}

	if c.Analysis.DecimalPlaces < 0 || c.Analysis.DecimalPlaces > 6 {
		return fmt.Errorf("analysis.decimal_places: %d outside [0,6]", c.Analysis.DecimalPlaces)
	}
	if c.Analysis.BlankPrefix == "" {
		return fmt.Errorf("analysis.blank_prefix: must not be empty")
	}

	if err := c.validateBoundaries(mode); err != nil {
		return err
	}

	if c.ISTD.RTTolerance <= 0 {
		return fmt.Errorf("istd.rt_tolerance: must be positive")
	}
	if c.ISTD.AreaTolerance <= 0 {
		return fmt.Errorf("istd.area_tolerance: must be positive")
	}
	if c.ISTD.Concentration <= 0 {
		return fmt.Errorf("istd.concentration: must be positive")
	}

	if len(c.Compounds) == 0 {
		return fmt.Errorf("compound: at least one compound must be configured")
	}
	for i, compound := range c.Compounds {
		if compound.Name == "" {
			return fmt.Errorf("compound %d: name must not be empty", i+1)
		}
		if compound.Slope == 0 {
			return fmt.Errorf("compound %q: calibration slope must not be zero", compound.Name)
		}
		if compound.DilutionFactor <= 0 {
			return fmt.Errorf("compound %q: dilution factor must be positive", compound.Name)
		}
		if err := validateFraction(mode, compound.Fraction); err != nil {
			return fmt.Errorf("compound %q: %w", compound.Name, err)
		}
	}
	return nil
}

func (c *Config) validateBoundaries(mode quant.Mode) error {
	b := c.Analysis.Boundaries
	if mode == quant.ModeGasolineRange {
		if b.C6C10End <= 0 {
			return fmt.Errorf("analysis.boundaries.c6_c10_end: must be positive")
		}
		return nil
	}
	if b.C10C16Start <= 0 {
		return fmt.Errorf("analysis.boundaries.c10_c16_start: must be positive")
	}
	if b.C10C16End <= b.C10C16Start {
		return fmt.Errorf("analysis.boundaries.c10_c16_end: must exceed c10_c16_start")
	}
	if b.C16C34End <= b.C10C16End {
		return fmt.Errorf("analysis.boundaries.c16_c34_end: must exceed c10_c16_end")
	}
	if b.C34C40End <= b.C16C34End {
		return fmt.Errorf("analysis.boundaries.c34_c40_end: must exceed c16_c34_end")
	}
	return nil
}

func validateFraction(mode quant.Mode, raw string) error {
	fraction := quant.Fraction(raw)
	switch mode {
	case quant.ModeGasolineRange:
		if fraction != quant.FractionC6C10 {
			return fmt.Errorf("fraction %q not available in c6c10 analysis", raw)
		}
	case quant.ModeFullRange:
		switch fraction {
		case quant.FractionC10C16, quant.FractionC16C34, quant.FractionC34C40, quant.FractionC10C40:
		default:
			return fmt.Errorf("fraction %q not available in full analysis", raw)
		}
	}
	return nil
}
