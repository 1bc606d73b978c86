package quant_test

import (
	"errors"
	"testing"

	"trhquant/internal/calibration"
	"trhquant/internal/peaks"
	"trhquant/internal/quant"
)

func TestComputeKnownScenario(t *testing.T) {
	calc := quant.Calculator{DecimalPlaces: 2}
	blank := &quant.BlankAverage{Mode: quant.ModeGasolineRange, ISTD: 1000}

	// area 6000 over [0,2), istd 5000, blank ratio 100/1000:
	//   corrected = 6000 - 5000*0.1 = 5500
	//   response  = 5500/5000 = 1.1
	//   ratio     = (1.1-0.1)/2 = 0.5
	//   0.5 * 10 (istd conc) * 2 (dilution) = 10
	got, err := calc.Compute(threePeaks(), 0, 2, istdParams(), blank, 100,
		calibration.Model{Slope: 2, Intercept: 0.1}, 10, 2)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if got != 10 {
		t.Fatalf("concentration = %v, want 10", got)
	}
}

func TestComputeRoundsToConfiguredPlaces(t *testing.T) {
	calc := quant.Calculator{DecimalPlaces: 2}
	blank := &quant.BlankAverage{Mode: quant.ModeGasolineRange, ISTD: 1000}

	// response 1.1, slope 3 -> ratio 0.3666...; rounds to 0.37.
	got, err := calc.Compute(threePeaks(), 0, 2, istdParams(), blank, 100,
		calibration.Model{Slope: 3, Intercept: 0}, 1, 1)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if got != 0.37 {
		t.Fatalf("concentration = %v, want 0.37", got)
	}
}

func TestComputePropagatesISTDFailure(t *testing.T) {
	calc := quant.Calculator{DecimalPlaces: 2}
	blank := &quant.BlankAverage{Mode: quant.ModeGasolineRange, ISTD: 1000}
	params := quant.ISTDParams{RT: 30, RTTolerance: 0.1, AreaTarget: 5000, AreaTolerance: 1}

	_, err := calc.Compute(threePeaks(), 0, 2, params, blank, 100,
		calibration.Model{Slope: 2, Intercept: 0}, 10, 1)
	if !errors.Is(err, quant.ErrISTD) {
		t.Fatalf("expected ErrISTD, got %v", err)
	}
}

func TestComputeDivisionByZeroIsFatal(t *testing.T) {
	calc := quant.Calculator{DecimalPlaces: 2}

	t.Run("zero sample istd area", func(t *testing.T) {
		sample := peaks.List{{Index: 1, StartRT: 2.5, RT: 3, EndRT: 3.5, Area: 0}}
		params := quant.ISTDParams{RT: 3, RTTolerance: 0.5, AreaTarget: 0, AreaTolerance: 100}
		blank := &quant.BlankAverage{Mode: quant.ModeGasolineRange, ISTD: 1000}
		_, err := calc.Compute(sample, 0, 1, params, blank, 100,
			calibration.Model{Slope: 2, Intercept: 0}, 10, 1)
		if !errors.Is(err, quant.ErrNumericDegeneracy) {
			t.Fatalf("expected ErrNumericDegeneracy, got %v", err)
		}
	})

	t.Run("zero blank istd area", func(t *testing.T) {
		blank := &quant.BlankAverage{Mode: quant.ModeGasolineRange, ISTD: 0}
		_, err := calc.Compute(threePeaks(), 0, 2, istdParams(), blank, 100,
			calibration.Model{Slope: 2, Intercept: 0}, 10, 1)
		if !errors.Is(err, quant.ErrNumericDegeneracy) {
			t.Fatalf("expected ErrNumericDegeneracy, got %v", err)
		}
	})

	t.Run("zero calibration slope", func(t *testing.T) {
		blank := &quant.BlankAverage{Mode: quant.ModeGasolineRange, ISTD: 1000}
		_, err := calc.Compute(threePeaks(), 0, 2, istdParams(), blank, 100,
			calibration.Model{Slope: 0, Intercept: 0}, 10, 1)
		if !errors.Is(err, quant.ErrNumericDegeneracy) {
			t.Fatalf("expected ErrNumericDegeneracy, got %v", err)
		}
		if !errors.Is(err, calibration.ErrZeroSlope) {
			t.Fatalf("expected wrapped ErrZeroSlope, got %v", err)
		}
	})
}
