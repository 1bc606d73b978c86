package quant

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"trhquant/internal/peaks"
)

// Mode selects which fraction set an analysis covers.
type Mode string

const (
	// ModeGasolineRange quantifies only the volatile C6-C10 fraction.
	ModeGasolineRange Mode = "c6c10"
	// ModeFullRange quantifies the C10-C16, C16-C34 and C34-C40 fractions
	// plus the combined C10-C40 span.
	ModeFullRange Mode = "full"
)

// Valid reports whether the mode is one of the known analysis modes.
func (m Mode) Valid() bool {
	return m == ModeGasolineRange || m == ModeFullRange
}

// GasolineRangeAreas is the blank background for a C6-C10 analysis.
type GasolineRangeAreas struct {
	C6C10 float64
}

// FullRangeAreas is the blank background for a full TRH analysis. C10C40
// is averaged from the combined span of each blank run, not derived by
// adding the three sub-fractions.
type FullRangeAreas struct {
	C10C16 float64
	C16C34 float64
	C34C40 float64
	C10C40 float64
}

// BlankAverage aggregates a batch of blank runs into per-fraction average
// background areas and an average internal standard area. Exactly one of
// Gasoline or Full is set, matching Mode. Immutable after construction;
// per-compound state never lives here.
type BlankAverage struct {
	Mode     Mode
	ISTD     float64
	Gasoline *GasolineRangeAreas
	Full     *FullRangeAreas
}

// Area returns the averaged background area for a fraction, or an error
// when the fraction does not belong to the analysis mode.
func (b *BlankAverage) Area(f Fraction) (float64, error) {
	switch b.Mode {
	case ModeGasolineRange:
		if f == FractionC6C10 {
			return b.Gasoline.C6C10, nil
		}
	case ModeFullRange:
		switch f {
		case FractionC10C16:
			return b.Full.C10C16, nil
		case FractionC16C34:
			return b.Full.C16C34, nil
		case FractionC34C40:
			return b.Full.C34C40, nil
		case FractionC10C40:
			return b.Full.C10C40, nil
		}
	}
	return 0, fmt.Errorf("fraction %s not covered by %s analysis", f, b.Mode)
}

// BuildBlankAverage resolves fraction boundaries and the internal standard
// on every blank run and averages the results arithmetically. A single
// unresolvable blank aborts the whole batch; there is no partial-batch
// fallback.
func BuildBlankAverage(blanks []peaks.List, mode Mode, b Boundaries, istd ISTDParams) (*BlankAverage, error) {
	if len(blanks) == 0 {
		return nil, fmt.Errorf("no blank runs supplied")
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown analysis mode %q", mode)
	}

	fractions := []Fraction{FractionC6C10}
	if mode == ModeFullRange {
		fractions = []Fraction{FractionC10C16, FractionC16C34, FractionC34C40, FractionC10C40}
	}

	sums := make(map[Fraction][]float64, len(fractions))
	istdAreas := make([]float64, 0, len(blanks))

	for i, blank := range blanks {
		for _, f := range fractions {
			low, high, err := FractionBounds(blank, f, b)
			if err != nil {
				return nil, fmt.Errorf("blank %d: fraction %s: %w", i+1, f, err)
			}
			sums[f] = append(sums[f], blank.SumAreas(low, high))
		}

		area, err := LocateISTD(blank, istd)
		if err != nil {
			return nil, fmt.Errorf("blank %d: %w", i+1, err)
		}
		istdAreas = append(istdAreas, area)
	}

	avg := &BlankAverage{Mode: mode, ISTD: stat.Mean(istdAreas, nil)}
	switch mode {
	case ModeGasolineRange:
		avg.Gasoline = &GasolineRangeAreas{C6C10: stat.Mean(sums[FractionC6C10], nil)}
	case ModeFullRange:
		avg.Full = &FullRangeAreas{
			C10C16: stat.Mean(sums[FractionC10C16], nil),
			C16C34: stat.Mean(sums[FractionC16C34], nil),
			C34C40: stat.Mean(sums[FractionC34C40], nil),
			C10C40: stat.Mean(sums[FractionC10C40], nil),
		}
	}
	return avg, nil
}
