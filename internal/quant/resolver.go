package quant

import (
	"fmt"
	"math"

	"trhquant/internal/peaks"
)

// Boundaries carries the fraction cutoff retention times (minutes) for a
// TRH analysis. The values are regulatory cutoffs, not peak identities;
// the resolver converts them to discrete summation positions.
type Boundaries struct {
	C6C10End    float64
	C10C16Start float64
	C10C16End   float64
	C16C34End   float64
	C34C40End   float64
}

// Fraction names one hydrocarbon carbon-number range.
type Fraction string

const (
	FractionC6C10  Fraction = "C6-C10"
	FractionC10C16 Fraction = "C10-C16"
	FractionC16C34 Fraction = "C16-C34"
	FractionC34C40 Fraction = "C34-C40"
	FractionC10C40 Fraction = "C10-C40"
)

// FractionEndIndex resolves a fraction's ending boundary to the exclusive
// upper summation bound: one past the peak whose end retention time is
// nearest rtEnd without preceding it. When several peaks share the minimal
// distance the earliest position wins, which is deterministic because
// lists are retention-time ordered.
func FractionEndIndex(list peaks.List, rtEnd float64) (int, error) {
	best := -1
	bestDelta := math.Inf(1)
	for i, p := range list {
		delta := p.EndRT - rtEnd
		if delta < 0 {
			continue
		}
		if delta < bestDelta {
			best = i
			bestDelta = delta
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("%w: no peak ends at or after retention time %.4f", ErrBoundaryResolution, rtEnd)
	}
	return best + 1, nil
}

// FractionStartIndex resolves a fraction's starting boundary to the
// inclusive lower summation bound. The peak whose start retention time is
// nearest rtStart from below straddles the cutoff and is counted in the
// preceding fraction, so the bound is the position after it. When every
// peak starts after the boundary the run is assumed to begin cleanly and
// the bound is 0; this is policy, not an error.
func FractionStartIndex(list peaks.List, rtStart float64) int {
	best := -1
	bestDelta := math.Inf(1)
	for i, p := range list {
		if p.StartRT > rtStart {
			continue
		}
		delta := math.Abs(p.StartRT - rtStart)
		if delta < bestDelta {
			best = i
			bestDelta = delta
		}
	}
	if best < 0 {
		return 0
	}
	return best + 1
}

// FractionBounds resolves the half-open summation range for a named
// fraction. The C6-C10 range always begins at the first peak; the C10-C40
// span is resolved over the combined range rather than by adding the three
// sub-fractions.
func FractionBounds(list peaks.List, fraction Fraction, b Boundaries) (low, high int, err error) {
	switch fraction {
	case FractionC6C10:
		high, err = FractionEndIndex(list, b.C6C10End)
		return 0, high, err
	case FractionC10C16:
		low = FractionStartIndex(list, b.C10C16Start)
		high, err = FractionEndIndex(list, b.C10C16End)
		return low, high, err
	case FractionC16C34:
		low, err = FractionEndIndex(list, b.C10C16End)
		if err != nil {
			return 0, 0, err
		}
		high, err = FractionEndIndex(list, b.C16C34End)
		return low, high, err
	case FractionC34C40:
		low, err = FractionEndIndex(list, b.C16C34End)
		if err != nil {
			return 0, 0, err
		}
		high, err = FractionEndIndex(list, b.C34C40End)
		return low, high, err
	case FractionC10C40:
		low = FractionStartIndex(list, b.C10C16Start)
		high, err = FractionEndIndex(list, b.C34C40End)
		return low, high, err
	default:
		return 0, 0, fmt.Errorf("unknown fraction %q", fraction)
	}
}
