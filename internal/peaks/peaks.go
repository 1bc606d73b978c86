// Package peaks defines the chromatographic peak data model shared by the
// quantification engine and report ingestion.
//
// A List is addressed by sequence position throughout the engine. The Index
// field reported by the instrument is carried for operator-facing output
// only and is never used for slicing or summation.
package peaks

import "fmt"

// Peak is one integrated chromatographic peak from an instrument run.
// Retention times are minutes.
type Peak struct {
	Index   int
	StartRT float64
	RT      float64
	EndRT   float64
	Area    float64
}

// List is the ordered peak sequence for a single run, ascending by
// retention time.
type List []Peak

// Validate checks the structural invariants the engine relies on: retention
// times ordered within each peak, non-negative areas, and the sequence
// sorted by retention time.
func (l List) Validate() error {
	for i, p := range l {
		if p.StartRT > p.RT || p.RT > p.EndRT {
			return fmt.Errorf("peak %d: retention times out of order (start=%.4f rt=%.4f end=%.4f)", p.Index, p.StartRT, p.RT, p.EndRT)
		}
		if p.Area < 0 {
			return fmt.Errorf("peak %d: negative area %.4f", p.Index, p.Area)
		}
		if i > 0 && l[i-1].RT > p.RT {
			return fmt.Errorf("peak %d: retention time %.4f precedes previous peak", p.Index, p.RT)
		}
	}
	return nil
}

// SumAreas totals peak areas over the half-open position range [low, high).
// Bounds outside the list are clamped.
func (l List) SumAreas(low, high int) float64 {
	if low < 0 {
		low = 0
	}
	if high > len(l) {
		high = len(l)
	}
	var total float64
	for i := low; i < high; i++ {
		total += l[i].Area
	}
	return total
}
