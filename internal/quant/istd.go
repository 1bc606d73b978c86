package quant

import (
	"fmt"
	"math"

	"trhquant/internal/peaks"
)

// ISTDParams identifies the internal standard peak by a combined identity
// window: expected elution time and expected peak size. Both windows must
// hold at once; retention time alone is ambiguous near co-eluting
// compounds.
type ISTDParams struct {
	RT            float64
	RTTolerance   float64
	AreaTarget    float64
	AreaTolerance float64
}

// LocateISTD returns the area of the unique internal standard peak.
// Peaks qualify when their apex retention time lies within
// RT±RTTolerance and their area within AreaTarget±AreaTolerance. Multiple
// qualifiers are narrowed to the one closest to the nominal retention
// time. Zero qualifiers is always fatal; a run with an unidentifiable
// internal standard cannot be quantified.
func LocateISTD(list peaks.List, p ISTDParams) (float64, error) {
	rtLow := p.RT - p.RTTolerance
	rtHigh := p.RT + p.RTTolerance
	areaLow := p.AreaTarget - p.AreaTolerance
	areaHigh := p.AreaTarget + p.AreaTolerance

	var candidates []peaks.Peak
	for _, peak := range list {
		if peak.RT < rtLow || peak.RT > rtHigh {
			continue
		}
		if peak.Area < areaLow || peak.Area > areaHigh {
			continue
		}
		candidates = append(candidates, peak)
	}

	if len(candidates) > 1 {
		best := candidates[0]
		bestDelta := math.Abs(best.RT - p.RT)
		for _, c := range candidates[1:] {
			if delta := math.Abs(c.RT - p.RT); delta < bestDelta {
				best = c
				bestDelta = delta
			}
		}
		candidates = []peaks.Peak{best}
	}

	if len(candidates) == 0 {
		return 0, fmt.Errorf("%w: no acceptable peak within rt %.4f±%.4f and area %.1f±%.1f",
			ErrISTD, p.RT, p.RTTolerance, p.AreaTarget, p.AreaTolerance)
	}
	return candidates[0].Area, nil
}
