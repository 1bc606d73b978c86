package quant

import (
	"fmt"
	"math"

	"trhquant/internal/calibration"
	"trhquant/internal/peaks"
)

// Calculator turns summed fraction areas into reported concentrations.
type Calculator struct {
	// DecimalPlaces fixes the rounding applied to the final concentration.
	DecimalPlaces int
}

// Compute derives the blank-corrected, ISTD-normalised concentration of a
// compound over the half-open peak range [low, high) of the sample run.
//
// blankFractionArea is the averaged background area for the fraction being
// computed, passed explicitly so a shared BlankAverage is only ever read.
// The sample's own internal standard area is scaled by the blank's
// background-to-ISTD ratio to estimate how much background the blank would
// contribute relative to this sample's ISTD signal; that estimate is
// subtracted before normalisation and calibration inversion.
func (c Calculator) Compute(
	sample peaks.List,
	low, high int,
	istd ISTDParams,
	blank *BlankAverage,
	blankFractionArea float64,
	cal calibration.Model,
	istdConcentration float64,
	dilutionFactor float64,
) (float64, error) {
	area := sample.SumAreas(low, high)

	istdArea, err := LocateISTD(sample, istd)
	if err != nil {
		return 0, err
	}
	if istdArea == 0 {
		return 0, fmt.Errorf("%w: sample internal standard area is zero", ErrNumericDegeneracy)
	}
	if blank.ISTD == 0 {
		return 0, fmt.Errorf("%w: blank internal standard area is zero", ErrNumericDegeneracy)
	}

	istdBlankCorrected := istdArea * (blankFractionArea / blank.ISTD)
	areaBlankCorrected := area - istdBlankCorrected

	responseRatio := areaBlankCorrected / istdArea
	concentrationRatio, err := cal.Invert(responseRatio)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNumericDegeneracy, err)
	}

	concentrationVial := concentrationRatio * istdConcentration
	concentrationSample := concentrationVial * dilutionFactor

	return roundTo(concentrationSample, c.DecimalPlaces), nil
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(value*scale) / scale
}
