// Package calibration holds the linear response model that maps measured
// response ratios back to concentration ratios, plus a least-squares fit
// for deriving the model from standard runs.
package calibration

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrZeroSlope is returned when a model cannot be inverted.
var ErrZeroSlope = errors.New("calibration slope is zero")

// Model is a linear fit of response ratio against concentration ratio:
// response = ConcentrationRatio*Slope + Intercept.
type Model struct {
	Slope     float64
	Intercept float64
}

// Invert returns the concentration ratio that would have produced the
// given response ratio under the fitted line.
func (m Model) Invert(responseRatio float64) (float64, error) {
	if m.Slope == 0 {
		return 0, ErrZeroSlope
	}
	return (responseRatio - m.Intercept) / m.Slope, nil
}

// Point pairs a known concentration ratio from a standard run with the
// response ratio measured for it.
type Point struct {
	ConcentrationRatio float64
	ResponseRatio      float64
}

// Fit performs an ordinary least-squares regression over the standard
// points and reports the coefficient of determination alongside the model.
func Fit(points []Point) (Model, float64, error) {
	if len(points) < 2 {
		return Model{}, 0, fmt.Errorf("calibration fit needs at least two points, got %d", len(points))
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.ConcentrationRatio
		ys[i] = p.ResponseRatio
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if slope == 0 {
		return Model{}, 0, fmt.Errorf("fit standards: %w", ErrZeroSlope)
	}
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)

	return Model{Slope: slope, Intercept: intercept}, r2, nil
}
