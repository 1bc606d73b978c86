package calibration_test

import (
	"errors"
	"math"
	"testing"

	"trhquant/internal/calibration"
)

func TestInvertRoundTrip(t *testing.T) {
	m := calibration.Model{Slope: 2.5, Intercept: 0.3}

	for _, want := range []float64{0, 0.25, 1, 4.8, 120} {
		response := want*m.Slope + m.Intercept
		got, err := m.Invert(response)
		if err != nil {
			t.Fatalf("Invert(%v) returned error: %v", response, err)
		}
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("Invert round-trip: got %v, want %v", got, want)
		}
	}
}

func TestInvertZeroSlope(t *testing.T) {
	m := calibration.Model{Slope: 0, Intercept: 1}
	if _, err := m.Invert(2); !errors.Is(err, calibration.ErrZeroSlope) {
		t.Fatalf("expected ErrZeroSlope, got %v", err)
	}
}

func TestFitRecoversExactLine(t *testing.T) {
	var points []calibration.Point
	for _, x := range []float64{0.1, 0.5, 1, 2, 5} {
		points = append(points, calibration.Point{
			ConcentrationRatio: x,
			ResponseRatio:      1.8*x + 0.05,
		})
	}

	m, r2, err := calibration.Fit(points)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if math.Abs(m.Slope-1.8) > 1e-9 {
		t.Fatalf("slope = %v, want 1.8", m.Slope)
	}
	if math.Abs(m.Intercept-0.05) > 1e-9 {
		t.Fatalf("intercept = %v, want 0.05", m.Intercept)
	}
	if math.Abs(r2-1) > 1e-9 {
		t.Fatalf("r2 = %v, want 1 for exact line", r2)
	}
}

func TestFitRequiresTwoPoints(t *testing.T) {
	if _, _, err := calibration.Fit([]calibration.Point{{ConcentrationRatio: 1, ResponseRatio: 2}}); err == nil {
		t.Fatal("expected error for single point")
	}
}
