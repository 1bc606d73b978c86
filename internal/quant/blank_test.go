package quant_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"trhquant/internal/peaks"
	"trhquant/internal/quant"
)

func fullRangeBoundaries() quant.Boundaries {
	return quant.Boundaries{
		C6C10End:    10,
		C10C16Start: 10,
		C10C16End:   16,
		C16C34End:   21,
		C34C40End:   26,
	}
}

// fullRangeBlank builds one blank run spanning every fraction boundary,
// with an internal standard peak at rt 25 inside the C34-C40 range.
func fullRangeBlank(a2, a3, a4, a5, a6, istd, a8 float64) peaks.List {
	return peaks.List{
		{Index: 1, StartRT: 5, RT: 6, EndRT: 7, Area: 40},
		{Index: 2, StartRT: 9, RT: 9.5, EndRT: 10, Area: 60},
		{Index: 3, StartRT: 11, RT: 12, EndRT: 13, Area: a2},
		{Index: 4, StartRT: 15, RT: 15.5, EndRT: 16, Area: a3},
		{Index: 5, StartRT: 18, RT: 19, EndRT: 20, Area: a4},
		{Index: 6, StartRT: 20.5, RT: 20.8, EndRT: 21, Area: a5},
		{Index: 7, StartRT: 23, RT: 24, EndRT: 24.5, Area: a6},
		{Index: 8, StartRT: 24.6, RT: 25, EndRT: 25.2, Area: istd},
		{Index: 9, StartRT: 25.5, RT: 25.8, EndRT: 26, Area: a8},
	}
}

func fullRangeISTD() quant.ISTDParams {
	return quant.ISTDParams{RT: 25, RTTolerance: 0.5, AreaTarget: 5000, AreaTolerance: 500}
}

func TestBuildBlankAverageFullRange(t *testing.T) {
	blanks := []peaks.List{
		fullRangeBlank(100, 200, 400, 100, 50, 5000, 150),
		fullRangeBlank(250, 250, 500, 200, 100, 4800, 100),
	}

	avg, err := quant.BuildBlankAverage(blanks, quant.ModeFullRange, fullRangeBoundaries(), fullRangeISTD())
	if err != nil {
		t.Fatalf("BuildBlankAverage returned error: %v", err)
	}
	if avg.Full == nil || avg.Gasoline != nil {
		t.Fatal("expected full-range payload only")
	}

	if avg.Full.C10C16 != 400 {
		t.Fatalf("C10-C16 average = %v, want 400", avg.Full.C10C16)
	}
	if avg.Full.C16C34 != 600 {
		t.Fatalf("C16-C34 average = %v, want 600", avg.Full.C16C34)
	}
	if avg.ISTD != 4900 {
		t.Fatalf("ISTD average = %v, want 4900", avg.ISTD)
	}

	// The combined span is computed independently but must equal the sum of
	// the three sub-fractions when every boundary resolves.
	sum := avg.Full.C10C16 + avg.Full.C16C34 + avg.Full.C34C40
	if math.Abs(avg.Full.C10C40-sum) > 1e-9 {
		t.Fatalf("C10-C40 average %v != sub-fraction sum %v", avg.Full.C10C40, sum)
	}
}

func TestBuildBlankAverageGasolineRange(t *testing.T) {
	boundaries := quant.Boundaries{C6C10End: 3}
	istd := quant.ISTDParams{RT: 5, RTTolerance: 0.5, AreaTarget: 2000, AreaTolerance: 500}
	blanks := []peaks.List{
		{
			{Index: 1, StartRT: 0, RT: 1, EndRT: 2, Area: 1000},
			{Index: 2, StartRT: 2, RT: 3, EndRT: 4, Area: 5000},
			{Index: 3, StartRT: 4, RT: 5, EndRT: 6, Area: 2000},
		},
		{
			{Index: 1, StartRT: 0, RT: 1, EndRT: 2, Area: 500},
			{Index: 2, StartRT: 2, RT: 3, EndRT: 4, Area: 3500},
			{Index: 3, StartRT: 4, RT: 5, EndRT: 6, Area: 1800},
		},
	}

	avg, err := quant.BuildBlankAverage(blanks, quant.ModeGasolineRange, boundaries, istd)
	if err != nil {
		t.Fatalf("BuildBlankAverage returned error: %v", err)
	}
	if avg.Gasoline == nil || avg.Full != nil {
		t.Fatal("expected gasoline-range payload only")
	}
	if avg.Gasoline.C6C10 != 5000 {
		t.Fatalf("C6-C10 average = %v, want 5000", avg.Gasoline.C6C10)
	}
	if avg.ISTD != 1900 {
		t.Fatalf("ISTD average = %v, want 1900", avg.ISTD)
	}
}

func TestBuildBlankAverageSingleBadBlankAborts(t *testing.T) {
	bad := fullRangeBlank(100, 200, 400, 100, 50, 9999, 150) // istd outside area window
	blanks := []peaks.List{
		fullRangeBlank(100, 200, 400, 100, 50, 5000, 150),
		bad,
	}

	_, err := quant.BuildBlankAverage(blanks, quant.ModeFullRange, fullRangeBoundaries(), fullRangeISTD())
	if !errors.Is(err, quant.ErrISTD) {
		t.Fatalf("expected ErrISTD, got %v", err)
	}
	if !strings.Contains(err.Error(), "blank 2") {
		t.Fatalf("error should name the failing blank run: %v", err)
	}
}

func TestBuildBlankAverageRequiresBlanks(t *testing.T) {
	if _, err := quant.BuildBlankAverage(nil, quant.ModeFullRange, fullRangeBoundaries(), fullRangeISTD()); err == nil {
		t.Fatal("expected error for empty blank batch")
	}
}

func TestBlankAverageAreaRejectsForeignFraction(t *testing.T) {
	avg := &quant.BlankAverage{Mode: quant.ModeGasolineRange, Gasoline: &quant.GasolineRangeAreas{C6C10: 10}}
	if _, err := avg.Area(quant.FractionC10C16); err == nil {
		t.Fatal("expected error for fraction outside analysis mode")
	}
	got, err := avg.Area(quant.FractionC6C10)
	if err != nil {
		t.Fatalf("Area returned error: %v", err)
	}
	if got != 10 {
		t.Fatalf("Area = %v, want 10", got)
	}
}
