package testsupport

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"trhquant/internal/peaks"
)

// WriteReport writes a MassHunter-shaped report workbook: metadata labels
// with a blank spacer cell before each value, the peak list banner, a
// header row, and one row per peak.
func WriteReport(t testing.TB, path, sampleName, acquired string, list peaks.List) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	set := func(col, row int, value any) {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			t.Fatalf("cell name (%d,%d): %v", col, row, err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("set cell %s: %v", cell, err)
		}
	}

	set(1, 2, "Sample Name")
	set(3, 2, sampleName)
	set(1, 3, "Acquired Time")
	set(3, 3, acquired)

	set(1, 5, "Integration Peak List")
	headers := []string{"Peak", "Start", "RT", "End", "Area"}
	for i, h := range headers {
		set(i+1, 6, h)
	}
	for i, p := range list {
		row := 7 + i
		set(1, row, p.Index)
		set(2, row, p.StartRT)
		set(3, row, p.RT)
		set(4, row, p.EndRT)
		set(5, row, p.Area)
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save report %s: %v", path, err)
	}
}
