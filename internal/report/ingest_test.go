package report_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"trhquant/internal/peaks"
	"trhquant/internal/report"
	"trhquant/internal/testsupport"
)

func TestReadFileParsesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SOIL-001.xlsx")
	list := peaks.List{
		{Index: 1, StartRT: 0.8, RT: 1.2, EndRT: 1.6, Area: 1500},
		{Index: 2, StartRT: 2.1, RT: 2.4, EndRT: 2.9, Area: 48000},
		{Index: 3, StartRT: 3.0, RT: 3.3, EndRT: 3.8, Area: 250},
	}
	testsupport.WriteReport(t, path, "SOIL-001", "2026-08-20 09:14", list)

	rep, err := report.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if rep.SampleName != "SOIL-001" {
		t.Fatalf("sample name = %q, want SOIL-001", rep.SampleName)
	}
	if rep.AcquiredTime != "2026-08-20 09:14" {
		t.Fatalf("acquired time = %q", rep.AcquiredTime)
	}
	if len(rep.Peaks) != 3 {
		t.Fatalf("expected 3 peaks, got %d", len(rep.Peaks))
	}
	if rep.Peaks[1].Area != 48000 {
		t.Fatalf("peak 2 area = %v, want 48000", rep.Peaks[1].Area)
	}
	if rep.Peaks[2].StartRT != 3.0 || rep.Peaks[2].EndRT != 3.8 {
		t.Fatalf("peak 3 bounds = (%v,%v)", rep.Peaks[2].StartRT, rep.Peaks[2].EndRT)
	}
}

func TestReadFileStopsAtBlankIndexCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	list := peaks.List{
		{Index: 1, StartRT: 0.8, RT: 1.2, EndRT: 1.6, Area: 1500},
		{Index: 2, StartRT: 2.1, RT: 2.4, EndRT: 2.9, Area: 48000},
	}
	testsupport.WriteReport(t, path, "SOIL-001", "2026-08-20 09:14", list)

	// Trailing content below a blank separator row must not be read as peaks.
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A11", "Report generated by MassHunter"); err != nil {
		t.Fatalf("set footer: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = f.Close()

	rep, err := report.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if len(rep.Peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d", len(rep.Peaks))
	}
}

func TestReadFileMissingBanner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetCellValue(sheet, "A1", "Sample Name")
	_ = f.SetCellValue(sheet, "B1", "SOIL-001")
	_ = f.SetCellValue(sheet, "A2", "Acquired Time")
	_ = f.SetCellValue(sheet, "B2", "2026-08-20 09:14")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = f.Close()

	_, err := report.ReadFile(path)
	if !errors.Is(err, report.ErrLayout) {
		t.Fatalf("expected ErrLayout, got %v", err)
	}
}

func TestReadFileMissingSampleName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetCellValue(sheet, "A1", "Integration Peak List")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = f.Close()

	_, err := report.ReadFile(path)
	if !errors.Is(err, report.ErrLayout) {
		t.Fatalf("expected ErrLayout, got %v", err)
	}
}

func TestReadFileRejectsMissingFile(t *testing.T) {
	if _, err := report.ReadFile(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
