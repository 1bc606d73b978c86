// Package report ingests MassHunter-generated spreadsheet reports.
//
// Reports are free-form worksheets, so nothing is addressed by fixed cell
// coordinates: the parser searches for the "Sample Name" and "Acquired
// Time" label cells, then for the "Integration Peak List" banner, reads
// the header row beneath it to locate the Start/RT/End/Area columns, and
// collects peak rows until the peak-index column goes blank.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"trhquant/internal/peaks"
)

// ErrLayout marks a report whose structure is missing an expected landmark.
var ErrLayout = errors.New("report layout")

const (
	sampleNameLabel = "Sample Name"
	acquiredLabel   = "Acquired Time"
	peakListBanner  = "Integration Peak List"
)

// Report is one ingested instrument run. SampleName and AcquiredTime are
// opaque metadata passed through to output.
type Report struct {
	SampleName   string
	AcquiredTime string
	Peaks        peaks.List
}

// ReadFile opens and parses a MassHunter report workbook. The peak list is
// validated before return, so a Report always satisfies the ordering
// invariants the engine relies on.
func ReadFile(path string) (*Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open report %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: report %s has no worksheets", ErrLayout, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	rep, err := parse(rows)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", path, err)
	}
	return rep, nil
}

func parse(rows [][]string) (*Report, error) {
	sampleName, err := labelValue(rows, sampleNameLabel)
	if err != nil {
		return nil, err
	}
	acquired, err := labelValue(rows, acquiredLabel)
	if err != nil {
		return nil, err
	}

	bannerRow, indexCol, err := findCell(rows, peakListBanner)
	if err != nil {
		return nil, err
	}
	headerRow := bannerRow + 1
	if headerRow >= len(rows) {
		return nil, fmt.Errorf("%w: peak list banner has no header row", ErrLayout)
	}

	startCol, err := headerColumn(rows[headerRow], "Start")
	if err != nil {
		return nil, err
	}
	rtCol, err := headerColumn(rows[headerRow], "RT")
	if err != nil {
		return nil, err
	}
	endCol, err := headerColumn(rows[headerRow], "End")
	if err != nil {
		return nil, err
	}
	areaCol, err := headerColumn(rows[headerRow], "Area")
	if err != nil {
		return nil, err
	}

	var list peaks.List
	for r := headerRow + 1; r < len(rows); r++ {
		indexCell := cellAt(rows[r], indexCol)
		if strings.TrimSpace(indexCell) == "" {
			break
		}

		peak, err := parsePeak(rows[r], indexCol, startCol, rtCol, endCol, areaCol)
		if err != nil {
			return nil, fmt.Errorf("peak list row %d: %w", r+1, err)
		}
		list = append(list, peak)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: peak list is empty", ErrLayout)
	}
	if err := list.Validate(); err != nil {
		return nil, fmt.Errorf("peak list: %w", err)
	}

	return &Report{SampleName: sampleName, AcquiredTime: acquired, Peaks: list}, nil
}

func parsePeak(row []string, indexCol, startCol, rtCol, endCol, areaCol int) (peaks.Peak, error) {
	index, err := parseIndex(cellAt(row, indexCol))
	if err != nil {
		return peaks.Peak{}, err
	}
	start, err := parseFloat("start", cellAt(row, startCol))
	if err != nil {
		return peaks.Peak{}, err
	}
	rt, err := parseFloat("rt", cellAt(row, rtCol))
	if err != nil {
		return peaks.Peak{}, err
	}
	end, err := parseFloat("end", cellAt(row, endCol))
	if err != nil {
		return peaks.Peak{}, err
	}
	area, err := parseFloat("area", cellAt(row, areaCol))
	if err != nil {
		return peaks.Peak{}, err
	}
	return peaks.Peak{Index: index, StartRT: start, RT: rt, EndRT: end, Area: area}, nil
}

// labelValue locates a label cell and returns the next non-empty cell to
// its right on the same row.
func labelValue(rows [][]string, label string) (string, error) {
	r, c, err := findCell(rows, label)
	if err != nil {
		return "", err
	}
	for col := c + 1; col < len(rows[r]); col++ {
		if value := strings.TrimSpace(rows[r][col]); value != "" {
			return value, nil
		}
	}
	return "", fmt.Errorf("%w: no value beside %q label", ErrLayout, label)
}

func findCell(rows [][]string, want string) (row, col int, err error) {
	for r, cells := range rows {
		for c, cell := range cells {
			if strings.TrimSpace(cell) == want {
				return r, c, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: %q cell not found", ErrLayout, want)
}

func headerColumn(header []string, name string) (int, error) {
	for c, cell := range header {
		if strings.TrimSpace(cell) == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: peak list header missing %q column", ErrLayout, name)
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

func parseIndex(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	// MassHunter exports sometimes render the peak number as a float.
	if value, err := strconv.Atoi(trimmed); err == nil {
		return value, nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("peak index %q is not numeric", raw)
	}
	return int(value), nil
}

func parseFloat(field, raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s value %q is not numeric", field, raw)
	}
	return value, nil
}
