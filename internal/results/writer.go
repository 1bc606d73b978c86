package results

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Record is one output row keyed by field name. Fields not named in the
// writer's field list are ignored; missing fields serialize as empty.
type Record map[string]string

// WriteCSV writes records to path as a comma-delimited file with a header
// row taken from fields.
func WriteCSV(path string, fields []string, records []Record) error {
	if len(fields) == 0 {
		return fmt.Errorf("write csv: no fields declared")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(fields))
	for _, record := range records {
		for i, field := range fields {
			row[i] = record[field]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}
