package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MohithS04/Food-service-sales/internal/logging"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

// WriteCSVDir writes one CSV file per table into dir, header row first,
// columns in schema order.
func WriteCSVDir(dir string, ds *model.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, tmpl := range Tables() {
		rows, err := ExtractRows(tmpl.Name, ds)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, tmpl.Name+".csv")
		if err := writeCSV(path, ColumnNames(tmpl), rows); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logging.Debug().Str("table", tmpl.Name).Int("rows", len(rows)).Msg("csv written")
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// ReadCSV reads a table's CSV file and verifies the header matches the
// schema column order.
func ReadCSV(dir, table string) ([][]string, error) {
	tmpl, ok := TableByName(table)
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	path := filepath.Join(dir, table+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(tmpl.Columns)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	want := ColumnNames(tmpl)
	for i, name := range records[0] {
		if name != want[i] {
			return nil, fmt.Errorf("%s: column %d is %q, want %q", path, i, name, want[i])
		}
	}
	return records[1:], nil
}
