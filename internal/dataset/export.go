package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Save writes the dataset to a file, choosing the format by extension.
// Supported: .csv, .json, .xlsx.
func (d *Dataset) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return d.saveCSV(path)
	case ".json":
		return d.saveJSON(path)
	case ".xlsx":
		return d.saveExcel(path)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func (d *Dataset) saveCSV(path string) error {
	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := d.df.WriteCSV(f); err != nil {
		f.Close() //nolint:errcheck,gosec // Write error takes precedence
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return f.Close()
}

func (d *Dataset) saveJSON(path string) error {
	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := d.df.WriteJSON(f); err != nil {
		f.Close() //nolint:errcheck,gosec // Write error takes precedence
		return fmt.Errorf("failed to write json: %w", err)
	}
	return f.Close()
}

func (d *Dataset) saveExcel(path string) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // Best effort cleanup

	const sheet = "Sheet1"
	for r, record := range d.df.Records() {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		row := make([]interface{}, len(record))
		for i, v := range record {
			row[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
