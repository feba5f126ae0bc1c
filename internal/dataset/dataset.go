package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// Loading errors.
var (
	// ErrUnsupportedFormat is returned for file extensions the loader
	// does not understand.
	ErrUnsupportedFormat = errors.New("unsupported file format: expected csv, tsv, json, or xlsx")

	// ErrEmptyDataset is returned when a file loads successfully but
	// contains no data rows.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrColumnNotFound is returned when a requested column does not exist.
	ErrColumnNotFound = errors.New("column not found")
)

// defaultNAValues are the strings always treated as missing values.
// Additional values can be supplied through LoadOptions.
var defaultNAValues = []string{"NA", "NaN", "<nil>", "null", "NULL", "n/a", "N/A"}

// LoadOptions customizes how a data file is parsed.
type LoadOptions struct {
	// Delimiter is the field separator for delimited files.
	// Zero means comma for .csv and tab for .tsv.
	Delimiter rune

	// NoHeader indicates the file has no header row.
	NoHeader bool

	// NAValues are additional strings treated as missing values.
	NAValues []string

	// Types overrides detected column storage types.
	// Valid values: string, int, float, bool.
	Types map[string]string
}

// Dataset is a loaded tabular dataset.
type Dataset struct {
	df   dataframe.DataFrame
	path string
}

// Load reads a data file and returns a Dataset.
// The format is chosen by file extension: .csv, .tsv, .json, and .xlsx
// are supported. JSON files must contain an array of flat objects.
func Load(path string, opts LoadOptions) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var df dataframe.DataFrame
	switch ext {
	case ".csv", ".tsv":
		f, err := os.Open(path) //nolint:gosec // User-provided data path is intentional
		if err != nil {
			return nil, fmt.Errorf("failed to open data file: %w", err)
		}
		defer f.Close() //nolint:errcheck // Read-only file

		delim := opts.Delimiter
		if delim == 0 {
			delim = ','
			if ext == ".tsv" {
				delim = '\t'
			}
		}
		loadOpts := append([]dataframe.LoadOption{
			dataframe.WithDelimiter(delim),
			dataframe.HasHeader(!opts.NoHeader),
			dataframe.NaNValues(naValues(opts.NAValues)),
		}, withTypes(opts.Types)...)
		df = dataframe.ReadCSV(f, loadOpts...)
	case ".json":
		f, err := os.Open(path) //nolint:gosec // User-provided data path is intentional
		if err != nil {
			return nil, fmt.Errorf("failed to open data file: %w", err)
		}
		defer f.Close() //nolint:errcheck // Read-only file

		df = dataframe.ReadJSON(f, withTypes(opts.Types)...)
	case ".xlsx":
		records, err := readExcel(path)
		if err != nil {
			return nil, err
		}
		loadOpts := append([]dataframe.LoadOption{
			dataframe.HasHeader(!opts.NoHeader),
			dataframe.NaNValues(naValues(opts.NAValues)),
		}, withTypes(opts.Types)...)
		df = dataframe.LoadRecords(records, loadOpts...)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if df.Err != nil {
		// gota reports a header-only file as a load error rather than an
		// empty frame.
		if strings.Contains(df.Err.Error(), "empty DataFrame") {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), df.Err)
	}
	if df.Nrow() == 0 {
		return nil, ErrEmptyDataset
	}

	return &Dataset{df: df, path: path}, nil
}

// FromFrame wraps an existing dataframe in a Dataset.
// Used by the preprocessing pipeline and by sample data generation.
func FromFrame(df dataframe.DataFrame) *Dataset {
	return &Dataset{df: df}
}

// withTypes converts a name-to-type-name map into gota load options.
func withTypes(types map[string]string) []dataframe.LoadOption {
	if len(types) == 0 {
		return nil
	}

	converted := make(map[string]series.Type, len(types))
	for name, t := range types {
		switch strings.ToLower(t) {
		case "string":
			converted[name] = series.String
		case "int":
			converted[name] = series.Int
		case "float":
			converted[name] = series.Float
		case "bool":
			converted[name] = series.Bool
		}
	}
	return []dataframe.LoadOption{dataframe.WithTypes(converted)}
}

// naValues merges extra missing value markers with the defaults.
func naValues(extra []string) []string {
	if len(extra) == 0 {
		return defaultNAValues
	}
	merged := make([]string, 0, len(defaultNAValues)+len(extra))
	merged = append(merged, defaultNAValues...)
	merged = append(merged, extra...)
	return merged
}

// readExcel reads the first sheet of an xlsx workbook as string records.
func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only workbook

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyDataset
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	// Excel rows can be ragged when trailing cells are empty.
	// Pad every row to the header width so the dataframe loads cleanly.
	width := len(rows[0])
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}

	return rows, nil
}

// Path returns the file path the dataset was loaded from.
// Empty for generated or derived datasets.
func (d *Dataset) Path() string { return d.path }

// Frame returns the underlying dataframe.
func (d *Dataset) Frame() dataframe.DataFrame { return d.df }

// SetFrame replaces the underlying dataframe, keeping the source path.
func (d *Dataset) SetFrame(df dataframe.DataFrame) { d.df = df }

// Rows returns the number of data rows.
func (d *Dataset) Rows() int { return d.df.Nrow() }

// Cols returns the number of columns.
func (d *Dataset) Cols() int { return d.df.Ncol() }

// Names returns the column names in order.
func (d *Dataset) Names() []string { return d.df.Names() }

// HasColumn reports whether the dataset contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, n := range d.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Col returns the named column.
func (d *Dataset) Col(name string) (series.Series, error) {
	if !d.HasColumn(name) {
		return series.Series{}, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return d.df.Col(name), nil
}

// NumericValues returns the non-missing float values of a column.
// Missing entries are dropped, not zero-filled, so statistics computed on
// the result match a complete-case analysis of that column.
func (d *Dataset) NumericValues(name string) ([]float64, error) {
	col, err := d.Col(name)
	if err != nil {
		return nil, err
	}

	floats := col.Float()
	nan := col.IsNaN()
	values := make([]float64, 0, len(floats))
	for i, v := range floats {
		if nan[i] {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

// NumericColumns returns the names of numeric columns in order.
func (d *Dataset) NumericColumns() []string {
	names := d.df.Names()
	types := d.df.Types()

	numeric := make([]string, 0, len(names))
	for i, t := range types {
		if t == series.Int || t == series.Float {
			numeric = append(numeric, names[i])
		}
	}
	return numeric
}

// StringColumns returns the names of string columns in order.
func (d *Dataset) StringColumns() []string {
	names := d.df.Names()
	types := d.df.Types()

	strs := make([]string, 0, len(names))
	for i, t := range types {
		if t == series.String {
			strs = append(strs, names[i])
		}
	}
	return strs
}
