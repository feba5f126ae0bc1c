package preprocess

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/series"

	"github.com/thesiskit/thesiskit/internal/dataset"
)

// Step configuration errors.
var (
	// ErrUnknownStrategy is returned for an unrecognized method name.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrNoNumericColumns is returned when a numeric-only step finds no
	// numeric columns to work on.
	ErrNoNumericColumns = errors.New("no numeric columns in dataset")

	// ErrColumnNotFound is returned when a configured column is missing.
	ErrColumnNotFound = errors.New("column not found")
)

// resolveColumns returns the configured columns, or all fallback columns
// when none are configured. Configured columns must exist.
func resolveColumns(d *dataset.Dataset, configured, fallback []string) ([]string, error) {
	if len(configured) == 0 {
		return fallback, nil
	}
	for _, name := range configured {
		if !d.HasColumn(name) {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
	}
	return configured, nil
}

// replaceFloatColumn swaps a column's values for new floats, keeping the
// column name and position.
func replaceFloatColumn(d *dataset.Dataset, name string, values []float64) {
	df := d.Frame().Mutate(series.New(values, series.Float, name))
	d.SetFrame(df)
}

// replaceStringColumn swaps a column's values for new strings.
func replaceStringColumn(d *dataset.Dataset, name string, values []string) {
	df := d.Frame().Mutate(series.New(values, series.String, name))
	d.SetFrame(df)
}

// replaceIntColumn swaps a column's values for new ints.
func replaceIntColumn(d *dataset.Dataset, name string, values []int) {
	df := d.Frame().Mutate(series.New(values, series.Int, name))
	d.SetFrame(df)
}

// keepRows subsets the dataset to the given row indexes.
func keepRows(d *dataset.Dataset, indexes []int) {
	df := d.Frame().Subset(indexes)
	d.SetFrame(df)
}

// dropColumn removes a column by selecting the complement.
func dropColumn(d *dataset.Dataset, name string) {
	names := d.Names()
	keep := make([]string, 0, len(names)-1)
	for _, n := range names {
		if n != name {
			keep = append(keep, n)
		}
	}
	df := d.Frame().Select(keep)
	d.SetFrame(df)
}

// columnFloats returns the raw float values of a column with the missing
// mask. Missing entries are NaN in the returned slice.
func columnFloats(d *dataset.Dataset, name string) (values []float64, missing []bool) {
	col := d.Frame().Col(name)
	return col.Float(), col.IsNaN()
}
