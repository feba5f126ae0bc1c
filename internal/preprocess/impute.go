package preprocess

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/thesiskit/thesiskit/internal/dataset"
	"github.com/thesiskit/thesiskit/internal/stats"
)

// Imputation strategies.
const (
	// ImputeAuto fills numeric columns with the median and categorical
	// columns with the mode.
	ImputeAuto = "auto"

	// ImputeMean fills numeric columns with the mean.
	ImputeMean = "mean"

	// ImputeMedian fills numeric columns with the median.
	ImputeMedian = "median"

	// ImputeMode fills any column with its most frequent value.
	ImputeMode = "mode"

	// ImputeDrop removes rows containing missing values instead of filling.
	ImputeDrop = "drop"
)

// ImputeStep fills or drops missing values.
type ImputeStep struct {
	// Strategy is one of the Impute* constants.
	Strategy string

	// Columns restricts the step to specific columns. Empty means all
	// columns with missing values.
	Columns []string
}

// Name returns the step name.
func (s *ImputeStep) Name() string { return "impute" }

// Do fills missing values according to the configured strategy.
func (s *ImputeStep) Do(_ context.Context, state *State) error {
	d := state.Data

	switch s.Strategy {
	case ImputeAuto, ImputeMean, ImputeMedian, ImputeMode:
		// Handled below
	case ImputeDrop:
		return s.dropRows(state)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, s.Strategy)
	}

	columns, err := resolveColumns(d, s.Columns, d.Names())
	if err != nil {
		return err
	}

	for _, name := range columns {
		missing, err := d.MissingInColumn(name)
		if err != nil {
			return err
		}
		if missing == 0 {
			continue
		}

		numeric := isNumeric(d, name)
		switch {
		case numeric && s.Strategy != ImputeMode:
			if err := s.fillNumeric(state, name, missing); err != nil {
				return err
			}
		default:
			s.fillMode(state, name, missing)
		}
	}

	return nil
}

// dropRows removes every row with a missing value in the configured columns.
func (s *ImputeStep) dropRows(state *State) error {
	d := state.Data

	columns, err := resolveColumns(d, s.Columns, d.Names())
	if err != nil {
		return err
	}

	before := d.Rows()
	complete := d.CompleteRows(columns)
	if len(complete) == before {
		return nil
	}

	keepRows(d, complete)
	state.Summary.DroppedRows += before - len(complete)
	return nil
}

// fillNumeric fills a numeric column with its mean or median.
func (s *ImputeStep) fillNumeric(state *State, name string, missing int) error {
	d := state.Data

	observed, err := d.NumericValues(name)
	if err != nil {
		return err
	}
	if len(observed) == 0 {
		// Nothing to estimate the fill from; leave the column alone.
		return nil
	}

	fill := stats.Median(observed)
	desc := "median"
	if s.Strategy == ImputeMean {
		fill = stats.Mean(observed)
		desc = "mean"
	}

	values, nan := columnFloats(d, name)
	filled := make([]float64, len(values))
	for i, v := range values {
		if nan[i] || math.IsNaN(v) {
			filled[i] = fill
		} else {
			filled[i] = v
		}
	}

	replaceFloatColumn(d, name, filled)
	state.Summary.RecordImputation(name, fmt.Sprintf("%s (%d filled)", desc, missing))
	return nil
}

// fillMode fills a column with its most frequent value.
func (s *ImputeStep) fillMode(state *State, name string, missing int) {
	d := state.Data

	counts, err := d.ValueCounts(name)
	if err != nil || len(counts) == 0 {
		return
	}

	mode := ""
	modeCount := 0
	for v, c := range counts {
		if c > modeCount || (c == modeCount && v < mode) {
			mode = v
			modeCount = c
		}
	}

	col := d.Frame().Col(name)
	records := col.Records()
	nan := col.IsNaN()
	filled := make([]string, len(records))
	for i, v := range records {
		if nan[i] || v == "" {
			filled[i] = mode
		} else {
			filled[i] = v
		}
	}

	if isNumeric(d, name) {
		// Writing string records back into a numeric column would
		// change its storage type, so reparse into floats.
		floats := make([]float64, len(filled))
		for i, v := range filled {
			floats[i], _ = parseFloat(v)
		}
		replaceFloatColumn(d, name, floats)
	} else {
		replaceStringColumn(d, name, filled)
	}
	state.Summary.RecordImputation(name, fmt.Sprintf("mode (%d filled)", missing))
}

// parseFloat parses a numeric record, returning NaN for bad input.
func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN(), err
	}
	return f, nil
}

// isNumeric reports whether the named column stores numbers.
func isNumeric(d *dataset.Dataset, name string) bool {
	for _, n := range d.NumericColumns() {
		if n == name {
			return true
		}
	}
	return false
}
