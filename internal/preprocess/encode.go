package preprocess

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-gota/gota/series"

	"github.com/thesiskit/thesiskit/internal/dataset"
)

// Encoding methods.
const (
	// EncodeLabel maps categories to integer codes in sorted value order.
	EncodeLabel = "label"

	// EncodeOneHot adds a 0/1 indicator column per category and drops
	// the original column.
	EncodeOneHot = "onehot"
)

// maxOneHotCardinality bounds one-hot expansion. A column with more
// distinct values than this would explode the dataset width, which almost
// always means the column is an identifier, not a category.
const maxOneHotCardinality = 20

// EncodeStep converts categorical columns to numeric form.
type EncodeStep struct {
	// Method is EncodeLabel or EncodeOneHot.
	Method string

	// Columns restricts the step to specific columns. Empty means all
	// categorical columns.
	Columns []string
}

// Name returns the step name.
func (s *EncodeStep) Name() string { return "encode" }

// Do encodes categorical columns.
func (s *EncodeStep) Do(_ context.Context, state *State) error {
	switch s.Method {
	case EncodeLabel, EncodeOneHot:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, s.Method)
	}

	d := state.Data
	columns, err := resolveColumns(d, s.Columns, categoricalColumns(d))
	if err != nil {
		return err
	}

	for _, name := range columns {
		levels, err := sortedLevels(d, name)
		if err != nil {
			return err
		}
		if len(levels) == 0 {
			continue
		}

		if s.Method == EncodeLabel {
			s.labelEncode(state, name, levels)
			continue
		}

		if len(levels) > maxOneHotCardinality {
			// Too many levels to expand; fall back to label codes.
			s.labelEncode(state, name, levels)
			continue
		}
		s.oneHotEncode(state, name, levels)
	}

	return nil
}

// labelEncode replaces a column with integer codes.
// Missing values become code -1 so they stay distinguishable.
func (s *EncodeStep) labelEncode(state *State, name string, levels []string) {
	d := state.Data

	codes := make(map[string]int, len(levels))
	for i, v := range levels {
		codes[v] = i
	}

	col := d.Frame().Col(name)
	records := col.Records()
	nan := col.IsNaN()

	encoded := make([]int, len(records))
	for i, v := range records {
		if nan[i] || v == "" {
			encoded[i] = -1
			continue
		}
		encoded[i] = codes[v]
	}

	replaceIntColumn(d, name, encoded)
	state.Summary.RecordEncoding(name, EncodeLabel)
}

// oneHotEncode adds an indicator column per level and drops the original.
func (s *EncodeStep) oneHotEncode(state *State, name string, levels []string) {
	d := state.Data

	col := d.Frame().Col(name)
	records := col.Records()
	nan := col.IsNaN()

	df := d.Frame()
	for _, level := range levels {
		indicator := make([]int, len(records))
		for i, v := range records {
			if !nan[i] && v == level {
				indicator[i] = 1
			}
		}
		df = df.Mutate(series.New(indicator, series.Int, name+"_"+cleanLevel(level)))
	}
	d.SetFrame(df)

	dropColumn(d, name)
	state.Summary.RecordEncoding(name, EncodeOneHot)
}

// sortedLevels returns the distinct non-missing values of a column in
// sorted order. Sorting makes the code assignment deterministic.
func sortedLevels(d *dataset.Dataset, name string) ([]string, error) {
	counts, err := d.ValueCounts(name)
	if err != nil {
		return nil, err
	}

	levels := make([]string, 0, len(counts))
	for v := range counts {
		levels = append(levels, v)
	}
	sort.Strings(levels)
	return levels, nil
}

// categoricalColumns lists columns detected as categorical.
func categoricalColumns(d *dataset.Dataset) []string {
	kinds := d.ColumnKinds()
	names := make([]string, 0)
	for _, name := range d.Names() {
		if kinds[name] == dataset.KindCategorical {
			names = append(names, name)
		}
	}
	return names
}

// cleanLevel makes a category value safe for use in a column name.
func cleanLevel(level string) string {
	out := make([]rune, 0, len(level))
	for _, r := range level {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
