package dataset

import (
	"github.com/thesiskit/thesiskit/internal/model"
	"github.com/thesiskit/thesiskit/internal/stats"
)

// Explore runs exploratory data analysis over the dataset: shape, column
// kinds, missing value counts, descriptive statistics for numeric
// columns, and frequency summaries for categorical columns.
func (d *Dataset) Explore() *model.ExploratoryResult {
	kinds := d.ColumnKinds()

	result := &model.ExploratoryResult{
		Rows:          d.Rows(),
		Cols:          d.Cols(),
		ColumnKinds:   make(map[string]string, len(kinds)),
		MissingCounts: make(map[string]int),
		Numeric:       make(map[string]model.ColumnStats),
	}

	for name, kind := range kinds {
		result.ColumnKinds[name] = string(kind)
	}

	for name, count := range d.MissingCounts() {
		if count > 0 {
			result.MissingCounts[name] = count
		}
	}

	for _, name := range d.NumericColumns() {
		values, err := d.NumericValues(name)
		if err != nil || len(values) == 0 {
			continue
		}
		result.Numeric[name] = stats.Describe(values)
	}

	for name, kind := range kinds {
		if kind != KindCategorical {
			continue
		}
		if cs, ok := d.categoricalStats(name); ok {
			if result.Categorical == nil {
				result.Categorical = make(map[string]model.CategoricalStats)
			}
			result.Categorical[name] = cs
		}
	}

	return result
}

// ValueCounts counts occurrences of each non-missing value in a column.
func (d *Dataset) ValueCounts(name string) (map[string]int, error) {
	col, err := d.Col(name)
	if err != nil {
		return nil, err
	}

	records := col.Records()
	nan := col.IsNaN()

	counts := make(map[string]int)
	for i, v := range records {
		if nan[i] || v == "" {
			continue
		}
		counts[v]++
	}
	return counts, nil
}

// categoricalStats summarizes one categorical column.
func (d *Dataset) categoricalStats(name string) (model.CategoricalStats, bool) {
	counts, err := d.ValueCounts(name)
	if err != nil || len(counts) == 0 {
		return model.CategoricalStats{}, false
	}

	mode := ""
	modeCount := 0
	for v, c := range counts {
		// Ties break toward the lexicographically smaller value so the
		// result is deterministic across map iteration orders.
		if c > modeCount || (c == modeCount && v < mode) {
			mode = v
			modeCount = c
		}
	}

	return model.CategoricalStats{
		UniqueCount:     len(counts),
		MostCommon:      mode,
		MostCommonCount: modeCount,
	}, true
}
