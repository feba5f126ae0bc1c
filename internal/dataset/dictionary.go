package dataset

import (
	"time"

	"github.com/thesiskit/thesiskit/internal/model"
	"github.com/thesiskit/thesiskit/internal/stats"
)

// BuildDictionary generates a data dictionary for the dataset. Variable
// descriptions are left as placeholders for the author to fill in.
func (d *Dataset) BuildDictionary(name, description string) *model.Dictionary {
	dict := &model.Dictionary{
		Info: model.DictionaryInfo{
			Name:        name,
			Description: description,
			CreatedDate: time.Now(),
			Rows:        d.Rows(),
			Cols:        d.Cols(),
		},
		Variables: make(map[string]model.VariableInfo, d.Cols()),
	}

	names := d.df.Names()
	types := d.df.Types()
	missing := d.MissingCounts()

	for i, col := range names {
		info := model.VariableInfo{
			Type:        string(types[i]),
			Description: "TODO: describe this variable",
		}

		info.MissingCount = missing[col]
		if d.Rows() > 0 {
			info.MissingPercent = 100 * float64(info.MissingCount) / float64(d.Rows())
		}

		if contains(d.NumericColumns(), col) {
			if values, err := d.NumericValues(col); err == nil && len(values) > 0 {
				s := stats.Describe(values)
				info.Min = &s.Min
				info.Max = &s.Max
				info.Mean = &s.Mean
				info.Std = &s.StdDev
			}
		} else if counts, err := d.ValueCounts(col); err == nil && len(counts) > 0 {
			unique := len(counts)
			info.UniqueValues = &unique
			if cs, ok := d.categoricalStats(col); ok {
				info.MostCommon = cs.MostCommon
			}
		}

		dict.Variables[col] = info
	}

	return dict
}
