package dataset

import (
	"strings"
	"time"

	"github.com/go-gota/gota/series"
)

// Kind classifies a column for analysis purposes.
// The storage type (int, float, string) says how values are stored; the
// kind says how the column should be treated: numeric columns get
// descriptive statistics and correlations, categorical columns get
// frequency tables and encoding, datetime columns drive time series plots.
type Kind string

// Column kinds.
const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindDatetime    Kind = "datetime"
	KindText        Kind = "text"
)

// categoricalUniqueRatio is the threshold below which a string column is
// treated as categorical. A column where fewer than 10% of the values are
// distinct is almost always a coded category, not free text.
const categoricalUniqueRatio = 0.1

// datetimeLayouts are the timestamp formats tried when sniffing string
// columns for dates.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02.01.2006",
}

// datetimeNameHints are column name fragments that suggest a datetime
// column. Name hints run before value sniffing because they are cheap and
// survey exports frequently store dates in inconsistent formats.
var datetimeNameHints = []string{"date", "time", "timestamp", "created", "updated"}

// ColumnKinds classifies every column in the dataset.
func (d *Dataset) ColumnKinds() map[string]Kind {
	names := d.df.Names()
	types := d.df.Types()

	kinds := make(map[string]Kind, len(names))
	for i, name := range names {
		kinds[name] = d.columnKind(name, types[i])
	}
	return kinds
}

// columnKind classifies one column from its storage type, name, and values.
func (d *Dataset) columnKind(name string, t series.Type) Kind {
	switch t {
	case series.Int, series.Float:
		return KindNumeric
	case series.Bool:
		return KindCategorical
	}

	if hasDatetimeName(name) || d.looksLikeDatetime(name) {
		return KindDatetime
	}

	col := d.df.Col(name)
	unique := uniqueCount(col)
	if d.df.Nrow() > 0 && float64(unique)/float64(d.df.Nrow()) < categoricalUniqueRatio {
		return KindCategorical
	}
	return KindText
}

// hasDatetimeName reports whether the column name suggests a datetime.
func hasDatetimeName(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range datetimeNameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// looksLikeDatetime samples non-missing values and reports whether they
// all parse as timestamps. Sampling the first handful keeps kind
// detection cheap on large files.
func (d *Dataset) looksLikeDatetime(name string) bool {
	const sampleSize = 10

	col := d.df.Col(name)
	records := col.Records()
	nan := col.IsNaN()

	checked := 0
	for i, v := range records {
		if nan[i] || v == "" {
			continue
		}
		if !parsesAsDatetime(v) {
			return false
		}
		checked++
		if checked >= sampleSize {
			break
		}
	}
	return checked > 0
}

// parsesAsDatetime tries the known layouts against a single value.
func parsesAsDatetime(v string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// ParseDatetime parses a value using the known layouts.
func ParseDatetime(v string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// uniqueCount counts distinct non-missing values in a column.
func uniqueCount(col series.Series) int {
	records := col.Records()
	nan := col.IsNaN()

	seen := make(map[string]struct{}, len(records))
	for i, v := range records {
		if nan[i] || v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}
