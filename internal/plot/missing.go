package plot

import (
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
)

// MissingFigure draws a bar chart of missing value counts per column.
// Columns without missing values are omitted.
type MissingFigure struct {
	// Counts maps column names to missing value counts.
	Counts map[string]int

	// Width and Height are the output dimensions in pixels.
	Width  int
	Height int
}

// Filename returns the output file name.
func (f *MissingFigure) Filename() string {
	return "missing_values.png"
}

// Render draws the figure.
func (f *MissingFigure) Render(w io.Writer) error {
	names := make([]string, 0, len(f.Counts))
	for name, count := range f.Counts {
		if count > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ErrNoData
	}
	sort.Strings(names)

	bars := make([]chart.Value, 0, len(names))
	for _, name := range names {
		bars = append(bars, chart.Value{
			Value: float64(f.Counts[name]),
			Label: name,
		})
	}

	ch := chart.BarChart{
		Title:      "Missing Values by Column",
		Width:      f.Width,
		Height:     f.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   40,
		Bars:       bars,
	}

	return ch.Render(chart.PNG, w)
}
