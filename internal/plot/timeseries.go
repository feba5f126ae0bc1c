package plot

import (
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// TimeSeriesFigure draws one numeric column over a datetime column.
type TimeSeriesFigure struct {
	// TimeColumn and ValueColumn are the axis names.
	TimeColumn  string
	ValueColumn string

	// Times and Values are the observations, equal length and already
	// sorted by time.
	Times  []time.Time
	Values []float64

	// Width and Height are the output dimensions in pixels.
	Width  int
	Height int
}

// Filename returns the output file name.
func (f *TimeSeriesFigure) Filename() string {
	return "timeseries_" + sanitizeName(f.ValueColumn) + ".png"
}

// Render draws the figure.
func (f *TimeSeriesFigure) Render(w io.Writer) error {
	if len(f.Times) < 2 || len(f.Times) != len(f.Values) {
		return ErrNoData
	}

	ch := chart.Chart{
		Title:      f.ValueColumn + " over time",
		Width:      f.Width,
		Height:     f.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		XAxis:      chart.XAxis{Name: f.TimeColumn},
		YAxis:      chart.YAxis{Name: f.ValueColumn},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    f.ValueColumn,
				XValues: f.Times,
				YValues: f.Values,
				Style: chart.Style{
					StrokeWidth: 1.5,
					StrokeColor: chart.ColorBlue,
				},
			},
		},
	}

	return ch.Render(chart.PNG, w)
}
