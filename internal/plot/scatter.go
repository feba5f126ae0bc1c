package plot

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// groupPalette cycles through colors for grouped scatter series.
var groupPalette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
	chart.ColorAlternateGray,
}

// ScatterGroup is one colored point group in a scatter plot.
type ScatterGroup struct {
	// Label names the group in the legend.
	Label string

	// X and Y are the point coordinates, equal length.
	X []float64
	Y []float64
}

// ScatterFigure draws a scatter plot of two numeric columns, optionally
// split into colored groups by a categorical column.
type ScatterFigure struct {
	// XColumn and YColumn are the axis names.
	XColumn string
	YColumn string

	// Groups holds the point groups. A single group draws an ungrouped
	// plot without a legend.
	Groups []ScatterGroup

	// Width and Height are the output dimensions in pixels.
	Width  int
	Height int
}

// Filename returns the output file name.
func (f *ScatterFigure) Filename() string {
	return "scatter_" + sanitizeName(f.XColumn) + "_" + sanitizeName(f.YColumn) + ".png"
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// Render draws the figure.
func (f *ScatterFigure) Render(w io.Writer) error {
	points := 0
	series := make([]chart.Series, 0, len(f.Groups))
	for i, g := range f.Groups {
		if len(g.X) == 0 || len(g.X) != len(g.Y) {
			continue
		}
		points += len(g.X)
		series = append(series, chart.ContinuousSeries{
			Name:    g.Label,
			XValues: g.X,
			YValues: g.Y,
			Style:   pointStyle(groupPalette[i%len(groupPalette)]),
		})
	}
	if points == 0 {
		return ErrNoData
	}

	ch := chart.Chart{
		Title:      f.YColumn + " vs " + f.XColumn,
		Width:      f.Width,
		Height:     f.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		XAxis:      chart.XAxis{Name: f.XColumn},
		YAxis:      chart.YAxis{Name: f.YColumn},
		Series:     series,
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	return ch.Render(chart.PNG, w)
}
