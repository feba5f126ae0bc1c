package plot

import (
	"errors"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/thesiskit/thesiskit/internal/stats"
)

// ErrNoData is returned when a figure receives no values to draw.
var ErrNoData = errors.New("no data to plot")

// kdeGridPoints is the evaluation grid size for density overlays.
const kdeGridPoints = 200

// DistributionFigure draws a density histogram with a KDE overlay for
// one numeric column.
type DistributionFigure struct {
	// Column is the plotted column name, used in the title and file name.
	Column string

	// Values are the non-missing observations.
	Values []float64

	// Bins is the histogram bin count.
	Bins int

	// Width and Height are the output dimensions in pixels.
	Width  int
	Height int
}

// Filename returns the output file name.
func (f *DistributionFigure) Filename() string {
	return "distribution_" + sanitizeName(f.Column) + ".png"
}

// Render draws the figure.
func (f *DistributionFigure) Render(w io.Writer) error {
	if len(f.Values) == 0 {
		return ErrNoData
	}

	centers, counts := stats.Histogram(f.Values, f.Bins)
	if len(centers) < 2 {
		return ErrNoData
	}

	// Normalize counts to densities so the histogram and the KDE share
	// a y axis.
	binWidth := centers[1] - centers[0]
	n := float64(len(f.Values))

	// Step outline: two points per bin edge.
	histX := make([]float64, 0, 2*len(centers))
	histY := make([]float64, 0, 2*len(centers))
	for i, c := range centers {
		density := 0.0
		if binWidth > 0 {
			density = float64(counts[i]) / (n * binWidth)
		}
		histX = append(histX, c-binWidth/2, c+binWidth/2)
		histY = append(histY, density, density)
	}

	kdeX, kdeY := stats.KDE(f.Values, kdeGridPoints)

	ch := chart.Chart{
		Title:      "Distribution of " + f.Column,
		Width:      f.Width,
		Height:     f.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		XAxis:      chart.XAxis{Name: f.Column},
		YAxis:      chart.YAxis{Name: "density"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "histogram",
				XValues: histX,
				YValues: histY,
				Style: chart.Style{
					StrokeWidth: 1,
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorBlue.WithAlpha(60),
				},
			},
			chart.ContinuousSeries{
				Name:    "kde",
				XValues: kdeX,
				YValues: kdeY,
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: chart.ColorRed,
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}

// sanitizeName makes a column name safe for use in a file name.
func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
