package plot

import (
	"fmt"
	"image/color"
	"image/png"
	"io"

	"github.com/thesiskit/thesiskit/internal/stats"
)

// BoxGroup is one box in a grouped box plot.
type BoxGroup struct {
	// Label names the group under its box.
	Label string

	// Values are the non-missing observations.
	Values []float64
}

// BoxFigure draws side-by-side box plots of a numeric column, one box
// per group. Whiskers extend to the most extreme values within 1.5 IQR
// of the quartiles.
type BoxFigure struct {
	// ValueColumn is the plotted column name.
	ValueColumn string

	// GroupColumn is the grouping column name, empty for a single box.
	GroupColumn string

	// Groups holds the boxes in display order.
	Groups []BoxGroup

	// Width and Height are the output dimensions in pixels.
	Width  int
	Height int
}

// Filename returns the output file name.
func (f *BoxFigure) Filename() string {
	if f.GroupColumn == "" {
		return "box_" + sanitizeName(f.ValueColumn) + ".png"
	}
	return "box_" + sanitizeName(f.ValueColumn) + "_by_" + sanitizeName(f.GroupColumn) + ".png"
}

// boxStats holds the five-number summary of one group.
type boxStats struct {
	q1, median, q3       float64
	whiskerLo, whiskerHi float64
}

// computeBox derives the box geometry for one group.
func computeBox(values []float64) boxStats {
	q1 := stats.Quantile(values, 0.25)
	median := stats.Median(values)
	q3 := stats.Quantile(values, 0.75)
	iqr := q3 - q1

	loFence := q1 - 1.5*iqr
	hiFence := q3 + 1.5*iqr

	lo, hi := q1, q3
	first := true
	for _, v := range values {
		if v < loFence || v > hiFence {
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return boxStats{q1: q1, median: median, q3: q3, whiskerLo: lo, whiskerHi: hi}
}

// Render draws the figure.
func (f *BoxFigure) Render(w io.Writer) error {
	groups := make([]BoxGroup, 0, len(f.Groups))
	for _, g := range f.Groups {
		if len(g.Values) > 0 {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return ErrNoData
	}

	const (
		marginTop    = 50
		marginLeft   = 70
		marginBottom = 40
		marginRight  = 20
		yTicks       = 5
	)

	img := newCanvas(f.Width, f.Height)

	title := "Distribution of " + f.ValueColumn
	if f.GroupColumn != "" {
		title += " by " + f.GroupColumn
	}
	drawTextCentered(img, f.Width/2, 24, title, rasterBlack)

	// Global value range across whiskers and data extremes.
	min, max := groups[0].Values[0], groups[0].Values[0]
	for _, g := range groups {
		for _, v := range g.Values {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if min == max {
		min--
		max++
	}

	plotTop := marginTop
	plotBottom := f.Height - marginBottom
	plotLeft := marginLeft
	plotRight := f.Width - marginRight

	toY := func(v float64) int {
		frac := (v - min) / (max - min)
		return plotBottom - int(frac*float64(plotBottom-plotTop))
	}

	// Y axis with tick labels.
	drawVLine(img, plotLeft, plotTop, plotBottom, rasterBlack)
	for i := 0; i <= yTicks; i++ {
		v := min + (max-min)*float64(i)/float64(yTicks)
		y := toY(v)
		drawHLine(img, plotLeft-4, plotLeft, y, rasterBlack)
		drawHLine(img, plotLeft, plotRight, y, color.RGBA{R: 230, G: 230, B: 230, A: 255})
		label := fmt.Sprintf("%.4g", v)
		drawText(img, plotLeft-textWidth(label)-8, y+4, label, rasterBlack)
	}
	drawHLine(img, plotLeft, plotRight, plotBottom, rasterBlack)

	// One slot per group, box occupying half the slot width.
	slot := (plotRight - plotLeft) / len(groups)
	boxHalf := slot / 4

	boxFill := color.RGBA{R: 205, G: 225, B: 250, A: 255}
	boxEdge := color.RGBA{R: 40, G: 90, B: 160, A: 255}
	medianCol := color.RGBA{R: 200, G: 40, B: 40, A: 255}

	for i, g := range groups {
		b := computeBox(g.Values)
		cx := plotLeft + i*slot + slot/2

		yQ1 := toY(b.q1)
		yQ3 := toY(b.q3)
		yMed := toY(b.median)
		yLo := toY(b.whiskerLo)
		yHi := toY(b.whiskerHi)

		// Whiskers with caps
		drawVLine(img, cx, yHi, yQ3, rasterBlack)
		drawVLine(img, cx, yQ1, yLo, rasterBlack)
		drawHLine(img, cx-boxHalf/2, cx+boxHalf/2, yHi, rasterBlack)
		drawHLine(img, cx-boxHalf/2, cx+boxHalf/2, yLo, rasterBlack)

		// Box and median
		fillRect(img, cx-boxHalf, yQ3, cx+boxHalf, yQ1, boxFill)
		drawRect(img, cx-boxHalf, yQ3, cx+boxHalf, yQ1, boxEdge)
		drawHLine(img, cx-boxHalf, cx+boxHalf, yMed, medianCol)

		label := truncateLabel(g.Label, slot-6)
		drawTextCentered(img, cx, plotBottom+18, label, rasterBlack)
	}

	return png.Encode(w, img)
}
