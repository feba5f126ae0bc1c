package plot

import (
	"fmt"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"
)

// SummaryColumn holds the numbers shown for one numeric column in the
// research summary panel.
type SummaryColumn struct {
	Name    string
	Count   int
	Missing int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

// SummaryFigure draws a single-page overview of a dataset: its shape,
// column kind counts, completeness, and a table of numeric columns with
// a range bar marking where each mean falls between min and max. Drawn
// as a raster because it is a text panel, not a chart.
type SummaryFigure struct {
	// Source is the dataset file name shown under the title.
	Source string

	// Rows and Cols are the dataset shape.
	Rows int
	Cols int

	// KindCounts maps column kind names to how many columns have them.
	KindCounts map[string]int

	// MissingCells is the total missing cell count.
	MissingCells int

	// Columns are the numeric columns, in display order.
	Columns []SummaryColumn

	// Width and Height are the output dimensions in pixels.
	Width  int
	Height int
}

// Filename returns the output file name.
func (f *SummaryFigure) Filename() string {
	return "research_summary.png"
}

var summaryBarFill = color.RGBA{R: 100, G: 149, B: 237, A: 255}

// Render draws the figure.
func (f *SummaryFigure) Render(w io.Writer) error {
	if f.Rows == 0 || f.Cols == 0 {
		return ErrNoData
	}

	const (
		marginLeft = 40
		lineHeight = 18
		rowHeight  = 22
	)

	img := newCanvas(f.Width, f.Height)

	drawTextCentered(img, f.Width/2, 24, "Research Summary", rasterBlack)
	if f.Source != "" {
		drawTextCentered(img, f.Width/2, 42, truncateLabel(f.Source, f.Width-2*marginLeft), rasterGray)
	}

	y := 72
	drawText(img, marginLeft, y, fmt.Sprintf("Observations: %d    Columns: %d", f.Rows, f.Cols), rasterBlack)
	y += lineHeight

	if len(f.KindCounts) > 0 {
		kinds := make([]string, 0, len(f.KindCounts))
		for kind := range f.KindCounts {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		line := "Column kinds:"
		for _, kind := range kinds {
			line += fmt.Sprintf(" %s %d", kind, f.KindCounts[kind])
		}
		drawText(img, marginLeft, y, line, rasterBlack)
		y += lineHeight
	}

	total := f.Rows * f.Cols
	percent := 100 * float64(f.MissingCells) / float64(total)
	drawText(img, marginLeft, y,
		fmt.Sprintf("Missing cells: %d of %d (%.1f%%)", f.MissingCells, total, percent), rasterBlack)
	y += lineHeight

	if len(f.Columns) == 0 {
		return png.Encode(w, img)
	}

	// Numeric column table. The bar shows the min..max range with a
	// marker at the mean.
	y += lineHeight
	nameWidth := f.Width / 5
	statWidth := 110
	barX0 := marginLeft + nameWidth + 2*statWidth
	barX1 := f.Width - marginLeft
	if barX1-barX0 < 60 {
		barX1 = barX0 + 60
	}

	drawText(img, marginLeft, y, "Column", rasterBlack)
	drawText(img, marginLeft+nameWidth, y, "Mean", rasterBlack)
	drawText(img, marginLeft+nameWidth+statWidth, y, "Std", rasterBlack)
	drawText(img, barX0, y, "Range (marker at mean)", rasterBlack)
	y += 8
	drawHLine(img, marginLeft, barX1, y, rasterGray)
	y += rowHeight

	maxRows := (f.Height - y - 10) / rowHeight
	columns := f.Columns
	truncated := 0
	if len(columns) > maxRows && maxRows > 0 {
		truncated = len(columns) - (maxRows - 1)
		columns = columns[:maxRows-1]
	}

	for _, col := range columns {
		baseline := y + 4
		drawText(img, marginLeft, baseline, truncateLabel(col.Name, nameWidth-10), rasterBlack)
		drawText(img, marginLeft+nameWidth, baseline, fmt.Sprintf("%.2f", col.Mean), rasterBlack)
		drawText(img, marginLeft+nameWidth+statWidth, baseline, fmt.Sprintf("%.2f", col.StdDev), rasterBlack)

		barY0 := y - 8
		barY1 := y + 2
		drawRect(img, barX0, barY0, barX1, barY1, rasterGray)

		span := col.Max - col.Min
		if span > 0 && !math.IsNaN(col.Mean) {
			t := (col.Mean - col.Min) / span
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
			markerX := barX0 + int(t*float64(barX1-barX0))
			fillRect(img, barX0+1, barY0+1, markerX, barY1, summaryBarFill)
			drawVLine(img, markerX, barY0-2, barY1+2, rasterBlack)
		}

		y += rowHeight
	}

	if truncated > 0 {
		drawText(img, marginLeft, y+4, fmt.Sprintf("... and %d more columns", truncated), rasterGray)
	}

	return png.Encode(w, img)
}
