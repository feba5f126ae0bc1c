package plot

import (
	"fmt"
	"image/color"
	"image/png"
	"io"
	"math"
)

// HeatmapFigure draws a correlation matrix as a colored grid.
// Positive correlations shade red, negative shade blue, zero is white.
type HeatmapFigure struct {
	// Columns are the variable names, in matrix order.
	Columns []string

	// Matrix is the symmetric correlation matrix over Columns.
	Matrix [][]float64

	// Width and Height are the output dimensions in pixels.
	Width  int
	Height int
}

// Filename returns the output file name.
func (f *HeatmapFigure) Filename() string {
	return "correlation_heatmap.png"
}

// heatmapColor maps a correlation in -1..1 to a diverging color scale.
func heatmapColor(r float64) color.RGBA {
	if math.IsNaN(r) {
		return rasterGray
	}
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}

	// Blend white toward red for positive values, toward blue for
	// negative values.
	t := math.Abs(r)
	fade := uint8(255 - t*200)
	if r >= 0 {
		return color.RGBA{R: 255, G: fade, B: fade, A: 255}
	}
	return color.RGBA{R: fade, G: fade, B: 255, A: 255}
}

// Render draws the figure.
func (f *HeatmapFigure) Render(w io.Writer) error {
	n := len(f.Columns)
	if n == 0 || len(f.Matrix) != n {
		return ErrNoData
	}

	const (
		marginTop    = 50
		marginLeft   = 110
		marginBottom = 30
		marginRight  = 20
	)

	img := newCanvas(f.Width, f.Height)

	gridW := f.Width - marginLeft - marginRight
	gridH := f.Height - marginTop - marginBottom
	if gridW < n || gridH < n {
		return ErrNoData
	}
	cellW := gridW / n
	cellH := gridH / n

	drawTextCentered(img, f.Width/2, 24, "Correlation Matrix", rasterBlack)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x0 := marginLeft + j*cellW
			y0 := marginTop + i*cellH
			x1 := x0 + cellW
			y1 := y0 + cellH

			r := f.Matrix[i][j]
			fillRect(img, x0, y0, x1, y1, heatmapColor(r))
			drawRect(img, x0, y0, x1, y1, rasterWhite)

			// Print the coefficient when the cell has room for it.
			if cellW >= 40 && cellH >= 16 && !math.IsNaN(r) {
				label := fmt.Sprintf("%.2f", r)
				drawTextCentered(img, (x0+x1)/2, (y0+y1)/2+4, label, rasterBlack)
			}
		}
	}

	// Row labels on the left, column labels under the grid.
	for i, name := range f.Columns {
		label := truncateLabel(name, marginLeft-10)
		y := marginTop + i*cellH + cellH/2 + 4
		drawText(img, marginLeft-textWidth(label)-6, y, label, rasterBlack)
	}
	for j, name := range f.Columns {
		label := truncateLabel(name, cellW-4)
		cx := marginLeft + j*cellW + cellW/2
		drawTextCentered(img, cx, marginTop+n*cellH+16, label, rasterBlack)
	}

	return png.Encode(w, img)
}
