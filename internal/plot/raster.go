package plot

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster drawing helpers shared by the heatmap and box plot, which are
// drawn by hand because go-chart has no native type for them.

// labelFace is the bitmap font used for raster figure labels.
var labelFace = basicfont.Face7x13

var (
	rasterWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	rasterBlack = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	rasterGray  = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

// newCanvas creates a white canvas.
func newCanvas(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(rasterWhite), image.Point{}, draw.Src)
	return img
}

// drawText draws a string with its baseline at (x, y).
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: labelFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// textWidth measures a string in pixels.
func textWidth(text string) int {
	d := &font.Drawer{Face: labelFace}
	return d.MeasureString(text).Ceil()
}

// drawTextCentered draws a string horizontally centered on cx with its
// baseline at y.
func drawTextCentered(img *image.RGBA, cx, y int, text string, col color.Color) {
	drawText(img, cx-textWidth(text)/2, y, text, col)
}

// fillRect fills an axis-aligned rectangle.
func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.Color) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(col), image.Point{}, draw.Src)
}

// drawHLine draws a 1px horizontal line from x0 to x1 at y.
func drawHLine(img *image.RGBA, x0, x1, y int, col color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		img.Set(x, y, col)
	}
}

// drawVLine draws a 1px vertical line from y0 to y1 at x.
func drawVLine(img *image.RGBA, x, y0, y1 int, col color.Color) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		img.Set(x, y, col)
	}
}

// drawRect draws a 1px rectangle outline.
func drawRect(img *image.RGBA, x0, y0, x1, y1 int, col color.Color) {
	drawHLine(img, x0, x1, y0, col)
	drawHLine(img, x0, x1, y1, col)
	drawVLine(img, x0, y0, y1, col)
	drawVLine(img, x1, y0, y1, col)
}

// truncateLabel shortens a label to fit the given pixel width.
func truncateLabel(text string, maxWidth int) string {
	if textWidth(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if textWidth(string(runes)+"…") <= maxWidth {
			return string(runes) + "…"
		}
	}
	return string(runes)
}
