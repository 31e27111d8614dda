package ttplot

import (
	"image"
	"image/color"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// pickPalette is the fixed 10-color cycle used for per-shot pick curves.
// Curves for the 11th distinct shot wrap back to color 0.
var pickPalette = [10]drawing.Color{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

// shotColor returns the palette color for the i-th distinct shot.
func shotColor(i int) drawing.Color { return pickPalette[i%len(pickPalette)] }

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color, dot float64) chart.Style {
	return chart.Style{StrokeWidth: 0, DotWidth: dot, DotColor: col}
}

// lineStyle returns a solid line style with small point markers.
func lineStyle(col drawing.Color, stroke, dot float64) chart.Style {
	return chart.Style{StrokeWidth: stroke, StrokeColor: col, DotWidth: dot, DotColor: col}
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 18, G: 18, B: 18, A: 255})
		}
	}
	return img
}
