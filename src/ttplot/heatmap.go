package ttplot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/floats"
)

// Heatmap is a vector-to-matrix view: three equally long vectors (x, y, value)
// squeezed onto the grid of unique x and y coordinates. Cells without a datum
// stay empty. Axes are in squeezed index space; tick overrides relabel them.
type Heatmap struct {
	xs    []float64   // unique x coordinates, ascending
	ys    []float64   // unique y coordinates, ascending
	cells [][]float64 // [row][col], row indexes ys; NaN marks empty

	vmin, vmax float64
	label      string

	xTicks []chart.Tick
	yTicks []chart.Tick
}

// DrawVecMatrix rasterizes the (xvec, yvec, vals) triple onto sf as a matrix
// keyed by the unique coordinate values. Later records overwrite earlier ones
// landing in the same cell.
func DrawVecMatrix(sf *Surface, xvec, yvec, vals []float64, label string) (*Heatmap, error) {
	if len(xvec) != len(vals) || len(yvec) != len(vals) {
		return nil, fmt.Errorf("ttplot: vector lengths differ: x=%d y=%d vals=%d", len(xvec), len(yvec), len(vals))
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("ttplot: empty vectors")
	}

	xs, xIdx := squeeze(xvec)
	ys, yIdx := squeeze(yvec)

	cells := make([][]float64, len(ys))
	for r := range cells {
		row := make([]float64, len(xs))
		for c := range row {
			row[c] = math.NaN()
		}
		cells[r] = row
	}
	for i, v := range vals {
		cells[yIdx[i]][xIdx[i]] = v
	}

	h := &Heatmap{
		xs:    xs,
		ys:    ys,
		cells: cells,
		vmin:  floats.Min(vals),
		vmax:  floats.Max(vals),
		label: label,
	}
	sf.heat = h
	return h, nil
}

// squeeze maps values onto indices of their sorted unique set.
func squeeze(v []float64) (unique []float64, idx []int) {
	set := map[float64]struct{}{}
	for _, x := range v {
		set[x] = struct{}{}
	}
	unique = make([]float64, 0, len(set))
	for x := range set {
		unique = append(unique, x)
	}
	sort.Float64s(unique)
	pos := make(map[float64]int, len(unique))
	for i, x := range unique {
		pos[x] = i
	}
	idx = make([]int, len(v))
	for i, x := range v {
		idx[i] = pos[x]
	}
	return unique, idx
}

// Min returns the smallest rendered value.
func (h *Heatmap) Min() float64 { return h.vmin }

// Max returns the largest rendered value.
func (h *Heatmap) Max() float64 { return h.vmax }

// Label returns the value-axis label.
func (h *Heatmap) Label() string { return h.label }

// Shape returns (columns, rows) of the squeezed matrix.
func (h *Heatmap) Shape() (int, int) { return len(h.xs), len(h.ys) }

// At returns the cell value at (col, row); NaN if empty.
func (h *Heatmap) At(col, row int) float64 { return h.cells[row][col] }

// SetXTicks relabels the column axis (values in squeezed index space).
func (h *Heatmap) SetXTicks(t []chart.Tick) { h.xTicks = t }

// SetYTicks relabels the row axis.
func (h *Heatmap) SetYTicks(t []chart.Tick) { h.yTicks = t }

// ColorBar maps the heatmap value range onto the color scale legend drawn at
// the right edge of the figure.
type ColorBar struct {
	Min   float64
	Max   float64
	Label string
}

// AttachColorBar adds a color bar for h to sf and returns it.
func AttachColorBar(sf *Surface, h *Heatmap, label string) *ColorBar {
	if label == "" {
		label = h.label
	}
	bar := &ColorBar{Min: h.vmin, Max: h.vmax, Label: label}
	sf.bar = bar
	return bar
}

// viridis anchor colors; cell colors interpolate linearly between them.
var viridisAnchors = [][3]float64{
	{0.267, 0.005, 0.329},
	{0.283, 0.141, 0.458},
	{0.254, 0.265, 0.530},
	{0.207, 0.372, 0.553},
	{0.164, 0.471, 0.558},
	{0.128, 0.567, 0.551},
	{0.135, 0.659, 0.518},
	{0.267, 0.749, 0.441},
	{0.478, 0.821, 0.318},
	{0.741, 0.873, 0.150},
	{0.993, 0.906, 0.144},
}

func colormap(t float64) color.RGBA {
	if math.IsNaN(t) {
		return color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	f := t * float64(len(viridisAnchors)-1)
	i := int(f)
	if i >= len(viridisAnchors)-1 {
		i = len(viridisAnchors) - 2
		f = float64(len(viridisAnchors) - 1)
	}
	frac := f - float64(i)
	a, b := viridisAnchors[i], viridisAnchors[i+1]
	lerp := func(x, y float64) uint8 { return uint8((x + (y-x)*frac) * 255) }
	return color.RGBA{R: lerp(a[0], b[0]), G: lerp(a[1], b[1]), B: lerp(a[2], b[2]), A: 0xff}
}

// figure geometry for the raster path
const (
	heatMarginLeft   = 60
	heatMarginTop    = 28
	heatMarginBottom = 42
	heatMarginRight  = 18
	colorBarWidth    = 14
	colorBarGutter   = 78 // bar plus its tick labels
)

func (s *Surface) renderHeatmap() image.Image {
	h := s.heat
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	right := heatMarginRight
	if s.bar != nil {
		right += colorBarGutter
	}
	plotW := s.width - heatMarginLeft - right
	plotH := s.height - heatMarginTop - heatMarginBottom
	if plotW < 1 || plotH < 1 {
		return img
	}

	cols, rows := h.Shape()
	span := h.vmax - h.vmin
	for r := 0; r < rows; r++ {
		y0 := heatMarginTop + r*plotH/rows
		y1 := heatMarginTop + (r+1)*plotH/rows
		for c := 0; c < cols; c++ {
			x0 := heatMarginLeft + c*plotW/cols
			x1 := heatMarginLeft + (c+1)*plotW/cols
			v := h.cells[r][c]
			var t float64
			if span > 0 {
				t = (v - h.vmin) / span
			}
			cell := colormap(t)
			if math.IsNaN(v) {
				cell = colormap(math.NaN())
			}
			draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(cell), image.Point{}, draw.Src)
		}
	}

	// frame
	frame := color.RGBA{A: 0xff}
	hline(img, heatMarginLeft, heatMarginLeft+plotW, heatMarginTop, frame)
	hline(img, heatMarginLeft, heatMarginLeft+plotW, heatMarginTop+plotH, frame)
	vline(img, heatMarginLeft, heatMarginTop, heatMarginTop+plotH, frame)
	vline(img, heatMarginLeft+plotW, heatMarginTop, heatMarginTop+plotH, frame)

	// ticks: overrides win, else nice ticks over index space
	xt := h.xTicks
	if xt == nil {
		xt = niceTicks(0, float64(cols-1), 6)
	}
	for _, tk := range xt {
		if tk.Value < 0 || tk.Value > float64(cols-1) {
			continue
		}
		px := heatMarginLeft + int((tk.Value+0.5)/float64(cols)*float64(plotW))
		vline(img, px, heatMarginTop+plotH, heatMarginTop+plotH+4, frame)
		drawString(img, px-len(tk.Label)*7/2, heatMarginTop+plotH+16, tk.Label, frame)
	}
	yt := h.yTicks
	if yt == nil {
		yt = niceTicks(0, float64(rows-1), 6)
	}
	for _, tk := range yt {
		if tk.Value < 0 || tk.Value > float64(rows-1) {
			continue
		}
		py := heatMarginTop + int((tk.Value+0.5)/float64(rows)*float64(plotH))
		hline(img, heatMarginLeft-4, heatMarginLeft, py, frame)
		drawString(img, heatMarginLeft-8-len(tk.Label)*7, py+4, tk.Label, frame)
	}

	if s.title != "" {
		drawString(img, heatMarginLeft, 18, s.title, frame)
	}
	if s.xLabel != "" {
		drawString(img, heatMarginLeft+plotW/2-len(s.xLabel)*7/2, s.height-8, s.xLabel, frame)
	}
	if s.yLabel != "" {
		drawString(img, 4, heatMarginTop-8, s.yLabel, frame)
	}

	if s.bar != nil {
		s.renderColorBar(img, heatMarginLeft+plotW+14, heatMarginTop, plotH)
	}
	return img
}

func (s *Surface) renderColorBar(img *image.RGBA, x, y, h int) {
	bar := s.bar
	for i := 0; i < h; i++ {
		// max at top
		t := 1 - float64(i)/float64(h-1)
		col := colormap(t)
		for dx := 0; dx < colorBarWidth; dx++ {
			img.SetRGBA(x+dx, y+i, col)
		}
	}
	frame := color.RGBA{A: 0xff}
	span := bar.Max - bar.Min
	for _, tk := range niceTicks(bar.Min, bar.Max, 5) {
		if span <= 0 || tk.Value < bar.Min || tk.Value > bar.Max {
			continue
		}
		py := y + h - int((tk.Value-bar.Min)/span*float64(h-1)) - 1
		hline(img, x+colorBarWidth, x+colorBarWidth+4, py, frame)
		drawString(img, x+colorBarWidth+6, py+4, tk.Label, frame)
	}
	if bar.Label != "" {
		drawString(img, x-6, y-10, bar.Label, frame)
	}
}

func hline(img *image.RGBA, x0, x1, y int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, col)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, col color.RGBA) {
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, col)
	}
}

// drawString draws text with the fixed 7x13 face, the same way chart hints are
// stamped onto exported images.
func drawString(img *image.RGBA, x, y int, text string, col color.RGBA) {
	dr := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	dr.DrawString(text)
}
