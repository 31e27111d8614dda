// Package ttplot renders traveltime survey data as diagnostic plots: raw
// traveltime curves, first-arrival picks, apparent-velocity matrices and
// pseudosections, and simple line overlays.
//
// All drawing goes through a Surface, which accumulates series and axis state
// and renders to PNG on demand. Draw functions only mutate the surface; the
// caller decides when to render. Line and marker charts are produced with
// go-chart, matrix views with a small raster pipeline in heatmap.go.
package ttplot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
)

const (
	defaultWidth  = 800
	defaultHeight = 500

	// approximate strips consumed by axis labels and canvas padding, used to
	// estimate the device-pixel to data-unit scale before rendering
	axisStripX = 70
	axisStripY = 55
)

// Surface is a caller-owned drawable canvas. Draw functions append series and
// adjust axis state; Render produces the PNG. A surface carries either series
// charts or one heatmap layer, whichever is drawn into it.
type Surface struct {
	width  int
	height int

	title  string
	xLabel string
	yLabel string

	xMin, xMax float64
	yMin, yMax float64
	hasXLim    bool
	hasYLim    bool
	invertY    bool
	grid       bool

	xTicks []chart.Tick
	yTicks []chart.Tick

	series []chart.Series

	heat *Heatmap
	bar  *ColorBar
}

// NewSurface returns an empty surface of the default size.
func NewSurface() *Surface { return NewSurfaceSize(defaultWidth, defaultHeight) }

// NewSurfaceSize returns an empty surface of the given pixel size.
func NewSurfaceSize(w, h int) *Surface {
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return &Surface{width: w, height: h}
}

// Plot appends one x/y series. Slices are copied.
func (s *Surface) Plot(xs, ys []float64, st chart.Style, name string) {
	x := append([]float64(nil), xs...)
	y := append([]float64(nil), ys...)
	// go-chart rejects single-point series; duplicate the point so lone
	// markers still render
	if len(x) == 1 {
		x = append(x, x[0])
		y = append(y, y[0])
	}
	s.series = append(s.series, chart.ContinuousSeries{Name: name, XValues: x, YValues: y, Style: st})
}

func (s *Surface) SetTitle(t string)  { s.title = t }
func (s *Surface) SetXLabel(l string) { s.xLabel = l }
func (s *Surface) SetYLabel(l string) { s.yLabel = l }

// SetXLim fixes the x axis range.
func (s *Surface) SetXLim(min, max float64) {
	s.xMin, s.xMax = min, max
	s.hasXLim = true
}

// SetYLim fixes the y axis range. The range is given in data order (min < max)
// regardless of inversion.
func (s *Surface) SetYLim(min, max float64) {
	s.yMin, s.yMax = min, max
	s.hasYLim = true
}

// XLim returns the fixed x range, if any.
func (s *Surface) XLim() (min, max float64, ok bool) { return s.xMin, s.xMax, s.hasXLim }

// YLim returns the fixed y range, if any.
func (s *Surface) YLim() (min, max float64, ok bool) { return s.yMin, s.yMax, s.hasYLim }

// InvertYAxis makes y values increase downward (first pick at top).
func (s *Surface) InvertYAxis() { s.invertY = true }

// YInverted reports whether the y axis is inverted.
func (s *Surface) YInverted() bool { return s.invertY }

// Grid toggles major grid lines.
func (s *Surface) Grid(on bool) { s.grid = on }

// SetXTicks overrides the x tick marks.
func (s *Surface) SetXTicks(t []chart.Tick) { s.xTicks = t }

// SetYTicks overrides the y tick marks.
func (s *Surface) SetYTicks(t []chart.Tick) { s.yTicks = t }

// SeriesCount returns the number of plotted series.
func (s *Surface) SeriesCount() int { return len(s.series) }

// Heatmap returns the heatmap layer, if one was drawn.
func (s *Surface) Heatmap() *Heatmap { return s.heat }

// dataExtent scans all plotted series for their bounding box.
func (s *Surface) dataExtent() (xmin, xmax, ymin, ymax float64, ok bool) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, sr := range s.series {
		cs, isCont := sr.(chart.ContinuousSeries)
		if !isCont || len(cs.XValues) == 0 {
			continue
		}
		xmin = math.Min(xmin, floats.Min(cs.XValues))
		xmax = math.Max(xmax, floats.Max(cs.XValues))
		ymin = math.Min(ymin, floats.Min(cs.YValues))
		ymax = math.Max(ymax, floats.Max(cs.YValues))
		ok = true
	}
	return
}

// xSpan returns the effective x range used for rendering.
func (s *Surface) xSpan() (float64, float64) {
	if s.hasXLim {
		return s.xMin, s.xMax
	}
	xmin, xmax, _, _, ok := s.dataExtent()
	if !ok {
		return 0, 1
	}
	return xmin, xmax
}

func (s *Surface) ySpan() (float64, float64) {
	if s.hasYLim {
		return s.yMin, s.yMax
	}
	_, _, ymin, ymax, ok := s.dataExtent()
	if !ok {
		return 0, 1
	}
	return ymin, ymax
}

// XPixel returns the data-unit width of one device pixel under the current
// axis limits, the inverse coordinate transform used for pixel-based padding.
func (s *Surface) XPixel() float64 {
	min, max := s.xSpan()
	inner := s.width - axisStripX
	if inner <= 0 || max <= min {
		return 0
	}
	return (max - min) / float64(inner)
}

// YPixel returns the data-unit height of one device pixel.
func (s *Surface) YPixel() float64 {
	min, max := s.ySpan()
	inner := s.height - axisStripY
	if inner <= 0 || max <= min {
		return 0
	}
	return (max - min) / float64(inner)
}

// Render writes the surface as PNG. Rendering never mutates draw state; it can
// be called repeatedly while more series are added in between.
func (s *Surface) Render(w io.Writer) error {
	if s.heat != nil {
		img := s.renderHeatmap()
		return png.Encode(w, img)
	}
	if len(s.series) == 0 {
		return fmt.Errorf("ttplot: nothing drawn on surface")
	}

	xr := &chart.ContinuousRange{}
	if s.hasXLim {
		xr.Min, xr.Max = s.xMin, s.xMax
	} else {
		xr.Min, xr.Max = s.xSpan()
	}
	yr := &chart.ContinuousRange{Descending: s.invertY}
	if s.hasYLim {
		yr.Min, yr.Max = s.yMin, s.yMax
	} else {
		yr.Min, yr.Max = s.ySpan()
	}

	xAxis := chart.XAxis{Name: s.xLabel, Range: xr, Ticks: s.xTicks}
	yAxis := chart.YAxis{Name: s.yLabel, Range: yr, Ticks: s.yTicks}
	if s.grid {
		gs := chart.Style{StrokeColor: chart.ColorAlternateGray, StrokeWidth: 1.0}
		xAxis.GridMajorStyle = gs
		yAxis.GridMajorStyle = gs
	}
	if s.yTicks == nil {
		// supply ticks explicitly so a descending range still labels sensibly
		yAxis.Ticks = niceTicks(yr.Min, yr.Max, 6)
	}

	ch := chart.Chart{
		Title:      s.title,
		Width:      s.width,
		Height:     s.height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     s.series,
	}
	return ch.Render(chart.PNG, w)
}

// Image renders the surface and decodes it back to an image, falling back to a
// blank canvas on render errors so viewers still update visibly.
func (s *Surface) Image() image.Image {
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		return blank(s.width, s.height)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return blank(s.width, s.height)
	}
	return img
}
