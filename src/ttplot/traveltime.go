package ttplot

import (
	"math"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/danielpflieger/gimli/src/survey"
)

// DrawTravelTimeData draws raw traveltime curves onto sf: one polyline per
// shot connecting that shot's receivers, plus marker rows for shot (down) and
// receiver (up) positions just above the zero-time line. tt overrides the "t"
// column when non-nil.
//
// The index base (0 or 1) is inferred from the minimum value across the "s"
// and "g" columns combined; see survey.DataContainer.IndexBase for the
// limitation of that heuristic. The surface is only mutated: callers render
// when everything is drawn.
func DrawTravelTimeData(sf *Surface, data *survey.DataContainer, tt []float64) error {
	x := data.SensorX()
	sCol, err := data.Get("s")
	if err != nil {
		return err
	}
	gCol, err := data.Get("g")
	if err != nil {
		return err
	}
	tShow := tt
	if tShow == nil {
		if tShow, err = data.Get("t"); err != nil {
			return err
		}
	}

	shots := uniqueSorted(sCol)
	geoph := uniqueSorted(gCol)

	base := 0
	if math.Min(shots[0], geoph[0]) == 1 {
		base = 1
	}

	// preliminary limits so the pixel transform has a scale to invert
	sf.SetXLim(floats.Min(x), floats.Max(x))
	sf.SetYLim(-0.002, floats.Max(tShow))
	sf.InvertYAxis()

	for i, shot := range shots {
		var cx, cy []float64
		for k, s := range sCol {
			if s != shot {
				continue
			}
			cx = append(cx, x[int(gCol[k])-base])
			cy = append(cy, tShow[k])
		}
		sortPaired(cx, cy)
		sf.Plot(cx, cy, lineStyle(shotColor(i), 1.5, 3), "")
	}

	yPix := sf.YPixel()
	xPix := sf.XPixel()

	// shot positions (green, row at 8 px above zero) and receiver positions
	// (red, row at 3 px); on the inverted axis "above" is negative time
	shotX := make([]float64, len(shots))
	shotY := make([]float64, len(shots))
	for i, s := range shots {
		shotX[i] = x[int(s)-base]
		shotY[i] = -8 * yPix
	}
	sf.Plot(shotX, shotY, pointStyle(chart.ColorGreen, 8), "shots")

	geoX := make([]float64, len(geoph))
	geoY := make([]float64, len(geoph))
	for i, g := range geoph {
		geoX[i] = x[int(g)-base]
		geoY[i] = -3 * yPix
	}
	sf.Plot(geoX, geoY, pointStyle(chart.ColorRed, 8), "receivers")

	sf.Grid(true)
	sf.SetYLim(-16*yPix, floats.Max(tShow))
	sf.SetXLim(floats.Min(x)-5*xPix, floats.Max(x)+5*xPix)
	sf.SetXLabel("x-Coordinate [m]")
	sf.SetYLabel("Traveltime [ms]")
	return nil
}

func uniqueSorted(v []float64) []float64 {
	out := append([]float64(nil), v...)
	sort.Float64s(out)
	n := 0
	for i, x := range out {
		if i == 0 || x != out[n-1] {
			out[n] = x
			n++
		}
	}
	return out[:n]
}

// sortPaired sorts xs ascending, carrying ys along.
func sortPaired(xs, ys []float64) {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
	ox := append([]float64(nil), xs...)
	oy := append([]float64(nil), ys...)
	for i, j := range idx {
		xs[i] = ox[j]
		ys[i] = oy[j]
	}
}
