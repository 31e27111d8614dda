package ttplot

import (
	"math"

	"github.com/danielpflieger/gimli/src/survey"
)

// PickOptions are styling overrides for DrawFirstPicks. Zero values fall back
// to the defaults: "x" markers of size 8 on a solid line.
type PickOptions struct {
	Marker     string  // marker shape hint; rendered as dots of the curve color
	MarkerSize float64 // marker diameter in device pixels
	LineStyle  string  // "-" solid (default), "" inherits solid, "none" hides the line
	PlotVA     bool    // plot apparent velocity |gx-sx|/t instead of traveltime
}

func (o PickOptions) withDefaults() PickOptions {
	if o.Marker == "" {
		o.Marker = "x"
	}
	if o.MarkerSize == 0 {
		o.MarkerSize = 8
	}
	if o.LineStyle == "" {
		o.LineStyle = "-"
	}
	return o
}

// DrawFirstPicks plots first arrivals as curves, one per distinct shot
// position, color-cycled through the 10-color palette, each with a marker at
// the shot's zero-time position in the matching color. Receivers are ordered
// by ascending x. The y axis is inverted so the first pick sits at the top.
// tt overrides the "t" column when non-nil.
func DrawFirstPicks(sf *Surface, data *survey.DataContainer, tt []float64, opts PickOptions) error {
	opts = opts.withDefaults()

	px := data.SensorX()
	gIDs, err := data.IDs("g")
	if err != nil {
		return err
	}
	sIDs, err := data.IDs("s")
	if err != nil {
		return err
	}
	if tt == nil {
		col, err := data.Get("t")
		if err != nil {
			return err
		}
		tt = col
	}

	gx := make([]float64, len(gIDs))
	sx := make([]float64, len(sIDs))
	for i := range gIDs {
		gx[i] = px[gIDs[i]]
		sx[i] = px[sIDs[i]]
	}

	vals := append([]float64(nil), tt...)
	if opts.PlotVA {
		for i := range vals {
			vals[i] = math.Abs(gx[i]-sx[i]) / vals[i]
		}
	}

	for i, si := range uniqueSorted(sx) {
		var cx, cy []float64
		for k := range sx {
			if sx[k] != si {
				continue
			}
			cx = append(cx, gx[k])
			cy = append(cy, vals[k])
		}
		sortPaired(cx, cy)
		col := shotColor(i)
		st := lineStyle(col, 1.5, opts.MarkerSize/2)
		if opts.LineStyle == "none" {
			st = pointStyle(col, opts.MarkerSize/2)
		}
		sf.Plot(cx, cy, st, "")
		// square marker at the shot position, zero time
		sf.Plot([]float64{si}, []float64{0}, pointStyle(col, opts.MarkerSize/2), "")
	}

	sf.Grid(true)
	if opts.PlotVA {
		sf.SetYLabel("Apparent velocity (m/s)")
	} else {
		sf.SetYLabel("Traveltime (s)")
	}
	sf.SetXLabel("x (m)")
	sf.InvertYAxis()
	return nil
}

// PlotFirstPicks plots first arrivals as lines.
//
// Deprecated: use DrawFirstPicks.
func PlotFirstPicks(sf *Surface, data *survey.DataContainer, tt []float64, opts PickOptions) error {
	survey.Deprecatedf("PlotFirstPicks", "DrawFirstPicks")
	return DrawFirstPicks(sf, data, tt, opts)
}
