package ttplot

import (
	"errors"
	"fmt"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/danielpflieger/gimli/src/survey"
)

// ErrZeroTraveltime is returned when apparent-velocity computation meets a
// traveltime below the stability threshold.
var ErrZeroTraveltime = errors.New("zero traveltimes found")

// zeroTraveltime is the threshold below which division is meaningless.
const zeroTraveltime = 1e-10

const vaUnit = "Apparent velocity (m/s)"

// VAOptions configure DrawVA and ShowVA.
type VAOptions struct {
	// Vals overrides the plotted traveltimes; wins over Token.
	Vals []float64
	// Token names a data column to plot instead of "t".
	Token string
	// Pseudosection keys the matrix by (midpoint, offset) instead of
	// (receiver x, shot x).
	Pseudosection bool
	// RawIndexTicks keeps matrix index tick labels instead of relabeling
	// every 50th sensor with its x position.
	RawIndexTicks bool
}

// DrawVA draws apparent velocities as a matrix onto sf. Velocity is the full
// shot-receiver offset divided by the traveltime of every record. Any value
// below 1e-10 is a data-quality failure: the values are logged and
// ErrZeroTraveltime returned before any division.
func DrawVA(sf *Surface, data *survey.DataContainer, opts VAOptions) (*Heatmap, error) {
	vals := opts.Vals
	if vals == nil && opts.Token != "" {
		col, err := data.Get(opts.Token)
		if err != nil {
			return nil, err
		}
		vals = col
	}
	if vals == nil {
		col, err := data.Get("t")
		if err != nil {
			return nil, err
		}
		vals = col
	}
	if len(vals) != data.Size() {
		return nil, fmt.Errorf("ttplot: %d values for %d records", len(vals), data.Size())
	}

	if min := floats.Min(vals); min < zeroTraveltime {
		survey.Errorf("zero traveltimes found: %v", vals)
		return nil, fmt.Errorf("%w (min=%g)", ErrZeroTraveltime, min)
	}

	px := data.SensorX()
	gIDs, err := data.IDs("g")
	if err != nil {
		return nil, err
	}
	sIDs, err := data.IDs("s")
	if err != nil {
		return nil, err
	}
	gx := make([]float64, len(gIDs))
	sx := make([]float64, len(sIDs))
	for i := range gIDs {
		gx[i] = px[gIDs[i]]
		sx[i] = px[sIDs[i]]
	}

	offset, err := survey.ShotReceiverDistances(data, true)
	if err != nil {
		return nil, err
	}
	va := make([]float64, len(vals))
	for i := range vals {
		va[i] = offset[i] / vals[i]
	}

	var h *Heatmap
	if opts.Pseudosection {
		midpoint := make([]float64, len(gx))
		for i := range gx {
			midpoint[i] = (gx[i] + sx[i]) / 2
		}
		h, err = DrawVecMatrix(sf, midpoint, offset, va, vaUnit)
	} else {
		h, err = DrawVecMatrix(sf, gx, sx, va, vaUnit)
	}
	if err != nil {
		return nil, err
	}

	if !opts.RawIndexTicks {
		// relabel every 50th sensor with its integer x position
		var ticks []chart.Tick
		for i := 0; i < data.SensorCount(); i += 50 {
			ticks = append(ticks, chart.Tick{Value: float64(i), Label: strconv.Itoa(int(px[i]))})
		}
		h.SetXTicks(ticks)
		h.SetYTicks(ticks)
	}
	return h, nil
}

// ShowVA renders apparent velocity as an image plot. A nil sf gets a fresh
// surface; a color bar keyed to the rendered values is attached. The heatmap,
// the color bar and the surface are all returned to the caller, which is
// responsible for rendering.
func ShowVA(sf *Surface, data *survey.DataContainer, opts VAOptions) (*Heatmap, *ColorBar, *Surface, error) {
	if sf == nil {
		sf = NewSurface()
	}
	h, err := DrawVA(sf, data, opts)
	if err != nil {
		return nil, nil, sf, err
	}
	bar := AttachColorBar(sf, h, vaUnit)
	return h, bar, sf, nil
}
