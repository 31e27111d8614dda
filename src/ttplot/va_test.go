package ttplot

import (
	"errors"
	"testing"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpflieger/gimli/src/survey"
)

func TestDrawVAComputesOffsetOverTime(t *testing.T) {
	d := lineData(t, 0)
	sf := NewSurface()
	h, err := DrawVA(sf, d, VAOptions{})
	require.NoError(t, err)
	require.NotNil(t, h)
	require.Same(t, h, sf.Heatmap())

	offset, err := survey.ShotReceiverDistances(d, true)
	require.NoError(t, err)
	tt, err := d.Get("t")
	require.NoError(t, err)
	g, err := d.IDs("g")
	require.NoError(t, err)
	s, err := d.IDs("s")
	require.NoError(t, err)

	// every record's cell must hold offset/traveltime
	cols, rows := h.Shape()
	assert.Equal(t, 4, cols) // receiver x values 0, 10, 20, 30
	assert.Equal(t, 2, rows) // shot x values 0, 30
	for i := range tt {
		gx := float64(g[i]) * 10
		sx := float64(s[i]) * 10
		got := cellAt(t, h, gx, sx)
		assert.InDelta(t, offset[i]/tt[i], got, 1e-9, "record %d", i)
	}
}

// cellAt resolves the squeezed cell holding coordinate (x, y).
func cellAt(t *testing.T, h *Heatmap, x, y float64) float64 {
	t.Helper()
	ci, ri := -1, -1
	for i, v := range h.xs {
		if v == x {
			ci = i
		}
	}
	for i, v := range h.ys {
		if v == y {
			ri = i
		}
	}
	require.GreaterOrEqual(t, ci, 0)
	require.GreaterOrEqual(t, ri, 0)
	return h.At(ci, ri)
}

func TestDrawVANearZeroTraveltime(t *testing.T) {
	d := lineData(t, 0)
	tt, err := d.Get("t")
	require.NoError(t, err)
	tt[2] = 1e-12

	sf := NewSurface()
	_, err = DrawVA(sf, d, VAOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrZeroTraveltime))
	assert.Nil(t, sf.Heatmap(), "no partial draw after the data-quality error")
}

func TestDrawVAExplicitValues(t *testing.T) {
	d := lineData(t, 0)
	vals := []float64{1, 1, 1, 1, 1, 1}
	sf := NewSurface()
	h, err := DrawVA(sf, d, VAOptions{Vals: vals})
	require.NoError(t, err)
	// with unit times the cells hold plain offsets
	assert.InDelta(t, 10.0, cellAt(t, h, 10, 0), 1e-9)
	assert.InDelta(t, 30.0, cellAt(t, h, 30, 0), 1e-9)
}

func TestDrawVAByToken(t *testing.T) {
	d := lineData(t, 0)
	vals := make([]float64, d.Size())
	for i := range vals {
		vals[i] = 2
	}
	require.NoError(t, d.Set("t2", vals))
	sf := NewSurface()
	h, err := DrawVA(sf, d, VAOptions{Token: "t2"})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, cellAt(t, h, 10, 0), 1e-9)

	_, err = DrawVA(NewSurface(), d, VAOptions{Token: "nope"})
	assert.Error(t, err)
}

func TestDrawVAPseudosection(t *testing.T) {
	d := lineData(t, 0)
	sf := NewSurface()
	h, err := DrawVA(sf, d, VAOptions{Pseudosection: true, RawIndexTicks: true})
	require.NoError(t, err)
	// midpoints 5,10,15,20,25 and offsets 10,20,30 key the matrix
	cols, rows := h.Shape()
	assert.Equal(t, 5, cols)
	assert.Equal(t, 3, rows)
}

func TestDrawVAPositionTicks(t *testing.T) {
	// 120 sensors so the every-50th sampling yields ticks at 0, 50, 100
	d := survey.NewDataContainer()
	for i := 0; i < 120; i++ {
		d.AppendSensor(vec3d.T{float64(i) * 2, 0, 0})
	}
	n := 119
	s := make([]float64, n)
	g := make([]float64, n)
	tt := make([]float64, n)
	for i := 0; i < n; i++ {
		s[i] = 0
		g[i] = float64(i + 1)
		tt[i] = 0.01 + float64(i)*0.0001
	}
	require.NoError(t, d.Set("s", s))
	require.NoError(t, d.Set("g", g))
	require.NoError(t, d.Set("t", tt))

	sf := NewSurface()
	h, err := DrawVA(sf, d, VAOptions{})
	require.NoError(t, err)
	require.Len(t, h.xTicks, 3)
	assert.Equal(t, 0.0, h.xTicks[0].Value)
	assert.Equal(t, "100", h.xTicks[1].Label) // sensor 50 sits at x=100
	assert.Equal(t, 100.0, h.xTicks[2].Value)
}

func TestShowVACreatesSurfaceAndColorBar(t *testing.T) {
	d := lineData(t, 0)
	h, bar, sf, err := ShowVA(nil, d, VAOptions{})
	require.NoError(t, err)
	require.NotNil(t, sf)
	require.NotNil(t, bar)
	assert.Equal(t, h.Min(), bar.Min)
	assert.Equal(t, h.Max(), bar.Max)
	assert.Equal(t, "Apparent velocity (m/s)", bar.Label)

	// the surface renders as a raster figure
	img := sf.Image()
	require.NotNil(t, img)
}

func TestShowVAKeepsGivenSurface(t *testing.T) {
	d := lineData(t, 0)
	own := NewSurfaceSize(320, 240)
	_, _, sf, err := ShowVA(own, d, VAOptions{})
	require.NoError(t, err)
	assert.Same(t, own, sf)
}

func TestVAErrorValueCount(t *testing.T) {
	d := lineData(t, 0)
	_, err := DrawVA(NewSurface(), d, VAOptions{Vals: []float64{1, 2}})
	assert.Error(t, err)
}
