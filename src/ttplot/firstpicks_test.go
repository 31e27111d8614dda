package ttplot

import (
	"math"
	"testing"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpflieger/gimli/src/survey"
)

func TestDrawFirstPicksGroupsByShot(t *testing.T) {
	sf := NewSurface()
	require.NoError(t, DrawFirstPicks(sf, lineData(t, 0), nil, PickOptions{}))

	// per shot: one curve plus one shot marker
	series := curveSeries(sf)
	require.Len(t, series, 4)

	curve := series[0]
	marker := series[1]
	// records of the same shot form one curve, ordered by receiver x
	assert.Equal(t, []float64{10, 20, 30}, curve.XValues)
	assert.Equal(t, []float64{0.011, 0.021, 0.031}, curve.YValues)
	// marker at (shot x, 0) in the same color
	assert.Equal(t, []float64{0, 0}, marker.XValues) // single point, padded
	assert.Equal(t, 0.0, marker.YValues[0])
	assert.Equal(t, curve.Style.DotColor, marker.Style.DotColor)

	assert.True(t, sf.YInverted())
	assert.Equal(t, "Traveltime (s)", sf.yLabel)
}

func TestDrawFirstPicksColorCycle(t *testing.T) {
	// 11 distinct shots firing into one far receiver
	d := survey.NewDataContainer()
	for i := 0; i < 12; i++ {
		d.AppendSensor(vec3d.T{float64(i) * 5, 0, 0})
	}
	s := make([]float64, 11)
	g := make([]float64, 11)
	tt := make([]float64, 11)
	for i := range s {
		s[i] = float64(i)
		g[i] = 11
		tt[i] = 0.01 + float64(i)*0.001
	}
	require.NoError(t, d.Set("s", s))
	require.NoError(t, d.Set("g", g))
	require.NoError(t, d.Set("t", tt))

	sf := NewSurface()
	require.NoError(t, DrawFirstPicks(sf, d, nil, PickOptions{}))
	series := curveSeries(sf)
	require.Len(t, series, 22)

	first := series[0].Style.DotColor
	eleventh := series[20].Style.DotColor // curve of the 11th shot
	assert.Equal(t, first, eleventh, "the 11th distinct shot repeats color 0")
	assert.NotEqual(t, first, series[2].Style.DotColor)
}

func TestDrawFirstPicksApparentVelocity(t *testing.T) {
	sf := NewSurface()
	d := lineData(t, 0)
	require.NoError(t, DrawFirstPicks(sf, d, nil, PickOptions{PlotVA: true}))

	series := curveSeries(sf)
	curve := series[0]
	// shot at x=0: receivers at 10, 20, 30 with t=0.011, 0.021, 0.031
	want := []float64{10 / 0.011, 20 / 0.021, 30 / 0.031}
	for i, w := range want {
		assert.InDelta(t, w, curve.YValues[i], 1e-9)
	}
	assert.Equal(t, "Apparent velocity (m/s)", sf.yLabel)
}

func TestDrawFirstPicksStyleDefaults(t *testing.T) {
	o := PickOptions{}.withDefaults()
	assert.Equal(t, "x", o.Marker)
	assert.Equal(t, 8.0, o.MarkerSize)
	assert.Equal(t, "-", o.LineStyle)
}

func TestDrawFirstPicksLineStyleNone(t *testing.T) {
	sf := NewSurface()
	require.NoError(t, DrawFirstPicks(sf, lineData(t, 0), nil, PickOptions{LineStyle: "none", MarkerSize: 10}))
	curve := curveSeries(sf)[0]
	assert.Equal(t, 0.0, curve.Style.StrokeWidth)
	assert.Equal(t, 5.0, curve.Style.DotWidth)
}

func TestDrawFirstPicksOverrideTimes(t *testing.T) {
	sf := NewSurface()
	d := lineData(t, 0)
	over := make([]float64, d.Size())
	for i := range over {
		over[i] = 0.5
	}
	require.NoError(t, DrawFirstPicks(sf, d, over, PickOptions{}))
	curve := curveSeries(sf)[0]
	for _, y := range curve.YValues {
		assert.Equal(t, 0.5, y)
	}
}

func TestPlotFirstPicksForwards(t *testing.T) {
	sf1 := NewSurface()
	sf2 := NewSurface()
	d := lineData(t, 0)
	require.NoError(t, DrawFirstPicks(sf1, d, nil, PickOptions{}))
	require.NoError(t, PlotFirstPicks(sf2, d, nil, PickOptions{}))
	require.Equal(t, sf1.SeriesCount(), sf2.SeriesCount())
	a := curveSeries(sf1)[0]
	b := curveSeries(sf2)[0]
	assert.Equal(t, a.XValues, b.XValues)
	assert.Equal(t, a.YValues, b.YValues)
}

func TestShotColorCycles(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, pickPalette[i], shotColor(i))
	}
	assert.Equal(t, pickPalette[0], shotColor(10))
	assert.Equal(t, pickPalette[3], shotColor(13))
}

func TestDrawFirstPicksNaNSafe(t *testing.T) {
	// zero traveltime in VA mode yields +Inf, which is plotted, not rejected;
	// the near-zero guard lives in DrawVA only
	d := lineData(t, 0)
	tt, err := d.Get("t")
	require.NoError(t, err)
	tt[0] = 0
	sf := NewSurface()
	require.NoError(t, DrawFirstPicks(sf, d, nil, PickOptions{PlotVA: true}))
	curve := curveSeries(sf)[0]
	hasInf := false
	for _, y := range curve.YValues {
		if math.IsInf(y, 1) {
			hasInf = true
		}
	}
	assert.True(t, hasInf)
}
