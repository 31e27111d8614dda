package ttplot

import (
	"os"
	"path/filepath"
	"testing"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLineFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "line.txt")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDrawLinesStepOne(t *testing.T) {
	p := writeLineFile(t, "0 0\n1 1\n2 0\n")
	sf := NewSurface()
	require.NoError(t, DrawLines(sf, p, 1))

	series := curveSeries(sf)
	require.Len(t, series, 1)
	assert.Equal(t, []float64{0, 1, 2}, series[0].XValues)
	assert.Equal(t, []float64{0, 1, 0}, series[0].YValues)
	assert.Equal(t, chart.ColorBlack, series[0].Style.StrokeColor)
}

func TestDrawLinesStepTwo(t *testing.T) {
	p := writeLineFile(t, "0 0\n1 1\n2 0\n")
	sf := NewSurface()
	require.NoError(t, DrawLines(sf, p, 2))

	// one 2-point segment; the odd trailing row is dropped
	series := curveSeries(sf)
	require.Len(t, series, 1)
	assert.Equal(t, []float64{0, 1}, series[0].XValues)
	assert.Equal(t, []float64{0, 1}, series[0].YValues)
}

func TestDrawLinesStepTwoEvenRows(t *testing.T) {
	p := writeLineFile(t, "0 0\n1 1\n2 0\n3 1\n")
	sf := NewSurface()
	require.NoError(t, DrawLines(sf, p, 2))
	assert.Equal(t, 2, sf.SeriesCount())
}

func TestDrawLinesOtherStepDrawsNothing(t *testing.T) {
	p := writeLineFile(t, "0 0\n1 1\n2 0\n")
	sf := NewSurface()
	require.NoError(t, DrawLines(sf, p, 3))
	assert.Equal(t, 0, sf.SeriesCount())
}

func TestDrawLinesSkipsBlankLines(t *testing.T) {
	p := writeLineFile(t, "0 0\n\n1 1\n")
	sf := NewSurface()
	require.NoError(t, DrawLines(sf, p, 1))
	assert.Equal(t, []float64{0, 1}, curveSeries(sf)[0].XValues)
}

func TestDrawLinesFileErrors(t *testing.T) {
	sf := NewSurface()
	assert.Error(t, DrawLines(sf, filepath.Join(t.TempDir(), "missing.txt"), 1))

	bad := writeLineFile(t, "0 zero\n")
	assert.Error(t, DrawLines(sf, bad, 1))

	short := writeLineFile(t, "42\n")
	assert.Error(t, DrawLines(sf, short, 1))
}
