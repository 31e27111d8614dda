// Package survey holds the traveltime survey data container and its geometry
// helpers: sensor positions, shot/receiver index columns and measured first
// arrivals, plus loading and saving of the plain-text unified data format.
//
// A DataContainer is a column store keyed by single-character tokens. The
// conventional tokens are "s" (shot sensor index), "g" (receiver/geophone
// sensor index) and "t" (traveltime); arbitrary extra tokens (picking errors,
// validity flags) ride along untouched.
package survey

import (
	"fmt"
	"math"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

// DataContainer is an indexed table of traveltime records plus the sensor
// geometry they refer to. Index columns ("s", "g") are stored as float64 like
// every other column; consumers round them when addressing sensors.
type DataContainer struct {
	sensors []vec3d.T
	cols    map[string][]float64
	size    int
}

// NewDataContainer returns an empty container.
func NewDataContainer() *DataContainer {
	return &DataContainer{cols: map[string][]float64{}}
}

// Size returns the number of data records.
func (d *DataContainer) Size() int { return d.size }

// Resize sets the record count. Existing columns are truncated or zero-padded.
func (d *DataContainer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	for tok, v := range d.cols {
		if len(v) >= n {
			d.cols[tok] = v[:n]
			continue
		}
		grown := make([]float64, n)
		copy(grown, v)
		d.cols[tok] = grown
	}
	d.size = n
}

// SensorCount returns the number of known sensor positions.
func (d *DataContainer) SensorCount() int { return len(d.sensors) }

// SensorPosition returns the position of sensor i. Out-of-range indices panic,
// as any index bookkeeping bug should surface immediately.
func (d *DataContainer) SensorPosition(i int) vec3d.T { return d.sensors[i] }

// SensorPositions returns the backing sensor position slice. Callers must not
// mutate it.
func (d *DataContainer) SensorPositions() []vec3d.T { return d.sensors }

// SetSensorPositions replaces the sensor geometry.
func (d *DataContainer) SetSensorPositions(pos []vec3d.T) { d.sensors = pos }

// AppendSensor adds one sensor position and returns its index.
func (d *DataContainer) AppendSensor(p vec3d.T) int {
	d.sensors = append(d.sensors, p)
	return len(d.sensors) - 1
}

// SensorX returns the x coordinate of every sensor, in sensor order.
func (d *DataContainer) SensorX() []float64 {
	xs := make([]float64, len(d.sensors))
	for i, p := range d.sensors {
		xs[i] = p[0]
	}
	return xs
}

// Has reports whether a column with the given token exists.
func (d *DataContainer) Has(token string) bool {
	_, ok := d.cols[token]
	return ok
}

// Tokens returns the column tokens present, in unspecified order.
func (d *DataContainer) Tokens() []string {
	out := make([]string, 0, len(d.cols))
	for tok := range d.cols {
		out = append(out, tok)
	}
	return out
}

// Get returns the column stored under token. The returned slice is the backing
// store, not a copy.
func (d *DataContainer) Get(token string) ([]float64, error) {
	v, ok := d.cols[token]
	if !ok {
		return nil, fmt.Errorf("survey: no column %q in data container", token)
	}
	return v, nil
}

// Set stores vals under token. The container adopts the record count of the
// first column set; later columns must match it.
func (d *DataContainer) Set(token string, vals []float64) error {
	if len(d.cols) == 0 && d.size == 0 {
		d.size = len(vals)
	}
	if len(vals) != d.size {
		return fmt.Errorf("survey: column %q has %d values, container holds %d records", token, len(vals), d.size)
	}
	d.cols[token] = vals
	return nil
}

// IDs returns the column under token rounded to ints, useful for the "s" and
// "g" sensor index columns.
func (d *DataContainer) IDs(token string) ([]int, error) {
	v, err := d.Get(token)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(v))
	for i, f := range v {
		out[i] = int(math.Round(f))
	}
	return out, nil
}

// IndexBase inspects the minimum value across the "s" and "g" columns and
// returns 1 when the dataset looks 1-based, else 0. This is a heuristic: a
// 1-based dataset that never references sensor 1 is misdetected as 0-based.
// Callers that know the base should pass it explicitly instead.
func (d *DataContainer) IndexBase() int {
	min := math.Inf(1)
	for _, tok := range []string{"s", "g"} {
		col, ok := d.cols[tok]
		if !ok {
			continue
		}
		for _, v := range col {
			if v < min {
				min = v
			}
		}
	}
	if min == 1 {
		return 1
	}
	return 0
}

// CheckIndices verifies that, after subtracting base, every "s" and "g" value
// addresses a valid sensor.
func (d *DataContainer) CheckIndices(base int) error {
	n := d.SensorCount()
	for _, tok := range []string{"s", "g"} {
		ids, err := d.IDs(tok)
		if err != nil {
			return err
		}
		for i, id := range ids {
			if id-base < 0 || id-base >= n {
				return fmt.Errorf("survey: record %d: %s=%d out of range [%d,%d)", i, tok, id, base, n+base)
			}
		}
	}
	return nil
}
