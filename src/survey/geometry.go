package survey

import (
	"math"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

// ShotReceiverDistances returns the per-record offset between shot and
// receiver position. With full=false the offset is the along-profile distance
// |gx-sx|; with full=true it is the Euclidean distance of the 3D positions,
// which matters for surveys with topography.
//
// Indices are taken as stored (0-based); callers holding 1-based data shift it
// first (see DataContainer.IndexBase).
func ShotReceiverDistances(data *DataContainer, full bool) ([]float64, error) {
	s, err := data.IDs("s")
	if err != nil {
		return nil, err
	}
	g, err := data.IDs("g")
	if err != nil {
		return nil, err
	}
	out := make([]float64, data.Size())
	for i := range out {
		sp := data.SensorPosition(s[i])
		gp := data.SensorPosition(g[i])
		if full {
			d := vec3d.Sub(&gp, &sp)
			out[i] = d.Length()
		} else {
			out[i] = math.Abs(gp[0] - sp[0])
		}
	}
	return out, nil
}

// Midpoints returns the per-record x midpoint between shot and receiver,
// the horizontal axis of a pseudosection.
func Midpoints(data *DataContainer) ([]float64, error) {
	s, err := data.IDs("s")
	if err != nil {
		return nil, err
	}
	g, err := data.IDs("g")
	if err != nil {
		return nil, err
	}
	out := make([]float64, data.Size())
	for i := range out {
		out[i] = (data.SensorPosition(s[i])[0] + data.SensorPosition(g[i])[0]) / 2
	}
	return out, nil
}

// GetOffset returns the shot-receiver offsets.
//
// Deprecated: use ShotReceiverDistances.
func GetOffset(data *DataContainer, full bool) ([]float64, error) {
	Deprecatedf("GetOffset", "ShotReceiverDistances")
	return ShotReceiverDistances(data, full)
}
