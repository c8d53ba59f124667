// Package route turns a normalized GPS track into ride-planning data:
// gradient segments, climbs, descents and wind impact. Every function is pure
// and safe to call concurrently on shared, read-only tracks.
package route

import "math"

// TrackPoint is one sample of a route. CumulativeDistanceKm is non-decreasing
// along a track.
type TrackPoint struct {
	Latitude             float64 `json:"lat"`
	Longitude            float64 `json:"lon"`
	ElevationMeters      float64 `json:"ele"`
	CumulativeDistanceKm float64 `json:"dist_km"`
}

// TotalDistanceKm is the cumulative distance of the last point.
func TotalDistanceKm(track []TrackPoint) float64 {
	if len(track) == 0 {
		return 0
	}
	return track[len(track)-1].CumulativeDistanceKm
}

func elevations(track []TrackPoint) []float64 {
	out := make([]float64, len(track))
	for i, p := range track {
		out[i] = p.ElevationMeters
	}
	return out
}

// roundTo rounds half up, so -2.25 becomes -2.2 at one decimal.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Floor(v*scale+0.5) / scale
}
