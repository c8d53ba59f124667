package route

import (
	"math"
	"sort"

	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/shared/geo"
)

// Bearing returns the initial bearing from the first point to the second in
// degrees, normalized to [0,360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.InitialBearing(lat1, lon1, lat2, lon2)
}

// Sampler picks count points along a track. SampleIndices returns the
// track index of each picked point, in order.
type Sampler interface {
	Sample(track []TrackPoint, count int) []TrackPoint
	SampleIndices(track []TrackPoint, count int) []int
}

// IndexSampler spaces samples evenly by point index. It matches distance
// spacing only when the track is sampled at a roughly constant rate.
type IndexSampler struct{}

func (s IndexSampler) Sample(track []TrackPoint, count int) []TrackPoint {
	return pick(track, s.SampleIndices(track, count))
}

func (IndexSampler) SampleIndices(track []TrackPoint, count int) []int {
	n := len(track)
	idx, done := trivialIndices(n, count)
	if done {
		return idx
	}
	for i := range idx {
		idx[i] = proportionalIndex(i, count, n)
	}
	return idx
}

// DistanceSampler spaces samples evenly by cumulative distance, taking the
// first point at or beyond each target.
type DistanceSampler struct{}

func (s DistanceSampler) Sample(track []TrackPoint, count int) []TrackPoint {
	return pick(track, s.SampleIndices(track, count))
}

func (DistanceSampler) SampleIndices(track []TrackPoint, count int) []int {
	n := len(track)
	idx, done := trivialIndices(n, count)
	if done {
		return idx
	}
	total := TotalDistanceKm(track)
	for i := range idx {
		target := total * float64(i) / float64(count-1)
		j := sort.Search(n, func(j int) bool {
			return track[j].CumulativeDistanceKm >= target
		})
		idx[i] = min(j, n-1)
	}
	return idx
}

// trivialIndices handles the cases every sampler shares: no samples, a
// track no longer than count (all points), and a single sample (the first
// point). Otherwise it returns a slice of count entries to fill.
func trivialIndices(n, count int) ([]int, bool) {
	switch {
	case count <= 0 || n == 0:
		return []int{}, true
	case n <= count:
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx, true
	case count == 1:
		return []int{0}, true
	}
	return make([]int, count), false
}

func pick(track []TrackPoint, idx []int) []TrackPoint {
	out := make([]TrackPoint, len(idx))
	for i, j := range idx {
		out[i] = track[j]
	}
	return out
}

// SampleEquidistant picks count points at evenly spaced indices.
func SampleEquidistant(track []TrackPoint, count int) []TrackPoint {
	return IndexSampler{}.Sample(track, count)
}

// proportionalIndex maps position i of count onto a track of n points.
func proportionalIndex(i, count, n int) int {
	if count <= 1 || n <= 1 {
		return 0
	}
	idx := int(math.Floor(float64(i)*float64(n-1)/float64(count-1) + 0.5))
	return min(max(idx, 0), n-1)
}

// localBearing is the direction of travel around index idx, measured over a
// short look-ahead so single noisy points do not dominate.
func localBearing(track []TrackPoint, idx, step int) float64 {
	n := len(track)
	if n < 2 {
		return 0
	}
	step = max(step, 1)
	from, to := idx, min(idx+step, n-1)
	if from == to {
		from = max(idx-step, 0)
	}
	a, b := track[from], track[to]
	return Bearing(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}
