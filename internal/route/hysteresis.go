package route

// Direction selects which way the hysteresis detector follows the profile.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

func (d Direction) sign() float64 {
	if d == Descending {
		return -1
	}
	return 1
}

// run is a validated monotone stretch of the smoothed profile. Change is
// always positive: gain when ascending, drop when descending.
type run struct {
	start, end         int
	change             float64
	lengthKm           float64
	avgGradientPercent float64
	maxGradientPercent float64
}

// detectRuns scans the smoothed profile with a two-state machine. A run opens
// on the first step in direction dir, grows while the profile keeps going
// that way, and closes once the reversal from its extreme exceeds
// CloseAbsM or CloseRelative of the accumulated change. Only runs that pass
// the thresholds at close time are returned.
func detectRuns(profile []float64, track []TrackPoint, dir Direction, th RunThresholds) []run {
	sign := dir.sign()
	var (
		runs    []run
		open    bool
		start   int
		change  float64
		extreme float64
		maxGrad float64
	)

	closeRun := func(at int) {
		open = false
		best := start
		for j := start; j <= at; j++ {
			if sign*profile[j] > sign*profile[best] {
				best = j
			}
		}
		length := track[best].CumulativeDistanceKm - track[start].CumulativeDistanceKm
		actual := sign * (profile[best] - profile[start])
		if length <= 0 {
			return
		}
		avg := actual / (length * 1000) * 100
		if actual < th.MinChangeM || length <= th.MinLengthKm || avg < th.MinAvgGradientPercent {
			return
		}
		runs = append(runs, run{
			start:              start,
			end:                best,
			change:             actual,
			lengthKm:           length,
			avgGradientPercent: avg,
			maxGradientPercent: maxGrad,
		})
	}

	for i := 1; i < len(profile); i++ {
		delta := sign * (profile[i] - profile[i-1])

		if !open {
			if delta <= 0 {
				continue
			}
			open = true
			start = i - 1
			change = 0
			extreme = sign * profile[i-1]
			maxGrad = 0
		}

		switch {
		case delta > 0:
			change += delta
			extreme = max(extreme, sign*profile[i])
			step := track[i].CumulativeDistanceKm - track[i-1].CumulativeDistanceKm
			if step > 0 {
				maxGrad = max(maxGrad, delta/(step*1000)*100)
			}
		case delta < 0:
			reversal := extreme - sign*profile[i]
			if reversal > th.CloseAbsM || reversal > th.CloseRelative*change {
				closeRun(i)
			}
		}
	}
	if open {
		closeRun(len(profile) - 1)
	}
	return runs
}
