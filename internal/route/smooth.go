package route

import "math"

// SmoothElevations returns the moving average of elevations over the
// inclusive window [i-w/2, i+w/2], clamped to the track bounds.
func SmoothElevations(track []TrackPoint, window int) []float64 {
	return smooth(elevations(track), window)
}

func smooth(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	half := window / 2
	if half < 0 {
		half = 0
	}
	for i := range values {
		start := max(0, i-half)
		end := min(len(values)-1, i+half)

		var sum float64
		for j := start; j <= end; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(end-start+1)
	}
	return out
}

// DetectionWindow sizes the smoothing window to cover roughly cfg.WindowKm of
// road whatever the sample density.
func DetectionWindow(track []TrackPoint, cfg DetectionConfig) int {
	if len(track) == 0 {
		return cfg.MinWindow
	}
	spacing := TotalDistanceKm(track) / float64(len(track))
	if spacing <= 0 {
		return cfg.MaxWindow
	}
	w := math.Floor(cfg.WindowKm/spacing + 0.5)
	switch {
	case w < float64(cfg.MinWindow):
		return cfg.MinWindow
	case w > float64(cfg.MaxWindow):
		return cfg.MaxWindow
	}
	return int(w)
}
