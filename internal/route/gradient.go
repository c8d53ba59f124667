package route

type ColorBucket string

const (
	BucketDescent  ColorBucket = "descent"
	BucketFlat     ColorBucket = "flat"
	BucketEasy     ColorBucket = "easy"
	BucketModerate ColorBucket = "moderate"
	BucketHard     ColorBucket = "hard"
	BucketExtreme  ColorBucket = "extreme"
)

type GradientSegment struct {
	StartIndex      int         `json:"start_index"`
	EndIndex        int         `json:"end_index"`
	GradientPercent float64     `json:"gradient_percent"`
	DistStartKm     float64     `json:"dist_start_km"`
	DistEndKm       float64     `json:"dist_end_km"`
	ColorBucket     ColorBucket `json:"color_bucket"`
}

// ClassifyGradient maps a gradient to its bucket using the default thresholds.
func ClassifyGradient(gradientPercent float64) ColorBucket {
	return classifyGradient(gradientPercent, DefaultConfig().Gradient)
}

func classifyGradient(g float64, cfg GradientConfig) ColorBucket {
	switch {
	case g < cfg.FlatFrom:
		return BucketDescent
	case g < cfg.EasyFrom:
		return BucketFlat
	case g < cfg.ModerateFrom:
		return BucketEasy
	case g < cfg.HardFrom:
		return BucketModerate
	case g < cfg.ExtremeFrom:
		return BucketHard
	default:
		return BucketExtreme
	}
}

// ComputeGradientSegments splits the track into about 200 strides and grades
// each one. Strides shorter than a meter are skipped.
func ComputeGradientSegments(track []TrackPoint) []GradientSegment {
	return defaultAnalyzer.GradientSegments(track)
}

func (a *Analyzer) GradientSegments(track []TrackPoint) []GradientSegment {
	cfg := a.cfg.Gradient
	n := len(track)
	segments := []GradientSegment{}
	if n < 2 {
		return segments
	}

	smoothed := SmoothElevations(track, cfg.SmoothingWindow)
	stride := 1
	if cfg.TargetSegments > 0 {
		stride = max(1, n/cfg.TargetSegments)
	}

	for start := 0; start < n-1; start += stride {
		end := min(start+stride, n-1)
		distStart := track[start].CumulativeDistanceKm
		distEnd := track[end].CumulativeDistanceKm
		dDist := distEnd - distStart
		if dDist < cfg.MinSpanKm {
			continue
		}

		gradient := roundTo((smoothed[end]-smoothed[start])/(dDist*1000)*100, 1)
		segments = append(segments, GradientSegment{
			StartIndex:      start,
			EndIndex:        end,
			GradientPercent: gradient,
			DistStartKm:     distStart,
			DistEndKm:       distEnd,
			ColorBucket:     classifyGradient(gradient, cfg),
		})
	}
	return segments
}
