package route

// Profile is the full elevation analysis of one track.
type Profile struct {
	DistanceKm       float64           `json:"distance_km"`
	PointCount       int               `json:"point_count"`
	ElevationGainM   float64           `json:"elevation_gain_m"`
	ElevationLossM   float64           `json:"elevation_loss_m"`
	MinElevationM    float64           `json:"min_elevation_m"`
	MaxElevationM    float64           `json:"max_elevation_m"`
	GradientSegments []GradientSegment `json:"gradient_segments"`
	Climbs           []ClimbSegment    `json:"climbs"`
	Descents         []DescentSegment  `json:"descents"`
}

// Profile runs gradient segmentation and both detectors. The detectors share
// one smoothed profile; totals are measured on it too so that GPS noise does
// not inflate the elevation gain.
func (a *Analyzer) Profile(track []TrackPoint) Profile {
	p := Profile{
		DistanceKm:       TotalDistanceKm(track),
		PointCount:       len(track),
		GradientSegments: a.GradientSegments(track),
		Climbs:           []ClimbSegment{},
		Descents:         []DescentSegment{},
	}
	if len(track) == 0 {
		return p
	}

	p.MinElevationM, p.MaxElevationM = track[0].ElevationMeters, track[0].ElevationMeters
	for _, pt := range track[1:] {
		p.MinElevationM = min(p.MinElevationM, pt.ElevationMeters)
		p.MaxElevationM = max(p.MaxElevationM, pt.ElevationMeters)
	}

	profile := a.detectionProfile(track)
	if profile == nil {
		return p
	}
	for i := 1; i < len(profile); i++ {
		if d := profile[i] - profile[i-1]; d > 0 {
			p.ElevationGainM += d
		} else {
			p.ElevationLossM -= d
		}
	}
	p.ElevationGainM = roundTo(p.ElevationGainM, 0)
	p.ElevationLossM = roundTo(p.ElevationLossM, 0)
	p.Climbs = climbsFromProfile(profile, track, a.cfg.Climb)
	p.Descents = descentsFromProfile(profile, track, a.cfg.Descent)
	return p
}

func AnalyzeProfile(track []TrackPoint) Profile {
	return defaultAnalyzer.Profile(track)
}
