package route

import "strconv"

type ClimbSegment struct {
	Name               string  `json:"name"`
	StartIndex         int     `json:"start_index"`
	EndIndex           int     `json:"end_index"`
	DistStartKm        float64 `json:"dist_start_km"`
	DistEndKm          float64 `json:"dist_end_km"`
	ElevationGainM     float64 `json:"elevation_gain_m"`
	LengthKm           float64 `json:"length_km"`
	AvgGradientPercent float64 `json:"avg_gradient_percent"`
	MaxGradientPercent float64 `json:"max_gradient_percent"`
	StartElevationM    float64 `json:"start_elevation_m"`
	EndElevationM      float64 `json:"end_elevation_m"`
}

type DescentSegment struct {
	StartIndex  int     `json:"start_index"`
	EndIndex    int     `json:"end_index"`
	DistStartKm float64 `json:"dist_start_km"`
	DistEndKm   float64 `json:"dist_end_km"`
	ElevDropM   float64 `json:"elev_drop_m"`
	LengthKm    float64 `json:"length_km"`
	// Negative.
	AvgGradientPercent float64 `json:"avg_gradient_percent"`
}

// IdentifyClimbs returns the validated climbs of track, in order, using the
// default thresholds and minGainM as minimum elevation gain.
func IdentifyClimbs(track []TrackPoint, minGainM float64) []ClimbSegment {
	return defaultAnalyzer.climbs(track, minGainM)
}

// IdentifyDescents is the mirror of IdentifyClimbs.
func IdentifyDescents(track []TrackPoint, minDropM float64) []DescentSegment {
	return defaultAnalyzer.descents(track, minDropM)
}

func (a *Analyzer) Climbs(track []TrackPoint) []ClimbSegment {
	return a.climbs(track, a.cfg.Climb.MinChangeM)
}

func (a *Analyzer) Descents(track []TrackPoint) []DescentSegment {
	return a.descents(track, a.cfg.Descent.MinChangeM)
}

// ClimbsWithMinGain overrides the configured minimum gain for one call.
func (a *Analyzer) ClimbsWithMinGain(track []TrackPoint, minGainM float64) []ClimbSegment {
	return a.climbs(track, minGainM)
}

func (a *Analyzer) DescentsWithMinDrop(track []TrackPoint, minDropM float64) []DescentSegment {
	return a.descents(track, minDropM)
}

// detectionProfile returns the smoothed elevations used by both detectors, or
// nil when the track is too short to analyse.
func (a *Analyzer) detectionProfile(track []TrackPoint) []float64 {
	if len(track) < a.cfg.Detection.MinPoints || len(track) < 2 {
		return nil
	}
	return SmoothElevations(track, DetectionWindow(track, a.cfg.Detection))
}

func (a *Analyzer) climbs(track []TrackPoint, minGainM float64) []ClimbSegment {
	climbs := []ClimbSegment{}
	profile := a.detectionProfile(track)
	if profile == nil {
		return climbs
	}
	th := a.cfg.Climb
	th.MinChangeM = minGainM
	return climbsFromProfile(profile, track, th)
}

func climbsFromProfile(profile []float64, track []TrackPoint, th RunThresholds) []ClimbSegment {
	climbs := []ClimbSegment{}
	for _, r := range detectRuns(profile, track, Ascending, th) {
		climbs = append(climbs, ClimbSegment{
			Name:               "Climb " + strconv.Itoa(len(climbs)+1),
			StartIndex:         r.start,
			EndIndex:           r.end,
			DistStartKm:        track[r.start].CumulativeDistanceKm,
			DistEndKm:          track[r.end].CumulativeDistanceKm,
			ElevationGainM:     r.change,
			LengthKm:           r.lengthKm,
			AvgGradientPercent: roundTo(r.avgGradientPercent, 1),
			MaxGradientPercent: roundTo(r.maxGradientPercent, 1),
			StartElevationM:    profile[r.start],
			EndElevationM:      profile[r.end],
		})
	}
	return climbs
}

func (a *Analyzer) descents(track []TrackPoint, minDropM float64) []DescentSegment {
	descents := []DescentSegment{}
	profile := a.detectionProfile(track)
	if profile == nil {
		return descents
	}
	th := a.cfg.Descent
	th.MinChangeM = minDropM
	return descentsFromProfile(profile, track, th)
}

func descentsFromProfile(profile []float64, track []TrackPoint, th RunThresholds) []DescentSegment {
	descents := []DescentSegment{}
	for _, r := range detectRuns(profile, track, Descending, th) {
		descents = append(descents, DescentSegment{
			StartIndex:         r.start,
			EndIndex:           r.end,
			DistStartKm:        track[r.start].CumulativeDistanceKm,
			DistEndKm:          track[r.end].CumulativeDistanceKm,
			ElevDropM:          r.change,
			LengthKm:           r.lengthKm,
			AvgGradientPercent: -roundTo(r.avgGradientPercent, 1),
		})
	}
	return descents
}
