package route

import (
	"fmt"
	"math"
)

type ImpactClass string

const (
	ImpactVeryUnfavorable ImpactClass = "very_unfavorable"
	ImpactUnfavorable     ImpactClass = "unfavorable"
	ImpactNeutral         ImpactClass = "neutral"
	ImpactFavorable       ImpactClass = "favorable"
	ImpactVeryFavorable   ImpactClass = "very_favorable"
)

// RawWindSample is what a weather provider returns for one coordinate.
// A nil WindGustKmh means the provider had no gust value.
type RawWindSample struct {
	Latitude         float64  `json:"lat"`
	Longitude        float64  `json:"lon"`
	WindSpeedKmh     float64  `json:"wind_speed_kmh"`
	WindDirectionDeg float64  `json:"wind_direction_deg"`
	WindGustKmh      *float64 `json:"wind_gust_kmh,omitempty"`
}

type WindSample struct {
	Latitude              float64     `json:"lat"`
	Longitude             float64     `json:"lon"`
	KmMark                float64     `json:"km_mark"`
	WindSpeedKmh          float64     `json:"wind_speed_kmh"`
	WindDirectionDeg      float64     `json:"wind_direction_deg"`
	WindGustKmh           *float64    `json:"wind_gust_kmh,omitempty"`
	HeadwindComponentKmh  float64     `json:"headwind_component_kmh"`
	CrosswindComponentKmh float64     `json:"crosswind_component_kmh"`
	ImpactClass           ImpactClass `json:"impact_class"`
	RouteBearingDeg       float64     `json:"route_bearing_deg"`
}

type WindStats struct {
	HeadwindPct     int     `json:"headwind_pct"`
	TailwindPct     int     `json:"tailwind_pct"`
	LateralPct      int     `json:"lateral_pct"`
	AvgWindSpeedKmh float64 `json:"avg_wind_speed_kmh"`
	MaxGustKmh      float64 `json:"max_gust_kmh"`
}

type VerdictSeverity string

const (
	VerdictDifficult   VerdictSeverity = "difficult"
	VerdictUnfavorable VerdictSeverity = "unfavorable"
	VerdictFavorable   VerdictSeverity = "favorable"
	VerdictCorrect     VerdictSeverity = "correct"
)

type WindVerdict struct {
	Text     string          `json:"text"`
	Severity VerdictSeverity `json:"severity"`
}

// WindSamplePoints returns the points a weather provider should be asked
// about, using the analyzer's sampler.
func (a *Analyzer) WindSamplePoints(track []TrackPoint, count int) []TrackPoint {
	return a.sampler.Sample(track, count)
}

// AnalyzeWind projects each raw sample onto the route direction. Sample i of m
// is located at the proportional index i*(n-1)/(m-1) of the track.
func AnalyzeWind(raw []RawWindSample, track []TrackPoint) []WindSample {
	return defaultAnalyzer.AnalyzeWind(raw, track)
}

// AnalyzeWind on an Analyzer locates sample i at the track point its sampler
// picked for WindSamplePoints(track, len(raw)). Sample sets of another size
// fall back to the proportional index.
func (a *Analyzer) AnalyzeWind(raw []RawWindSample, track []TrackPoint) []WindSample {
	samples := make([]WindSample, 0, len(raw))
	if len(track) == 0 {
		return samples
	}
	step := max(1, len(track)/100)
	indices := a.sampler.SampleIndices(track, len(raw))

	for i, r := range raw {
		idx := proportionalIndex(i, len(raw), len(track))
		if len(indices) == len(raw) {
			idx = indices[i]
		}
		bearing := localBearing(track, idx, step)
		headwind, crosswind := windComponents(r.WindSpeedKmh, r.WindDirectionDeg, bearing)
		samples = append(samples, WindSample{
			Latitude:              r.Latitude,
			Longitude:             r.Longitude,
			KmMark:                track[idx].CumulativeDistanceKm,
			WindSpeedKmh:          r.WindSpeedKmh,
			WindDirectionDeg:      r.WindDirectionDeg,
			WindGustKmh:           r.WindGustKmh,
			HeadwindComponentKmh:  headwind,
			CrosswindComponentKmh: crosswind,
			ImpactClass:           classifyImpact(headwind, a.cfg.Wind),
			RouteBearingDeg:       bearing,
		})
	}
	return samples
}

// windComponents splits a wind blowing from directionDeg into its component
// against the direction of travel (positive = headwind) and the absolute
// perpendicular component.
func windComponents(speed, directionDeg, bearingDeg float64) (headwind, crosswind float64) {
	diff := math.Mod(directionDeg-bearingDeg, 360)
	if diff > 180 {
		diff -= 360
	} else if diff <= -180 {
		diff += 360
	}
	rad := diff * math.Pi / 180
	return speed * math.Cos(rad), math.Abs(speed * math.Sin(rad))
}

// ClassifyImpact maps a headwind component to its impact class using the
// default thresholds.
func ClassifyImpact(headwindKmh float64) ImpactClass {
	return classifyImpact(headwindKmh, DefaultConfig().Wind)
}

func classifyImpact(h float64, cfg WindConfig) ImpactClass {
	switch {
	case h > cfg.StrongKmh:
		return ImpactVeryUnfavorable
	case h > cfg.MildKmh:
		return ImpactUnfavorable
	case h > -cfg.MildKmh:
		return ImpactNeutral
	case h > -cfg.StrongKmh:
		return ImpactFavorable
	default:
		return ImpactVeryFavorable
	}
}

func ComputeWindStats(samples []WindSample) WindStats {
	return defaultAnalyzer.WindStats(samples)
}

func (a *Analyzer) WindStats(samples []WindSample) WindStats {
	if len(samples) == 0 {
		return WindStats{}
	}
	var head, tail int
	var speedSum, maxGust float64
	for _, s := range samples {
		switch {
		case s.HeadwindComponentKmh > a.cfg.Wind.MildKmh:
			head++
		case s.HeadwindComponentKmh < -a.cfg.Wind.MildKmh:
			tail++
		}
		speedSum += s.WindSpeedKmh
		gust := s.WindSpeedKmh
		if s.WindGustKmh != nil {
			gust = *s.WindGustKmh
		}
		maxGust = max(maxGust, gust)
	}

	n := float64(len(samples))
	headPct := int(math.Floor(float64(head)/n*100 + 0.5))
	tailPct := int(math.Floor(float64(tail)/n*100 + 0.5))
	if headPct+tailPct > 100 {
		tailPct = 100 - headPct
	}
	return WindStats{
		HeadwindPct:     headPct,
		TailwindPct:     tailPct,
		LateralPct:      100 - headPct - tailPct,
		AvgWindSpeedKmh: roundTo(speedSum/n, 1),
		MaxGustKmh:      roundTo(maxGust, 1),
	}
}

func GetWindVerdict(stats WindStats) WindVerdict {
	return defaultAnalyzer.WindVerdict(stats)
}

func (a *Analyzer) WindVerdict(stats WindStats) WindVerdict {
	cfg := a.cfg.Wind
	switch {
	case stats.HeadwindPct >= cfg.DifficultHeadwindPct:
		return WindVerdict{
			Text:     fmt.Sprintf("Difficult: headwind on %d%% of the route", stats.HeadwindPct),
			Severity: VerdictDifficult,
		}
	case stats.HeadwindPct >= cfg.UnfavorableHeadwindPct:
		return WindVerdict{
			Text:     fmt.Sprintf("Unfavorable: headwind on %d%% of the route", stats.HeadwindPct),
			Severity: VerdictUnfavorable,
		}
	case stats.TailwindPct >= cfg.FavorableTailwindPct:
		return WindVerdict{
			Text:     fmt.Sprintf("Favorable: tailwind on %d%% of the route", stats.TailwindPct),
			Severity: VerdictFavorable,
		}
	default:
		return WindVerdict{
			Text:     "Correct: mostly crosswind or calm",
			Severity: VerdictCorrect,
		}
	}
}
