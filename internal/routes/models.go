package routes

import (
	"time"

	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/route"
)

// Route is an uploaded track. Points are only loaded for single-route reads.
type Route struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	OwnerID        string             `json:"owner_id"`
	DistanceKm     float64            `json:"distance_km"`
	ElevationGainM float64            `json:"elevation_gain_m"`
	PointCount     int                `json:"point_count"`
	Points         []route.TrackPoint `json:"points,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

type WindReport struct {
	RouteID string             `json:"route_id,omitempty"`
	Date    string             `json:"date"`
	Samples []route.WindSample `json:"samples"`
	Stats   route.WindStats    `json:"stats"`
	Verdict route.WindVerdict  `json:"verdict"`
}

// analysisEvent is what subscribers of a route's stream receive.
type analysisEvent struct {
	Type    string            `json:"type"`
	RouteID string            `json:"route_id"`
	Date    string            `json:"date"`
	Stats   route.WindStats   `json:"stats"`
	Verdict route.WindVerdict `json:"verdict"`
}
