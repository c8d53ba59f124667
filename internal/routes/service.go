package routes

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/db"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/route"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/stream"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/weather"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound    = errors.New("route not found")
	ErrUnavailable = errors.New("route store unavailable")
)

const maxWindSamples = 100

type Service struct {
	db          db.Querier
	analyzer    *route.Analyzer
	weather     weather.Provider
	hub         *stream.Hub
	windSamples int
}

func NewService(db db.Querier, analyzer *route.Analyzer, provider weather.Provider, hub *stream.Hub, windSamples int) *Service {
	if analyzer == nil {
		analyzer = route.NewAnalyzer(route.DefaultConfig(), nil)
	}
	if windSamples <= 0 {
		windSamples = 10
	}
	return &Service{
		db:          db,
		analyzer:    analyzer,
		weather:     provider,
		hub:         hub,
		windSamples: windSamples,
	}
}

func (s *Service) Analyzer() *route.Analyzer {
	return s.analyzer
}

func (s *Service) CreateRoute(ctx context.Context, input Route) (Route, error) {
	input.ID = uuid.NewString()
	input.PointCount = len(input.Points)
	input.DistanceKm = route.TotalDistanceKm(input.Points)
	input.ElevationGainM = s.analyzer.Profile(input.Points).ElevationGainM

	if s.db == nil {
		return Route{}, ErrUnavailable
	}
	points, err := json.Marshal(input.Points)
	if err != nil {
		return Route{}, err
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, name, owner_id, distance_km, elevation_gain_m, point_count, points)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, input.ID, input.Name, input.OwnerID, input.DistanceKm, input.ElevationGainM, input.PointCount, points)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Route{}, err
	}
	return input, nil
}

func (s *Service) GetRoute(ctx context.Context, id string) (Route, error) {
	if s.db == nil {
		return Route{}, ErrUnavailable
	}
	row := s.db.QueryRow(ctx, `
		SELECT id, name, owner_id, distance_km, elevation_gain_m, point_count, points, created_at
		FROM routes WHERE id=$1
	`, id)
	var r Route
	var points []byte
	if err := row.Scan(&r.ID, &r.Name, &r.OwnerID, &r.DistanceKm, &r.ElevationGainM, &r.PointCount, &points, &r.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Route{}, ErrNotFound
		}
		return Route{}, err
	}
	if err := json.Unmarshal(points, &r.Points); err != nil {
		return Route{}, err
	}
	return r, nil
}

// OwnedRoute loads a route for its owner. Routes of other owners are
// reported as missing.
func (s *Service) OwnedRoute(ctx context.Context, id, ownerID string) (Route, error) {
	r, err := s.GetRoute(ctx, id)
	if err != nil {
		return Route{}, err
	}
	if r.OwnerID != ownerID {
		return Route{}, ErrNotFound
	}
	return r, nil
}

func (s *Service) ListRoutes(ctx context.Context, ownerID string) ([]Route, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, name, owner_id, distance_km, elevation_gain_m, point_count, created_at
		FROM routes WHERE owner_id=$1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := []Route{}
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.Name, &r.OwnerID, &r.DistanceKm, &r.ElevationGainM, &r.PointCount, &r.CreatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// DeleteRoute removes a route owned by ownerID.
func (s *Service) DeleteRoute(ctx context.Context, id, ownerID string) error {
	if s.db == nil {
		return ErrUnavailable
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM routes WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Wind samples the track, asks the weather provider about each sample and
// runs the wind analysis. A zero date means current conditions.
func (s *Service) Wind(ctx context.Context, points []route.TrackPoint, date time.Time, count int) (WindReport, error) {
	if count <= 0 {
		count = s.windSamples
	}
	report := WindReport{Date: dateLabel(date), Samples: []route.WindSample{}}
	if len(points) == 0 {
		report.Stats = s.analyzer.WindStats(nil)
		report.Verdict = s.analyzer.WindVerdict(report.Stats)
		return report, nil
	}
	if s.weather == nil {
		return WindReport{}, errors.New("no weather provider configured")
	}

	raw, err := s.weather.WindAt(ctx, s.analyzer.WindSamplePoints(points, count), date)
	if err != nil {
		return WindReport{}, err
	}
	return s.windReport(raw, points, date), nil
}

func (s *Service) windReport(raw []route.RawWindSample, points []route.TrackPoint, date time.Time) WindReport {
	samples := s.analyzer.AnalyzeWind(raw, points)
	stats := s.analyzer.WindStats(samples)
	return WindReport{
		Date:    dateLabel(date),
		Samples: samples,
		Stats:   stats,
		Verdict: s.analyzer.WindVerdict(stats),
	}
}

// RouteWind runs the wind analysis of a route owned by ownerID and
// notifies its stream subscribers.
func (s *Service) RouteWind(ctx context.Context, id, ownerID string, date time.Time, count int) (WindReport, error) {
	r, err := s.OwnedRoute(ctx, id, ownerID)
	if err != nil {
		return WindReport{}, err
	}
	report, err := s.Wind(ctx, r.Points, date, count)
	if err != nil {
		return WindReport{}, err
	}
	report.RouteID = id
	s.publish(report)
	return report, nil
}

func (s *Service) publish(report WindReport) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(analysisEvent{
		Type:    "wind",
		RouteID: report.RouteID,
		Date:    report.Date,
		Stats:   report.Stats,
		Verdict: report.Verdict,
	})
	if err != nil {
		log.Printf("encode analysis event: %v", err)
		return
	}
	s.hub.Broadcast(report.RouteID, payload)
}

func dateLabel(date time.Time) string {
	if date.IsZero() {
		return "current"
	}
	return date.Format(time.DateOnly)
}
