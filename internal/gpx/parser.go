// Package gpx turns GPX documents into the normalized tracks the route
// analysis works on.
package gpx

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/route"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/shared/geo"

	"github.com/tkrajina/gpxgo/gpx"
)

// ErrNoPoints is returned when a document holds fewer than two usable points.
var ErrNoPoints = errors.New("gpx: document contains fewer than 2 points")

// ParseError reports a document that could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gpx: parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Document is a parsed GPX file. Name falls back to the first track or
// route name.
type Document struct {
	Name   string
	Points []route.TrackPoint
}

func Parse(r io.Reader) (Document, error) {
	file, err := gpx.Parse(r)
	if err != nil {
		return Document{}, &ParseError{Err: err}
	}
	return fromFile(file)
}

func ParseBytes(data []byte) (Document, error) {
	return Parse(bytes.NewReader(data))
}

func fromFile(file *gpx.GPX) (Document, error) {
	doc := Document{Name: file.Name}

	var raw []gpx.GPXPoint
	for _, track := range file.Tracks {
		if doc.Name == "" {
			doc.Name = track.Name
		}
		for _, segment := range track.Segments {
			raw = append(raw, segment.Points...)
		}
	}
	// Planned routes exported without a recorded track.
	if len(raw) == 0 {
		for _, rte := range file.Routes {
			if doc.Name == "" {
				doc.Name = rte.Name
			}
			raw = append(raw, rte.Points...)
		}
	}
	if len(raw) < 2 {
		return Document{}, ErrNoPoints
	}

	doc.Points = normalize(raw)
	return doc, nil
}

// normalize fills elevation gaps and accumulates haversine distance.
// Leading points without elevation take the first known value, later gaps
// carry the previous one.
func normalize(raw []gpx.GPXPoint) []route.TrackPoint {
	points := make([]route.TrackPoint, len(raw))

	firstEle := 0.0
	for _, p := range raw {
		if p.Elevation.NotNull() {
			firstEle = p.Elevation.Value()
			break
		}
	}

	lastEle := firstEle
	var dist float64
	for i, p := range raw {
		if p.Elevation.NotNull() {
			lastEle = p.Elevation.Value()
		}
		if i > 0 {
			prev := raw[i-1]
			dist += geo.HaversineKm(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
		}
		points[i] = route.TrackPoint{
			Latitude:             p.Latitude,
			Longitude:            p.Longitude,
			ElevationMeters:      lastEle,
			CumulativeDistanceKm: dist,
		}
	}
	return points
}
