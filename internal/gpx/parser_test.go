package gpx

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const testGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Col de la Croix</name>
    <trkseg>
      <trkpt lat="45.0000" lon="6.0000"></trkpt>
      <trkpt lat="45.0010" lon="6.0000"><ele>410</ele></trkpt>
      <trkpt lat="45.0020" lon="6.0000"></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="45.0030" lon="6.0000"><ele>430</ele></trkpt>
    </trkseg>
  </trk>
</gpx>`

const routeOnlyGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <rte>
    <name>Planned loop</name>
    <rtept lat="45.0" lon="6.0"><ele>100</ele></rtept>
    <rtept lat="45.0" lon="6.01"><ele>110</ele></rtept>
  </rte>
</gpx>`

func TestParseTrack(t *testing.T) {
	doc, err := Parse(strings.NewReader(testGPX))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Name != "Col de la Croix" {
		t.Fatalf("unexpected name %q", doc.Name)
	}
	if len(doc.Points) != 4 {
		t.Fatalf("expected 4 points across segments, got %d", len(doc.Points))
	}

	wantEle := []float64{410, 410, 410, 430}
	for i, p := range doc.Points {
		if p.ElevationMeters != wantEle[i] {
			t.Fatalf("point %d: expected elevation %v, got %v", i, wantEle[i], p.ElevationMeters)
		}
	}

	if doc.Points[0].CumulativeDistanceKm != 0 {
		t.Fatalf("expected distance to start at zero")
	}
	// 0.001 degree of latitude is about 111 m.
	last := doc.Points[3].CumulativeDistanceKm
	if math.Abs(last-0.3336) > 0.002 {
		t.Fatalf("unexpected total distance %v", last)
	}
	for i := 1; i < len(doc.Points); i++ {
		if doc.Points[i].CumulativeDistanceKm < doc.Points[i-1].CumulativeDistanceKm {
			t.Fatalf("distance decreased at %d", i)
		}
	}
}

func TestParseRouteFallback(t *testing.T) {
	doc, err := ParseBytes([]byte(routeOnlyGPX))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Name != "Planned loop" || len(doc.Points) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Points[1].ElevationMeters != 110 {
		t.Fatalf("unexpected elevation %v", doc.Points[1].ElevationMeters)
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(strings.NewReader("not valid xml"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParseTooFewPoints(t *testing.T) {
	const single = `<?xml version="1.0"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><trkseg><trkpt lat="45" lon="6"/></trkseg></trk>
</gpx>`
	_, err := ParseBytes([]byte(single))
	if !errors.Is(err, ErrNoPoints) {
		t.Fatalf("expected ErrNoPoints, got %v", err)
	}
}
