// Package weather fetches raw wind samples for points along a route.
package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/route"
)

// Provider returns one raw wind sample per requested point, in order. A zero
// date asks for current conditions.
type Provider interface {
	WindAt(ctx context.Context, points []route.TrackPoint, date time.Time) ([]route.RawWindSample, error)
}

// NetworkError reports a failed or rejected call to the weather provider.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("weather: %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("weather: request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func dateKey(date time.Time) string {
	if date.IsZero() {
		return "current"
	}
	return date.Format(time.DateOnly)
}
