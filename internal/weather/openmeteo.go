package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/route"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const windFields = "wind_speed_10m,wind_direction_10m,wind_gusts_10m"

// middayHour is the hourly slot used when a ride date is given.
const middayHour = 12

type OpenMeteo struct {
	baseURL     string
	timeout     time.Duration
	concurrency int
}

func NewOpenMeteo(baseURL string, timeout time.Duration, concurrency int) *OpenMeteo {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &OpenMeteo{baseURL: baseURL, timeout: timeout, concurrency: concurrency}
}

type omCurrent struct {
	WindSpeed     *float64 `json:"wind_speed_10m"`
	WindDirection *float64 `json:"wind_direction_10m"`
	WindGusts     *float64 `json:"wind_gusts_10m"`
}

type omHourly struct {
	Time          []string   `json:"time"`
	WindSpeed     []*float64 `json:"wind_speed_10m"`
	WindDirection []*float64 `json:"wind_direction_10m"`
	WindGusts     []*float64 `json:"wind_gusts_10m"`
}

type omResponse struct {
	Current *omCurrent `json:"current"`
	Hourly  *omHourly  `json:"hourly"`
}

func (o *OpenMeteo) WindAt(ctx context.Context, points []route.TrackPoint, date time.Time) ([]route.RawWindSample, error) {
	samples := make([]route.RawWindSample, len(points))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sample, err := o.fetch(p, date)
			if err != nil {
				return err
			}
			samples[i] = sample
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}

func (o *OpenMeteo) requestURL(p route.TrackPoint, date time.Time) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', 4, 64))
	q.Set("wind_speed_unit", "kmh")
	q.Set("timezone", "auto")
	if date.IsZero() {
		q.Set("current", windFields)
	} else {
		day := date.Format(time.DateOnly)
		q.Set("hourly", windFields)
		q.Set("start_date", day)
		q.Set("end_date", day)
	}
	return o.baseURL + "?" + q.Encode()
}

func (o *OpenMeteo) fetch(p route.TrackPoint, date time.Time) (route.RawWindSample, error) {
	reqURL := o.requestURL(p, date)

	agent := fiber.Get(reqURL)
	if o.timeout > 0 {
		agent.Timeout(o.timeout)
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return route.RawWindSample{}, &NetworkError{URL: reqURL, Err: errors.Join(errs...)}
	}
	if code != fiber.StatusOK {
		return route.RawWindSample{}, &NetworkError{URL: reqURL, StatusCode: code}
	}

	var resp omResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return route.RawWindSample{}, &NetworkError{URL: reqURL, Err: fmt.Errorf("decode response: %w", err)}
	}

	sample := route.RawWindSample{Latitude: p.Latitude, Longitude: p.Longitude}
	switch {
	case date.IsZero() && resp.Current != nil:
		sample.WindSpeedKmh = deref(resp.Current.WindSpeed)
		sample.WindDirectionDeg = deref(resp.Current.WindDirection)
		sample.WindGustKmh = resp.Current.WindGusts
	case !date.IsZero() && resp.Hourly != nil && len(resp.Hourly.Time) > 0:
		h := min(middayHour, len(resp.Hourly.Time)-1)
		sample.WindSpeedKmh = deref(at(resp.Hourly.WindSpeed, h))
		sample.WindDirectionDeg = deref(at(resp.Hourly.WindDirection, h))
		sample.WindGustKmh = at(resp.Hourly.WindGusts, h)
	default:
		return route.RawWindSample{}, &NetworkError{URL: reqURL, Err: errors.New("response has no wind data")}
	}
	return sample, nil
}

func at(values []*float64, i int) *float64 {
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
