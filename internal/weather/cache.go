package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/route"

	"github.com/redis/go-redis/v9"
)

// Cache serves samples from Redis and asks the wrapped provider only for the
// points it has not seen. Redis failures degrade to a plain pass-through.
type Cache struct {
	next  Provider
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(next Provider, redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{next: next, redis: redisClient, ttl: ttl}
}

func (c *Cache) WindAt(ctx context.Context, points []route.TrackPoint, date time.Time) ([]route.RawWindSample, error) {
	if c.redis == nil || len(points) == 0 {
		return c.next.WindAt(ctx, points, date)
	}

	keys := make([]string, len(points))
	for i, p := range points {
		keys[i] = cacheKey(p, date)
	}

	samples := make([]route.RawWindSample, len(points))
	var missIdx []int
	cached, err := c.redis.MGet(ctx, keys...).Result()
	if err != nil {
		log.Printf("weather cache read error: %v", err)
		cached = nil
	}
	for i := range points {
		if !decodeCached(cached, i, &samples[i]) {
			missIdx = append(missIdx, i)
			continue
		}
		samples[i].Latitude, samples[i].Longitude = points[i].Latitude, points[i].Longitude
	}
	if len(missIdx) == 0 {
		return samples, nil
	}

	missing := make([]route.TrackPoint, len(missIdx))
	for j, i := range missIdx {
		missing[j] = points[i]
	}
	fetched, err := c.next.WindAt(ctx, missing, date)
	if err != nil {
		return nil, err
	}
	if len(fetched) != len(missing) {
		return nil, fmt.Errorf("weather: provider returned %d samples for %d points", len(fetched), len(missing))
	}

	pipe := c.redis.Pipeline()
	for j, i := range missIdx {
		samples[i] = fetched[j]
		payload, err := json.Marshal(fetched[j])
		if err != nil {
			continue
		}
		pipe.Set(ctx, keys[i], payload, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("weather cache write error: %v", err)
	}
	return samples, nil
}

func decodeCached(values []interface{}, i int, dst *route.RawWindSample) bool {
	if i >= len(values) {
		return false
	}
	s, ok := values[i].(string)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(s), dst) == nil
}

// cacheKey rounds coordinates to about 100 m so neighbouring requests share
// entries.
func cacheKey(p route.TrackPoint, date time.Time) string {
	return fmt.Sprintf("weather:wind:%.3f:%.3f:%s", p.Latitude, p.Longitude, dateKey(date))
}
