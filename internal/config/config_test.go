package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/route"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("expected default postgres url")
	}
	if cfg.WeatherTimeout != 10*time.Second {
		t.Fatalf("expected default weather timeout, got %v", cfg.WeatherTimeout)
	}
	if cfg.WindSampleCount != 10 {
		t.Fatalf("expected 10 wind samples, got %d", cfg.WindSampleCount)
	}
	if !reflect.DeepEqual(cfg.Analysis(), route.DefaultConfig()) {
		t.Fatalf("expected default analysis config")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("WEATHER_CACHE_TTL", "5m")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.JWTSecret != "secret" {
		t.Fatalf("expected override secret")
	}
	if cfg.WeatherCacheTTL != 5*time.Minute {
		t.Fatalf("expected override cache ttl, got %v", cfg.WeatherCacheTTL)
	}
}

func TestAnalysisOverrides(t *testing.T) {
	t.Setenv("CLIMB_MIN_GAIN_M", "80")
	t.Setenv("HYSTERESIS_ABS_M", "20")
	t.Setenv("DETECTION_WINDOW_MAX", "40")
	t.Setenv("WIND_MILD_KMH", "3")

	analysis := Load().Analysis()
	if analysis.Climb.MinChangeM != 80 {
		t.Fatalf("expected climb gain override, got %v", analysis.Climb.MinChangeM)
	}
	if analysis.Climb.CloseAbsM != 20 || analysis.Descent.CloseAbsM != 20 {
		t.Fatalf("expected hysteresis override on both directions")
	}
	if analysis.Detection.MaxWindow != 40 {
		t.Fatalf("expected window override")
	}
	if analysis.Wind.MildKmh != 3 {
		t.Fatalf("expected wind override")
	}
	if analysis.Descent.MinChangeM != route.DefaultMinDropM {
		t.Fatalf("descent threshold should keep its default")
	}
}

func TestAnalysisExplicitZero(t *testing.T) {
	t.Setenv("CLIMB_MIN_AVG_GRADIENT", "0")
	t.Setenv("CLIMB_MIN_LENGTH_KM", "0")
	t.Setenv("HYSTERESIS_REL", "0")
	t.Setenv("GRADIENT_TARGET_SEGMENTS", "0")

	analysis := Load().Analysis()
	if analysis.Climb.MinAvgGradientPercent != 0 || analysis.Climb.MinLengthKm != 0 {
		t.Fatalf("expected explicit zero climb gates, got %+v", analysis.Climb)
	}
	if analysis.Climb.CloseRelative != 0 || analysis.Descent.CloseRelative != 0 {
		t.Fatalf("expected explicit zero hysteresis ratio")
	}
	if analysis.Gradient.TargetSegments != route.DefaultConfig().Gradient.TargetSegments {
		t.Fatalf("segment count must stay positive, got %d", analysis.Gradient.TargetSegments)
	}
}

func TestAnalysisUnsetUsesDefaults(t *testing.T) {
	if !reflect.DeepEqual((Config{}).Analysis(), route.DefaultConfig()) {
		t.Fatalf("expected defaults for an empty config")
	}
	zero := 0.0
	if got := (Config{WindMildKmh: &zero}).Analysis().Wind.MildKmh; got != 0 {
		t.Fatalf("expected explicit zero mild wind, got %v", got)
	}
}

func TestSampler(t *testing.T) {
	if _, ok := (Config{WindSampling: "distance"}).Sampler().(route.DistanceSampler); !ok {
		t.Fatalf("expected distance sampler")
	}
	if _, ok := (Config{}).Sampler().(route.IndexSampler); !ok {
		t.Fatalf("expected index sampler by default")
	}
}
