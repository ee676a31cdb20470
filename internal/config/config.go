package config

import (
	"errors"
	"fmt"
	"os"
	"store-route-service/internal/services"
	"strconv"
	"strings"
	"time"
)

// Floor-plan sources selectable with FLOORPLAN_SOURCE.
const (
	SourceDB   = "db"
	SourceFile = "file"
	SourceHTTP = "http"
)

// Activity sinks selectable with ACTIVITY_SINK.
const (
	SinkDB  = "db"
	SinkLog = "log"
)

// maxExactLimit keeps the Held-Karp table (2^n * n entries) small.
const maxExactLimit = 16

type Config struct {
	Port            string
	DBDriver        string
	DatabaseURL     string
	SeedPath        string
	FloorPlanSource string
	FloorPlanAPIURL string
	FloorPlanAPIKey string
	ActivitySink    string
	RedisURL        string
	CacheTTL        time.Duration
	Engine          services.EngineConfig
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the service configuration from the environment. Callers load
// .env files first.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            Get("PORT", "8080"),
		DBDriver:        Get("DB_DRIVER", "sqlite"),
		DatabaseURL:     Get("DATABASE_URL", "data/app.db"),
		SeedPath:        Get("SEED_PATH", "data/seeds/floorplans.json"),
		FloorPlanSource: Get("FLOORPLAN_SOURCE", SourceDB),
		FloorPlanAPIURL: Get("FLOORPLAN_API_URL", ""),
		FloorPlanAPIKey: Get("FLOORPLAN_API_KEY", ""),
		ActivitySink:    Get("ACTIVITY_SINK", SinkDB),
		RedisURL:        Get("REDIS_URL", ""),
	}

	ttl, err := time.ParseDuration(Get("FLOORPLAN_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("load config: FLOORPLAN_CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	switch cfg.FloorPlanSource {
	case SourceDB, SourceFile:
	case SourceHTTP:
		if cfg.FloorPlanAPIURL == "" {
			return nil, fmt.Errorf("load config: FLOORPLAN_API_URL is required when FLOORPLAN_SOURCE=%s", SourceHTTP)
		}
	default:
		return nil, fmt.Errorf("load config: unknown FLOORPLAN_SOURCE %q", cfg.FloorPlanSource)
	}

	if cfg.ActivitySink != SinkDB && cfg.ActivitySink != SinkLog {
		return nil, fmt.Errorf("load config: unknown ACTIVITY_SINK %q", cfg.ActivitySink)
	}

	engine, err := loadEngine(services.DefaultEngineConfig())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Engine = engine

	return cfg, nil
}

func loadEngine(e services.EngineConfig) (services.EngineConfig, error) {
	floats := []struct {
		key string
		dst *float64
	}{
		{"ROUTE_CLEARANCE_MARGIN", &e.ClearanceMargin},
		{"ROUTE_SNAP_RADIUS", &e.SnapRadius},
		{"ROUTE_METERS_PER_UNIT", &e.DefaultMetersPerUnit},
		{"ROUTE_WALKING_SPEED_MPM", &e.WalkingSpeedMetersPerMinute},
	}
	for _, f := range floats {
		raw := Get(f.key, "")
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return e, fmt.Errorf("%s must be a non-negative number, got %q", f.key, raw)
		}
		*f.dst = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"ROUTE_TWO_OPT_MAX_PASSES", &e.TwoOptMaxPasses},
		{"ROUTE_EXACT_LIMIT", &e.ExactLimit},
		{"ROUTE_MATRIX_WORKERS", &e.MatrixWorkers},
	}
	for _, f := range ints {
		raw := Get(f.key, "")
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return e, fmt.Errorf("%s must be a non-negative integer, got %q", f.key, raw)
		}
		*f.dst = v
	}

	if e.ExactLimit > maxExactLimit {
		return e, fmt.Errorf("ROUTE_EXACT_LIMIT must be at most %d, got %d", maxExactLimit, e.ExactLimit)
	}
	if e.WalkingSpeedMetersPerMinute == 0 {
		return e, errors.New("ROUTE_WALKING_SPEED_MPM must be positive")
	}

	return e, nil
}
