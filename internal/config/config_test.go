package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FLOORPLAN_SOURCE", "")
	t.Setenv("ROUTE_SNAP_RADIUS", "")
	t.Setenv("ACTIVITY_SINK", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("CacheTTL = %v, want 10m", cfg.CacheTTL)
	}
	if cfg.FloorPlanSource != SourceDB {
		t.Fatalf("FloorPlanSource = %q, want %q", cfg.FloorPlanSource, SourceDB)
	}
	if cfg.ActivitySink != SinkDB {
		t.Fatalf("ActivitySink = %q, want %q", cfg.ActivitySink, SinkDB)
	}
	if cfg.Engine.SnapRadius != 12 {
		t.Fatalf("SnapRadius = %v, want 12", cfg.Engine.SnapRadius)
	}
}

func TestLoadEngineOverrides(t *testing.T) {
	t.Setenv("ROUTE_CLEARANCE_MARGIN", "0.5")
	t.Setenv("ROUTE_EXACT_LIMIT", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.ClearanceMargin != 0.5 {
		t.Fatalf("ClearanceMargin = %v, want 0.5", cfg.Engine.ClearanceMargin)
	}
	if cfg.Engine.ExactLimit != 10 {
		t.Fatalf("ExactLimit = %d, want 10", cfg.Engine.ExactLimit)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"ROUTE_SNAP_RADIUS":   "wide",
		"ROUTE_EXACT_LIMIT":   "40",
		"FLOORPLAN_CACHE_TTL": "soon",
		"FLOORPLAN_SOURCE":    "ftp",
		"ACTIVITY_SINK":       "kafka",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, val)
			}
		})
	}
}

func TestLoadHTTPSourceNeedsURL(t *testing.T) {
	t.Setenv("FLOORPLAN_SOURCE", SourceHTTP)
	t.Setenv("FLOORPLAN_API_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when FLOORPLAN_API_URL is missing")
	}
}
