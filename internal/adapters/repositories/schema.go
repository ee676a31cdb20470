package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"store-route-service/internal/domain"
)

// InitSchema creates the floor-plan and activity tables. The DDL is accepted
// by both Postgres and SQLite.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createShopsQuery := `
	CREATE TABLE IF NOT EXISTS shops (
		shop_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		width DOUBLE PRECISION NOT NULL,
		height DOUBLE PRECISION NOT NULL,
		physical_width_m DOUBLE PRECISION NOT NULL DEFAULT 0,
		physical_height_m DOUBLE PRECISION NOT NULL DEFAULT 0,
		entrance_x DOUBLE PRECISION,
		entrance_y DOUBLE PRECISION,
		exit_x DOUBLE PRECISION,
		exit_y DOUBLE PRECISION,
		version BIGINT NOT NULL DEFAULT 1
	);
	`

	createObstaclesQuery := `
	CREATE TABLE IF NOT EXISTS obstacles (
		obstacle_id BIGINT PRIMARY KEY,
		shop_id BIGINT NOT NULL REFERENCES shops(shop_id) ON DELETE CASCADE,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		width INTEGER NOT NULL CHECK (width > 0),
		height INTEGER NOT NULL CHECK (height > 0),
		type TEXT NOT NULL
	);
	`

	createCategoriesQuery := `
	CREATE TABLE IF NOT EXISTS categories (
		category_id BIGINT PRIMARY KEY,
		shop_id BIGINT NOT NULL REFERENCES shops(shop_id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		x DOUBLE PRECISION,
		y DOUBLE PRECISION
	);
	`

	createActivitiesQuery := `
	CREATE TABLE IF NOT EXISTS route_activities (
		record_id TEXT PRIMARY KEY,
		activity_id TEXT NOT NULL,
		waypoints TEXT NOT NULL,
		distance_meters DOUBLE PRECISION NOT NULL,
		time_minutes DOUBLE PRECISION NOT NULL,
		recorded_at TIMESTAMP NOT NULL
	);
	`

	statements := []string{
		createShopsQuery,
		createObstaclesQuery,
		createCategoriesQuery,
		createActivitiesQuery,
		`CREATE INDEX IF NOT EXISTS idx_obstacles_shop ON obstacles(shop_id);`,
		`CREATE INDEX IF NOT EXISTS idx_categories_shop ON categories(shop_id);`,
		`CREATE INDEX IF NOT EXISTS idx_route_activities_activity ON route_activities(activity_id);`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// LoadSeed reads floor-plan snapshots from a JSON file and validates each one.
func LoadSeed(jsonPath string) ([]domain.FloorPlan, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load seed: read %q: %w", jsonPath, err)
	}

	var plans []domain.FloorPlan
	if err := json.Unmarshal(bytes, &plans); err != nil {
		return nil, fmt.Errorf("load seed: parse json: %w", err)
	}

	seen := make(map[int64]struct{}, len(plans))
	for i := range plans {
		p := &plans[i]
		if p.ShopID <= 0 {
			return nil, fmt.Errorf("load seed: invalid shop_id at index %d: %d", i+1, p.ShopID)
		}
		if _, ok := seen[p.ShopID]; ok {
			return nil, fmt.Errorf("load seed: duplicate shop_id %d", p.ShopID)
		}
		seen[p.ShopID] = struct{}{}

		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("load seed: index %d: %w", i+1, err)
		}
	}

	return plans, nil
}

// SeedFromJSON stores every floor plan of the seed file.
func SeedFromJSON(ctx context.Context, repo *SQLFloorPlanRepository, jsonPath string) error {
	plans, err := LoadSeed(jsonPath)
	if err != nil {
		return fmt.Errorf("seed floor plans: %w", err)
	}

	for i := range plans {
		if err := repo.SaveFloorPlan(ctx, &plans[i]); err != nil {
			return fmt.Errorf("seed floor plans: %w", err)
		}
	}

	return nil
}
