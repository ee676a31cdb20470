package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"store-route-service/internal/domain"
	"store-route-service/internal/platform/db"
	"testing"

	"github.com/google/uuid"
)

func openTestDB(t *testing.T) *SQLFloorPlanRepository {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	return NewSQLFloorPlanRepository(conn, db.DriverSQLite)
}

func samplePlan() *domain.FloorPlan {
	return &domain.FloorPlan{
		ShopID:              7,
		Name:                "Corner Market",
		Bounds:              domain.Bounds{Width: 100, Height: 60},
		PhysicalWidthMeters: 20,
		Entrance:            &domain.Point{X: 0, Y: 30},
		Obstacles: []domain.Obstacle{
			{ID: 71, X: 10, Y: 10, Width: 20, Height: 5, Type: domain.ObstacleShelf},
			{ID: 72, X: 40, Y: 0, Width: 2, Height: 30, Type: domain.ObstacleWall},
		},
		Categories: []domain.Category{
			{ID: 701, Name: "Dairy", Point: &domain.Point{X: 50, Y: 40}},
			{ID: 702, Name: "Unplaced"},
		},
	}
}

func TestSaveAndGetFloorPlan(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	plan := samplePlan()
	if err := repo.SaveFloorPlan(ctx, plan); err != nil {
		t.Fatalf("SaveFloorPlan() error = %v", err)
	}

	got, err := repo.GetFloorPlan(ctx, plan.ShopID)
	if err != nil {
		t.Fatalf("GetFloorPlan() error = %v", err)
	}

	want := *plan
	want.Version = 1
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("GetFloorPlan() = %+v, want %+v", *got, want)
	}
}

func TestSaveFloorPlanBumpsVersionAndReplacesChildren(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	plan := samplePlan()
	if err := repo.SaveFloorPlan(ctx, plan); err != nil {
		t.Fatalf("SaveFloorPlan() error = %v", err)
	}

	plan.Obstacles = plan.Obstacles[:1]
	plan.Categories = nil
	if err := repo.SaveFloorPlan(ctx, plan); err != nil {
		t.Fatalf("SaveFloorPlan() second call error = %v", err)
	}

	got, err := repo.GetFloorPlan(ctx, plan.ShopID)
	if err != nil {
		t.Fatalf("GetFloorPlan() error = %v", err)
	}
	if got.Version != 2 {
		t.Fatalf("Version = %d, want 2", got.Version)
	}
	if len(got.Obstacles) != 1 || len(got.Categories) != 0 {
		t.Fatalf("children = %d obstacles, %d categories, want 1, 0", len(got.Obstacles), len(got.Categories))
	}
}

func TestGetFloorPlanUnknownShop(t *testing.T) {
	repo := openTestDB(t)

	_, err := repo.GetFloorPlan(context.Background(), 999)
	if !errors.Is(err, domain.ErrShopNotFound) {
		t.Fatalf("GetFloorPlan() error = %v, want ErrShopNotFound", err)
	}
}

func TestGetCategoryPoint(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)
	if err := repo.SaveFloorPlan(ctx, samplePlan()); err != nil {
		t.Fatalf("SaveFloorPlan() error = %v", err)
	}

	p, err := repo.GetCategoryPoint(ctx, 7, 701)
	if err != nil {
		t.Fatalf("GetCategoryPoint() error = %v", err)
	}
	if p == nil || *p != (domain.Point{X: 50, Y: 40}) {
		t.Fatalf("GetCategoryPoint() = %v, want (50,40)", p)
	}

	p, err = repo.GetCategoryPoint(ctx, 7, 702)
	if err != nil || p != nil {
		t.Fatalf("GetCategoryPoint(unplaced) = %v, %v, want nil, nil", p, err)
	}

	_, err = repo.GetCategoryPoint(ctx, 7, 1)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("GetCategoryPoint(missing) error = %v, want ErrCategoryNotFound", err)
	}

	other := &domain.FloorPlan{ShopID: 8, Name: "Other", Bounds: domain.Bounds{Width: 10, Height: 10}}
	if err := repo.SaveFloorPlan(ctx, other); err != nil {
		t.Fatalf("SaveFloorPlan(other) error = %v", err)
	}
	_, err = repo.GetCategoryPoint(ctx, 8, 701)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("GetCategoryPoint(other shop) error = %v, want ErrCategoryNotFound", err)
	}
}

func TestSeedFromJSON(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `[
		{"shop_id": 1, "name": "A", "bounds": {"width": 50, "height": 50},
		 "entrance": {"x": 0, "y": 0}, "exit": {"x": 50, "y": 50},
		 "obstacles": [{"id": 11, "x": 10, "y": 10, "width": 5, "height": 5, "type": "shelf"}]},
		{"shop_id": 2, "name": "B", "bounds": {"width": 30, "height": 20}}
	]`
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := SeedFromJSON(ctx, repo, path); err != nil {
		t.Fatalf("SeedFromJSON() error = %v", err)
	}

	got, err := repo.GetFloorPlan(ctx, 1)
	if err != nil {
		t.Fatalf("GetFloorPlan(1) error = %v", err)
	}
	if len(got.Obstacles) != 1 || got.Exit == nil {
		t.Fatalf("GetFloorPlan(1) = %+v, want 1 obstacle and an exit", got)
	}
	if _, err := repo.GetFloorPlan(ctx, 2); err != nil {
		t.Fatalf("GetFloorPlan(2) error = %v", err)
	}
}

func TestLoadSeedRejectsDuplicatesAndDegeneratePlans(t *testing.T) {
	cases := map[string]string{
		"duplicate": `[{"shop_id": 1, "bounds": {"width": 1, "height": 1}},
		               {"shop_id": 1, "bounds": {"width": 1, "height": 1}}]`,
		"zero bounds": `[{"shop_id": 1, "bounds": {"width": 0, "height": 1}}]`,
		"bad id":      `[{"shop_id": 0, "bounds": {"width": 1, "height": 1}}]`,
	}

	for name, seed := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if _, err := LoadSeed(path); err == nil {
				t.Fatalf("LoadSeed() error = nil, want error")
			}
		})
	}
}

func TestRecordRoute(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)
	sink := NewSQLActivitySink(repo.DB, db.DriverSQLite)

	id := uuid.New()
	if err := sink.RecordRoute(ctx, id, []string{"bread", "milk"}, 12.5, 0.2); err != nil {
		t.Fatalf("RecordRoute() error = %v", err)
	}

	var waypoints string
	var meters float64
	err := repo.DB.QueryRowContext(ctx,
		`SELECT waypoints, distance_meters FROM route_activities WHERE activity_id = ?1;`,
		id.String(),
	).Scan(&waypoints, &meters)
	if err != nil {
		t.Fatalf("query route_activities error = %v", err)
	}
	if waypoints != `["bread","milk"]` || meters != 12.5 {
		t.Fatalf("row = %q, %v, want [\"bread\",\"milk\"], 12.5", waypoints, meters)
	}

	if err := sink.RecordRoute(ctx, uuid.Nil, nil, 0, 0); err == nil {
		t.Fatalf("RecordRoute(uuid.Nil) error = nil, want error")
	}
}
