package floorplan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"store-route-service/internal/domain"
	"testing"
)

func shopPlan() domain.FloorPlan {
	return domain.FloorPlan{
		ShopID:   1,
		Name:     "Test",
		Bounds:   domain.Bounds{Width: 20, Height: 20},
		Entrance: &domain.Point{X: 0, Y: 0},
		Obstacles: []domain.Obstacle{
			{ID: 1, X: 5, Y: 5, Width: 5, Height: 5, Type: domain.ObstacleShelf},
		},
		Categories: []domain.Category{
			{ID: 10, Name: "Bakery", Point: &domain.Point{X: 15, Y: 15}},
			{ID: 11, Name: "Unplaced"},
		},
	}
}

func TestMemoryProviderGetFloorPlan(t *testing.T) {
	p := NewMemoryProvider([]domain.FloorPlan{shopPlan()})

	got, err := p.GetFloorPlan(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetFloorPlan() error = %v", err)
	}
	if got.Name != "Test" || len(got.Obstacles) != 1 {
		t.Fatalf("GetFloorPlan() = %+v, want the stored plan", got)
	}

	got.Obstacles[0].X = 100
	got.Entrance.X = 100
	again, _ := p.GetFloorPlan(context.Background(), 1)
	if again.Obstacles[0].X != 5 || again.Entrance.X != 0 {
		t.Fatalf("stored plan was mutated through a returned copy: %+v", again)
	}

	_, err = p.GetFloorPlan(context.Background(), 2)
	if !errors.Is(err, domain.ErrShopNotFound) {
		t.Fatalf("GetFloorPlan(2) error = %v, want ErrShopNotFound", err)
	}
}

func TestMemoryProviderGetCategoryPoint(t *testing.T) {
	other := domain.FloorPlan{
		ShopID:     2,
		Name:       "Other",
		Bounds:     domain.Bounds{Width: 20, Height: 20},
		Categories: []domain.Category{{ID: 20, Name: "Dairy", Point: &domain.Point{X: 1, Y: 1}}},
	}
	p := NewMemoryProvider([]domain.FloorPlan{shopPlan(), other})
	ctx := context.Background()

	pt, err := p.GetCategoryPoint(ctx, 1, 10)
	if err != nil || pt == nil || *pt != (domain.Point{X: 15, Y: 15}) {
		t.Fatalf("GetCategoryPoint(10) = %v, %v, want (15,15), nil", pt, err)
	}

	pt, err = p.GetCategoryPoint(ctx, 1, 11)
	if err != nil || pt != nil {
		t.Fatalf("GetCategoryPoint(11) = %v, %v, want nil, nil", pt, err)
	}

	_, err = p.GetCategoryPoint(ctx, 1, 12)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("GetCategoryPoint(12) error = %v, want ErrCategoryNotFound", err)
	}

	_, err = p.GetCategoryPoint(ctx, 1, 20)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("GetCategoryPoint(1, 20) error = %v, want ErrCategoryNotFound", err)
	}

	_, err = p.GetCategoryPoint(ctx, 3, 10)
	if !errors.Is(err, domain.ErrShopNotFound) {
		t.Fatalf("GetCategoryPoint(3, 10) error = %v, want ErrShopNotFound", err)
	}
}

func TestNewFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.json")
	seed := `[{"shop_id": 4, "name": "File", "bounds": {"width": 10, "height": 10}}]`
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("NewFileProvider() error = %v", err)
	}
	if _, err := p.GetFloorPlan(context.Background(), 4); err != nil {
		t.Fatalf("GetFloorPlan(4) error = %v", err)
	}

	if _, err := NewFileProvider(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("NewFileProvider(missing) error = nil, want error")
	}
}
