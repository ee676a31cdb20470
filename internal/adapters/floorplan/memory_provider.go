package floorplan

import (
	"context"
	"fmt"
	"store-route-service/internal/adapters/repositories"
	"store-route-service/internal/domain"
	"sync"
)

// MemoryProvider serves floor plans held in memory. It backs the file source
// and tests.
type MemoryProvider struct {
	mu    sync.RWMutex
	plans map[int64]*domain.FloorPlan
}

func NewMemoryProvider(plans []domain.FloorPlan) *MemoryProvider {
	p := &MemoryProvider{plans: make(map[int64]*domain.FloorPlan, len(plans))}
	for i := range plans {
		p.Put(plans[i])
	}
	return p
}

// NewFileProvider loads a seed file of floor plans into a MemoryProvider.
func NewFileProvider(path string) (*MemoryProvider, error) {
	plans, err := repositories.LoadSeed(path)
	if err != nil {
		return nil, fmt.Errorf("file floor plan provider: %w", err)
	}
	return NewMemoryProvider(plans), nil
}

// Put stores or replaces a shop's plan.
func (p *MemoryProvider) Put(plan domain.FloorPlan) {
	c := clonePlan(&plan)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.plans[plan.ShopID] = c
}

func (p *MemoryProvider) GetFloorPlan(ctx context.Context, shopID int64) (*domain.FloorPlan, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	plan, ok := p.plans[shopID]
	if !ok {
		return nil, fmt.Errorf("get floor plan: shop %d: %w", shopID, domain.ErrShopNotFound)
	}
	return clonePlan(plan), nil
}

func (p *MemoryProvider) GetCategoryPoint(ctx context.Context, shopID, categoryID int64) (*domain.Point, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	plan, ok := p.plans[shopID]
	if !ok {
		return nil, fmt.Errorf("get category point: shop %d: %w", shopID, domain.ErrShopNotFound)
	}
	c, ok := plan.Category(categoryID)
	if !ok {
		return nil, fmt.Errorf("get category point: shop %d category %d: %w", shopID, categoryID, domain.ErrCategoryNotFound)
	}
	return clonePoint(c.Point), nil
}

// clonePlan copies every slice and pointer so callers never share state with
// the provider.
func clonePlan(plan *domain.FloorPlan) *domain.FloorPlan {
	c := *plan
	c.Entrance = clonePoint(plan.Entrance)
	c.Exit = clonePoint(plan.Exit)
	c.Obstacles = append([]domain.Obstacle(nil), plan.Obstacles...)
	c.Categories = make([]domain.Category, len(plan.Categories))
	for i, cat := range plan.Categories {
		cat.Point = clonePoint(cat.Point)
		c.Categories[i] = cat
	}
	return &c
}

func clonePoint(p *domain.Point) *domain.Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
