package ports

import (
	"context"
	"store-route-service/internal/domain"
)

// Port: the boundary to whatever owns shop layouts (database, admin service).
type FloorPlanProvider interface {
	// Return the current layout snapshot for a shop, or domain.ErrShopNotFound.
	GetFloorPlan(ctx context.Context, shopID int64) (*domain.FloorPlan, error)
	// Return a category's stored location within a shop. A nil point means the
	// category exists but has not been placed; ids unknown to that shop return
	// domain.ErrCategoryNotFound.
	GetCategoryPoint(ctx context.Context, shopID, categoryID int64) (*domain.Point, error)
}
