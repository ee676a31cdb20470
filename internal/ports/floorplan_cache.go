package ports

import (
	"context"
	"store-route-service/internal/domain"
)

// Optional read-through cache in front of a FloorPlanProvider.
//
// Writers capture Generation before loading from the source and hand it back
// to Put. A Put whose generation was superseded by Invalidate is never
// visible to Get.
type FloorPlanCache interface {
	// Return the cached snapshot, or ok=false on a miss.
	Get(ctx context.Context, shopID int64) (plan *domain.FloorPlan, ok bool, err error)
	Generation(ctx context.Context, shopID int64) (int64, error)
	Put(ctx context.Context, shopID, generation int64, plan *domain.FloorPlan) error
	// Drop the cached snapshot after an obstacle or bounds edit.
	Invalidate(ctx context.Context, shopID int64) error
}

// Drops whatever cached state a provider holds for a shop.
type FloorPlanInvalidator interface {
	Invalidate(ctx context.Context, shopID int64) error
}
