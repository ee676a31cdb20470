package floorplan

import (
	"context"
	"fmt"
	"log"
	"store-route-service/internal/domain"
	"store-route-service/internal/platform/obs"
	"store-route-service/internal/ports"
	"strconv"

	"golang.org/x/sync/singleflight"
)

// CachedProvider puts a FloorPlanCache in front of another provider.
// Concurrent misses for the same shop and cache generation share one upstream
// load. Cache failures are logged and fall through to the source.
type CachedProvider struct {
	Source ports.FloorPlanProvider
	Cache  ports.FloorPlanCache
	group  singleflight.Group
}

func NewCachedProvider(source ports.FloorPlanProvider, cache ports.FloorPlanCache) *CachedProvider {
	return &CachedProvider{Source: source, Cache: cache}
}

func (c *CachedProvider) GetFloorPlan(ctx context.Context, shopID int64) (*domain.FloorPlan, error) {
	plan, ok, err := c.Cache.Get(ctx, shopID)
	if err != nil {
		log.Printf("req_id=%s floor plan cache get failed: shop_id=%d err=%v", obs.RequestID(ctx), shopID, err)
	}
	if ok {
		return plan, nil
	}

	// The generation is read before the source. Loads that straddle an
	// Invalidate are stored under the old generation and never served.
	gen, genErr := c.Cache.Generation(ctx, shopID)
	if genErr != nil {
		log.Printf("req_id=%s floor plan cache generation failed: shop_id=%d err=%v", obs.RequestID(ctx), shopID, genErr)
	}

	key := strconv.FormatInt(shopID, 10) + ":" + strconv.FormatInt(gen, 10)
	v, err, _ := c.group.Do(key, func() (any, error) {
		plan, err := c.Source.GetFloorPlan(ctx, shopID)
		if err != nil {
			return nil, err
		}
		if genErr != nil {
			return plan, nil
		}
		if err := c.Cache.Put(ctx, shopID, gen, plan); err != nil {
			log.Printf("req_id=%s floor plan cache put failed: shop_id=%d err=%v", obs.RequestID(ctx), shopID, err)
		}
		return plan, nil
	})
	if err != nil {
		return nil, err
	}

	return clonePlan(v.(*domain.FloorPlan)), nil
}

func (c *CachedProvider) GetCategoryPoint(ctx context.Context, shopID, categoryID int64) (*domain.Point, error) {
	return c.Source.GetCategoryPoint(ctx, shopID, categoryID)
}

// Invalidate drops the cached snapshot so the next read reloads the source.
func (c *CachedProvider) Invalidate(ctx context.Context, shopID int64) error {
	if err := c.Cache.Invalidate(ctx, shopID); err != nil {
		return fmt.Errorf("invalidate floor plan: %w", err)
	}
	return nil
}
