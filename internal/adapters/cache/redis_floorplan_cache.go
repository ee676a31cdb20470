package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"store-route-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisFloorPlanCache implements the FloorPlanCache port.
//
// Entries are keyed by a per-shop generation counter. Invalidate bumps the
// counter, and Put writes under the generation its caller captured before
// loading, so a load that raced an invalidation lands on a key no later Get
// reads. The TTL collects it.
type RedisFloorPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisFloorPlanCache(client *redis.Client, ttl time.Duration) *RedisFloorPlanCache {
	return &RedisFloorPlanCache{Client: client, TTL: ttl, Prefix: "floorplan"}
}

func (c *RedisFloorPlanCache) genKey(shopID int64) string {
	return fmt.Sprintf("%s:%d:gen", c.Prefix, shopID)
}

func (c *RedisFloorPlanCache) dataKey(shopID, gen int64) string {
	return fmt.Sprintf("%s:%d:g%d", c.Prefix, shopID, gen)
}

func (c *RedisFloorPlanCache) Generation(ctx context.Context, shopID int64) (int64, error) {
	gen, err := c.Client.Get(ctx, c.genKey(shopID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisFloorPlanCache) Get(ctx context.Context, shopID int64) (*domain.FloorPlan, bool, error) {
	gen, err := c.Generation(ctx, shopID)
	if err != nil {
		return nil, false, fmt.Errorf("floor plan cache get: shop %d generation: %w", shopID, err)
	}

	raw, err := c.Client.Get(ctx, c.dataKey(shopID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("floor plan cache get: shop %d: %w", shopID, err)
	}

	var plan domain.FloorPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, false, fmt.Errorf("floor plan cache get: decode shop %d: %w", shopID, err)
	}

	return &plan, true, nil
}

func (c *RedisFloorPlanCache) Put(ctx context.Context, shopID, gen int64, plan *domain.FloorPlan) error {
	if plan == nil {
		return errors.New("floor plan cache put: plan is nil")
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("floor plan cache put: encode shop %d: %w", shopID, err)
	}

	if err := c.Client.Set(ctx, c.dataKey(shopID, gen), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("floor plan cache put: shop %d: %w", shopID, err)
	}

	return nil
}

func (c *RedisFloorPlanCache) Invalidate(ctx context.Context, shopID int64) error {
	gen, err := c.Client.Incr(ctx, c.genKey(shopID)).Result()
	if err != nil {
		return fmt.Errorf("floor plan cache invalidate: shop %d: %w", shopID, err)
	}

	// Older generations are unreachable now; drop the previous one eagerly and
	// let the TTL collect anything a racing Put wrote.
	if err := c.Client.Del(ctx, c.dataKey(shopID, gen-1)).Err(); err != nil {
		return fmt.Errorf("floor plan cache invalidate: shop %d: %w", shopID, err)
	}

	return nil
}
