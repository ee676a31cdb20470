package cache

import (
	"context"
	"store-route-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisFloorPlanCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisFloorPlanCache(client, time.Minute), mr
}

func testPlan() *domain.FloorPlan {
	return &domain.FloorPlan{
		ShopID:  3,
		Name:    "Cached",
		Version: 4,
		Bounds:  domain.Bounds{Width: 10, Height: 10},
		Obstacles: []domain.Obstacle{
			{ID: 1, X: 2, Y: 2, Width: 3, Height: 3, Type: domain.ObstacleCounter},
		},
	}
}

func TestRedisFloorPlanCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	plan, ok, err := c.Get(context.Background(), 3)
	if err != nil || ok || plan != nil {
		t.Fatalf("Get() = %v, %v, %v, want nil, false, nil", plan, ok, err)
	}
}

func TestRedisFloorPlanCachePutGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	if err := c.Put(ctx, 3, 0, testPlan()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := c.Get(ctx, 3)
	if err != nil || !ok {
		t.Fatalf("Get() ok = %v, err = %v, want true, nil", ok, err)
	}
	if got.Version != 4 || len(got.Obstacles) != 1 || got.Obstacles[0].Type != domain.ObstacleCounter {
		t.Fatalf("Get() = %+v, want the stored plan", got)
	}
}

func TestRedisFloorPlanCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	if err := c.Put(ctx, 3, 0, testPlan()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Invalidate(ctx, 3); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	if _, ok, err := c.Get(ctx, 3); err != nil || ok {
		t.Fatalf("Get() after Invalidate ok = %v, err = %v, want false, nil", ok, err)
	}

	// A fresh Put under the new generation is visible again.
	gen, err := c.Generation(ctx, 3)
	if err != nil || gen != 1 {
		t.Fatalf("Generation() = %d, %v, want 1, nil", gen, err)
	}
	if err := c.Put(ctx, 3, gen, testPlan()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, 3); !ok {
		t.Fatalf("Get() after re-Put ok = false, want true")
	}
}

func TestRedisFloorPlanCacheDropsPutFromSupersededGeneration(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	gen, err := c.Generation(ctx, 3)
	if err != nil {
		t.Fatalf("Generation() error = %v", err)
	}
	if err := c.Invalidate(ctx, 3); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if err := c.Put(ctx, 3, gen, testPlan()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if _, ok, err := c.Get(ctx, 3); err != nil || ok {
		t.Fatalf("Get() ok = %v, err = %v, want false, nil", ok, err)
	}
}

func TestRedisFloorPlanCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	if err := c.Put(ctx, 3, 0, testPlan()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, ok, err := c.Get(ctx, 3); err != nil || ok {
		t.Fatalf("Get() after TTL ok = %v, err = %v, want false, nil", ok, err)
	}
}
