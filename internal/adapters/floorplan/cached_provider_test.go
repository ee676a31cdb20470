package floorplan

import (
	"context"
	"errors"
	"store-route-service/internal/adapters/cache"
	"store-route-service/internal/domain"
	"store-route-service/internal/ports"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type countingProvider struct {
	*MemoryProvider
	loads atomic.Int32
}

func (c *countingProvider) GetFloorPlan(ctx context.Context, shopID int64) (*domain.FloorPlan, error) {
	c.loads.Add(1)
	return c.MemoryProvider.GetFloorPlan(ctx, shopID)
}

func TestCachedProviderReadsThrough(t *testing.T) {
	ctx := context.Background()
	src := &countingProvider{MemoryProvider: NewMemoryProvider([]domain.FloorPlan{shopPlan()})}
	p := NewCachedProvider(src, cache.NewMemoryFloorPlanCache(time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := p.GetFloorPlan(ctx, 1); err != nil {
			t.Fatalf("GetFloorPlan() error = %v", err)
		}
	}
	if got := src.loads.Load(); got != 1 {
		t.Fatalf("source loads = %d, want 1", got)
	}
}

func TestCachedProviderInvalidateReloads(t *testing.T) {
	ctx := context.Background()
	src := &countingProvider{MemoryProvider: NewMemoryProvider([]domain.FloorPlan{shopPlan()})}
	p := NewCachedProvider(src, cache.NewMemoryFloorPlanCache(time.Minute))

	if _, err := p.GetFloorPlan(ctx, 1); err != nil {
		t.Fatalf("GetFloorPlan() error = %v", err)
	}

	edited := shopPlan()
	edited.Obstacles = nil
	src.Put(edited)

	if err := p.Invalidate(ctx, 1); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	got, err := p.GetFloorPlan(ctx, 1)
	if err != nil {
		t.Fatalf("GetFloorPlan() error = %v", err)
	}
	if len(got.Obstacles) != 0 {
		t.Fatalf("Obstacles = %d after invalidate, want 0", len(got.Obstacles))
	}
	if loads := src.loads.Load(); loads != 2 {
		t.Fatalf("source loads = %d, want 2", loads)
	}
}

func TestCachedProviderPassesThroughErrors(t *testing.T) {
	p := NewCachedProvider(NewMemoryProvider(nil), cache.NewMemoryFloorPlanCache(time.Minute))

	_, err := p.GetFloorPlan(context.Background(), 9)
	if !errors.Is(err, domain.ErrShopNotFound) {
		t.Fatalf("GetFloorPlan() error = %v, want ErrShopNotFound", err)
	}
}

// gatedProvider reads its snapshot and then holds the first load until
// release is closed.
type gatedProvider struct {
	*MemoryProvider
	loads   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (g *gatedProvider) GetFloorPlan(ctx context.Context, shopID int64) (*domain.FloorPlan, error) {
	plan, err := g.MemoryProvider.GetFloorPlan(ctx, shopID)
	if g.loads.Add(1) == 1 {
		close(g.entered)
		<-g.release
	}
	return plan, err
}

func TestCachedProviderInvalidateDuringLoad(t *testing.T) {
	caches := map[string]func(t *testing.T) ports.FloorPlanCache{
		"memory": func(t *testing.T) ports.FloorPlanCache {
			return cache.NewMemoryFloorPlanCache(time.Minute)
		},
		"redis": func(t *testing.T) ports.FloorPlanCache {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { client.Close() })
			return cache.NewRedisFloorPlanCache(client, time.Minute)
		},
	}

	for name, newCache := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			original := shopPlan()
			original.Version = 1
			src := &gatedProvider{
				MemoryProvider: NewMemoryProvider([]domain.FloorPlan{original}),
				entered:        make(chan struct{}),
				release:        make(chan struct{}),
			}
			p := NewCachedProvider(src, newCache(t))

			done := make(chan error, 1)
			go func() {
				_, err := p.GetFloorPlan(ctx, 1)
				done <- err
			}()
			<-src.entered

			edited := shopPlan()
			edited.Version = 2
			edited.Obstacles = nil
			src.Put(edited)
			if err := p.Invalidate(ctx, 1); err != nil {
				t.Fatalf("Invalidate() error = %v", err)
			}

			close(src.release)
			if err := <-done; err != nil {
				t.Fatalf("in-flight GetFloorPlan() error = %v", err)
			}

			got, err := p.GetFloorPlan(ctx, 1)
			if err != nil {
				t.Fatalf("GetFloorPlan() error = %v", err)
			}
			if got.Version != 2 || len(got.Obstacles) != 0 {
				t.Fatalf("GetFloorPlan() version = %d obstacles = %d, want 2 and 0", got.Version, len(got.Obstacles))
			}
			if loads := src.loads.Load(); loads != 2 {
				t.Fatalf("source loads = %d, want 2", loads)
			}
		})
	}
}
