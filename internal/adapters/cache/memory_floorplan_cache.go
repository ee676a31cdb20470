package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"store-route-service/internal/domain"
	"sync"
	"time"
)

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

// MemoryFloorPlanCache is the in-process FloorPlanCache used when no Redis
// is configured. Snapshots are stored encoded so readers never alias them.
// Like the Redis cache it keeps a per-shop generation; a Put carrying a
// superseded generation is dropped.
type MemoryFloorPlanCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	gens    map[int64]int64
	entries map[int64]memoryEntry
}

func NewMemoryFloorPlanCache(ttl time.Duration) *MemoryFloorPlanCache {
	return &MemoryFloorPlanCache{
		ttl:     ttl,
		now:     time.Now,
		gens:    make(map[int64]int64),
		entries: make(map[int64]memoryEntry),
	}
}

func (c *MemoryFloorPlanCache) Generation(ctx context.Context, shopID int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[shopID], nil
}

func (c *MemoryFloorPlanCache) Get(ctx context.Context, shopID int64) (*domain.FloorPlan, bool, error) {
	c.mu.Lock()
	e, ok := c.entries[shopID]
	if ok && c.ttl > 0 && !c.now().Before(e.expires) {
		delete(c.entries, shopID)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return nil, false, nil
	}

	var plan domain.FloorPlan
	if err := json.Unmarshal(e.raw, &plan); err != nil {
		return nil, false, fmt.Errorf("floor plan cache get: decode shop %d: %w", shopID, err)
	}
	return &plan, true, nil
}

func (c *MemoryFloorPlanCache) Put(ctx context.Context, shopID, gen int64, plan *domain.FloorPlan) error {
	if plan == nil {
		return errors.New("floor plan cache put: plan is nil")
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("floor plan cache put: encode shop %d: %w", shopID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gens[shopID] {
		return nil
	}
	c.entries[shopID] = memoryEntry{raw: raw, expires: c.now().Add(c.ttl)}

	return nil
}

func (c *MemoryFloorPlanCache) Invalidate(ctx context.Context, shopID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[shopID]++
	delete(c.entries, shopID)

	return nil
}
