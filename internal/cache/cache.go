package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// Page is a rendered response held for the revalidation window.
type Page struct {
	Status      int
	ContentType string
	Body        []byte
}

// PageCache stores rendered public pages in-process with a fixed TTL. There
// is deliberately no invalidation hook: admin writes become visible when the
// window lapses and the next request regenerates the page.
type PageCache struct {
	backing *ristretto.Cache
	manager *gocache.Cache[*Page]
	ttl     time.Duration
}

// NewPageCache builds a ristretto-backed page cache with the given
// revalidation window.
func NewPageCache(ttl time.Duration) (*PageCache, error) {
	backing, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     64 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	manager := gocache.New[*Page](ristretto_store.NewRistretto(backing))
	return &PageCache{backing: backing, manager: manager, ttl: ttl}, nil
}

// Get returns the cached page for the key, if still within its window.
func (c *PageCache) Get(ctx context.Context, key string) (*Page, bool) {
	page, err := c.manager.Get(ctx, key)
	if err != nil || page == nil {
		return nil, false
	}
	return page, true
}

// Set stores a rendered page for the revalidation window.
func (c *PageCache) Set(ctx context.Context, key string, page *Page) {
	cost := int64(len(page.Body))
	if cost == 0 {
		cost = 1
	}
	// Best effort: a rejected set only means the next request re-renders.
	_ = c.manager.Set(ctx, key, page,
		store.WithCost(cost),
		store.WithExpiration(c.ttl),
	)
}

// Wait flushes ristretto's set buffers. Only needed when a subsequent Get
// must observe a just-written entry, as in warmup and tests.
func (c *PageCache) Wait() {
	c.backing.Wait()
}

// TTL reports the configured revalidation window.
func (c *PageCache) TTL() time.Duration {
	return c.ttl
}
