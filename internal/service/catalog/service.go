package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/ports"
)

// StaticCatalog serves product lookups from an in-process table. The real
// catalog lives outside the transaction core; this is the collaborator a
// single-register deployment ships with.
type StaticCatalog struct {
	mu       sync.RWMutex
	products map[string]ports.CatalogProduct
	log      *zap.Logger
}

func NewStaticCatalog(products []ports.CatalogProduct, log *zap.Logger) *StaticCatalog {
	byID := make(map[string]ports.CatalogProduct, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &StaticCatalog{products: byID, log: log}
}

func (c *StaticCatalog) Lookup(ctx context.Context, productID string) (*ports.CatalogProduct, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p, ok := c.products[productID]; ok {
		return &p, nil
	}
	return nil, nil
}

// Upsert adds or replaces a product.
func (c *StaticCatalog) Upsert(p ports.CatalogProduct) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

// CachedCatalog fronts another catalog with the shared cache so repeated
// lookups for popular items skip the backing store.
type CachedCatalog struct {
	inner ports.CatalogService
	cache ports.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedCatalog(inner ports.CatalogService, cache ports.Cache, ttl time.Duration, log *zap.Logger) ports.CatalogService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedCatalog{
		inner: inner,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func (c *CachedCatalog) Lookup(ctx context.Context, productID string) (*ports.CatalogProduct, error) {
	key := cacheKey(productID)
	if raw, err := c.cache.Get(ctx, key); err == nil && raw != "" {
		var p ports.CatalogProduct
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return &p, nil
		}
		// Corrupt entry; fall through to the backing catalog.
		if err := c.cache.Delete(ctx, key); err != nil {
			c.log.Debug("failed to evict corrupt catalog entry", zap.String("key", key), zap.Error(err))
		}
	}

	p, err := c.inner.Lookup(ctx, productID)
	if err != nil || p == nil {
		return p, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
			c.log.Debug("failed to cache catalog entry", zap.String("key", key), zap.Error(err))
		}
	}
	return p, nil
}

func cacheKey(productID string) string {
	return fmt.Sprintf("catalog:product:%s", productID)
}
