package integration

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seu-repo/quickpos/internal/ports"
	"github.com/seu-repo/quickpos/internal/service/catalog"
)

// TestRedis_CacheOperations tests the cache adapter against a real Redis
func TestRedis_CacheOperations(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.Cache == nil {
		t.Skip("Redis not available")
	}

	FlushRedis(t, env.Redis)
	ctx := context.Background()

	t.Run("SetGet", func(t *testing.T) {
		if err := env.Cache.Set(ctx, "test:key", "test-value", time.Minute); err != nil {
			t.Fatalf("Failed to set key: %v", err)
		}

		val, err := env.Cache.Get(ctx, "test:key")
		if err != nil {
			t.Fatalf("Failed to get key: %v", err)
		}
		if val != "test-value" {
			t.Errorf("Expected 'test-value', got '%s'", val)
		}
	})

	t.Run("SetWithExpiration", func(t *testing.T) {
		if err := env.Cache.Set(ctx, "test:expiring", "value", 100*time.Millisecond); err != nil {
			t.Fatalf("Failed to set key: %v", err)
		}

		if _, err := env.Cache.Get(ctx, "test:expiring"); err != nil {
			t.Fatalf("Key should exist: %v", err)
		}

		time.Sleep(150 * time.Millisecond)

		if _, err := env.Cache.Get(ctx, "test:expiring"); err != redis.Nil {
			t.Error("Key should have expired")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		env.Cache.Set(ctx, "test:delete", "value", time.Minute)

		if err := env.Cache.Delete(ctx, "test:delete"); err != nil {
			t.Fatalf("Failed to delete key: %v", err)
		}

		if _, err := env.Cache.Get(ctx, "test:delete"); err != redis.Nil {
			t.Error("Key should have been deleted")
		}
	})

	t.Run("Ping", func(t *testing.T) {
		if err := env.Cache.Ping(); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})
}

// countingCatalog counts how often the backing catalog is hit.
type countingCatalog struct {
	inner ports.CatalogService
	hits  int
}

func (c *countingCatalog) Lookup(ctx context.Context, productID string) (*ports.CatalogProduct, error) {
	c.hits++
	return c.inner.Lookup(ctx, productID)
}

// TestRedis_CachedCatalog tests the catalog cache layer against a real Redis
func TestRedis_CachedCatalog(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.Cache == nil {
		t.Skip("Redis not available")
	}

	FlushRedis(t, env.Redis)
	ctx := context.Background()

	static := catalog.NewStaticCatalog([]ports.CatalogProduct{
		{ID: "es-teh", Name: "Es Teh", UnitPrice: 5000},
	}, env.Logger)
	counting := &countingCatalog{inner: static}
	cached := catalog.NewCachedCatalog(counting, env.Cache, time.Minute, env.Logger)

	t.Run("SecondLookupServedFromCache", func(t *testing.T) {
		first, err := cached.Lookup(ctx, "es-teh")
		if err != nil {
			t.Fatalf("First lookup failed: %v", err)
		}
		if first == nil || first.UnitPrice != 5000 {
			t.Fatalf("Unexpected product: %+v", first)
		}

		second, err := cached.Lookup(ctx, "es-teh")
		if err != nil {
			t.Fatalf("Second lookup failed: %v", err)
		}
		if second == nil || second.Name != "Es Teh" {
			t.Fatalf("Unexpected cached product: %+v", second)
		}

		if counting.hits != 1 {
			t.Errorf("Expected 1 backing hit, got %d", counting.hits)
		}
	})

	t.Run("MissesAreNotCached", func(t *testing.T) {
		before := counting.hits

		for i := 0; i < 2; i++ {
			p, err := cached.Lookup(ctx, "no-such-product")
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			if p != nil {
				t.Fatalf("Expected nil for unknown product, got %+v", p)
			}
		}

		if counting.hits != before+2 {
			t.Errorf("Expected misses to reach backing catalog every time, got %d extra hits", counting.hits-before)
		}
	})

	t.Run("CorruptEntryFallsThrough", func(t *testing.T) {
		if err := env.Cache.Set(ctx, "catalog:product:es-teh", "{not-json", time.Minute); err != nil {
			t.Fatalf("Failed to plant corrupt entry: %v", err)
		}

		p, err := cached.Lookup(ctx, "es-teh")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if p == nil || p.UnitPrice != 5000 {
			t.Fatalf("Expected product from backing catalog, got %+v", p)
		}
	})
}
