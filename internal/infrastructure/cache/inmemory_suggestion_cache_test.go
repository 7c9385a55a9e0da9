package cache

import (
	"context"
	"testing"
	"time"

	"github.com/erp/pricing/internal/domain/sourcing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSuggestions(productID uuid.UUID) []sourcing.SupplierSuggestion {
	return []sourcing.SupplierSuggestion{
		{
			SupplierID: uuid.New(),
			ProductID:  productID,
			UnitCost:   decimal.NewFromInt(45),
			TotalScore: decimal.NewFromInt(80),
		},
	}
}

func TestInMemorySuggestionCache(t *testing.T) {
	ctx := context.Background()

	t.Run("should round-trip a scoring run", func(t *testing.T) {
		cache := NewInMemorySuggestionCache(time.Minute)
		defer cache.Close()
		tenantID, productID := uuid.New(), uuid.New()
		suggestions := sampleSuggestions(productID)

		cache.Set(ctx, tenantID, productID, suggestions)
		got, ok := cache.Get(ctx, tenantID, productID)

		require.True(t, ok)
		assert.Equal(t, suggestions, got)
	})

	t.Run("should miss for an unknown product", func(t *testing.T) {
		cache := NewInMemorySuggestionCache(time.Minute)
		defer cache.Close()

		_, ok := cache.Get(ctx, uuid.New(), uuid.New())

		assert.False(t, ok)
	})

	t.Run("should expire entries after the TTL", func(t *testing.T) {
		cache := NewInMemorySuggestionCache(10 * time.Millisecond)
		defer cache.Close()
		tenantID, productID := uuid.New(), uuid.New()

		cache.Set(ctx, tenantID, productID, sampleSuggestions(productID))
		time.Sleep(25 * time.Millisecond)
		_, ok := cache.Get(ctx, tenantID, productID)

		assert.False(t, ok)
	})

	t.Run("should drop an entry on invalidate", func(t *testing.T) {
		cache := NewInMemorySuggestionCache(time.Minute)
		defer cache.Close()
		tenantID, productID := uuid.New(), uuid.New()
		cache.Set(ctx, tenantID, productID, sampleSuggestions(productID))

		cache.Invalidate(ctx, tenantID, productID)
		_, ok := cache.Get(ctx, tenantID, productID)

		assert.False(t, ok)
		assert.Zero(t, cache.Count())
	})

	t.Run("should isolate tenants sharing a product id", func(t *testing.T) {
		cache := NewInMemorySuggestionCache(time.Minute)
		defer cache.Close()
		productID := uuid.New()
		tenantA, tenantB := uuid.New(), uuid.New()
		cache.Set(ctx, tenantA, productID, sampleSuggestions(productID))

		_, okA := cache.Get(ctx, tenantA, productID)
		_, okB := cache.Get(ctx, tenantB, productID)

		assert.True(t, okA)
		assert.False(t, okB)
	})

	t.Run("should track hits and misses", func(t *testing.T) {
		cache := NewInMemorySuggestionCache(time.Minute)
		defer cache.Close()
		tenantID, productID := uuid.New(), uuid.New()
		cache.Set(ctx, tenantID, productID, sampleSuggestions(productID))

		cache.Get(ctx, tenantID, productID)
		cache.Get(ctx, tenantID, uuid.New())

		hits, misses := cache.GetStats()
		assert.Equal(t, int64(1), hits)
		assert.Equal(t, int64(1), misses)
	})
}
