package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erp/pricing/internal/domain/sourcing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemorySuggestionCache implements sourcing.SuggestionCache with in-process
// storage. Suitable for single-instance deployments; distributed setups
// should use the Redis variant so invalidations reach every node.
type InMemorySuggestionCache struct {
	entries sync.Map // map[string]*suggestionEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type suggestionEntry struct {
	suggestions []sourcing.SupplierSuggestion
	expiresAt   time.Time
}

func (e *suggestionEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemorySuggestionCacheOption configures the cache
type InMemorySuggestionCacheOption func(*InMemorySuggestionCache)

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemorySuggestionCacheOption {
	return func(c *InMemorySuggestionCache) {
		c.logger = logger
	}
}

// NewInMemorySuggestionCache creates a new in-memory suggestion cache with
// the given entry TTL
func NewInMemorySuggestionCache(ttl time.Duration, opts ...InMemorySuggestionCacheOption) *InMemorySuggestionCache {
	cache := &InMemorySuggestionCache{
		ttl:    ttl,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

func suggestionKey(tenantID, productID uuid.UUID) string {
	return tenantID.String() + ":" + productID.String()
}

// Get implements sourcing.SuggestionCache
func (c *InMemorySuggestionCache) Get(_ context.Context, tenantID, productID uuid.UUID) ([]sourcing.SupplierSuggestion, bool) {
	key := suggestionKey(tenantID, productID)

	if value, ok := c.entries.Load(key); ok {
		entry := value.(*suggestionEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.suggestions, true
		}
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, false
}

// Set implements sourcing.SuggestionCache
func (c *InMemorySuggestionCache) Set(_ context.Context, tenantID, productID uuid.UUID, suggestions []sourcing.SupplierSuggestion) {
	c.entries.Store(suggestionKey(tenantID, productID), &suggestionEntry{
		suggestions: suggestions,
		expiresAt:   time.Now().Add(c.ttl),
	})
}

// Invalidate implements sourcing.SuggestionCache
func (c *InMemorySuggestionCache) Invalidate(_ context.Context, tenantID, productID uuid.UUID) {
	c.entries.Delete(suggestionKey(tenantID, productID))
	c.logger.Debug("invalidated suggestion cache entry",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", productID.String()))
}

// Close stops the background cleanup goroutine
func (c *InMemorySuggestionCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache hit and miss counters
func (c *InMemorySuggestionCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of live entries
func (c *InMemorySuggestionCache) Count() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

func (c *InMemorySuggestionCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			removed := 0
			c.entries.Range(func(key, value any) bool {
				if value.(*suggestionEntry).isExpired() {
					c.entries.Delete(key)
					removed++
				}
				return true
			})
			if removed > 0 {
				c.logger.Debug("cleaned up expired suggestion cache entries",
					zap.Int("removed", removed))
			}
		}
	}
}

// Ensure InMemorySuggestionCache implements SuggestionCache
var _ sourcing.SuggestionCache = (*InMemorySuggestionCache)(nil)
