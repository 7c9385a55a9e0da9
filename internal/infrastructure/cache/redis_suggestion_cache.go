package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/erp/pricing/internal/domain/sourcing"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisSuggestionCache implements sourcing.SuggestionCache backed by Redis,
// so every instance of the engine sees the same runs and invalidations
type RedisSuggestionCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisOptions holds Redis connection configuration
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisSuggestionCache creates a Redis-backed suggestion cache and
// verifies the connection
func NewRedisSuggestionCache(opts RedisOptions, ttl time.Duration, logger *zap.Logger) (*RedisSuggestionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSuggestionCacheWithClient(client, ttl, logger), nil
}

// NewRedisSuggestionCacheWithClient creates a cache with an existing Redis
// client, useful for testing or when sharing a client across components
func NewRedisSuggestionCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSuggestionCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSuggestionCache{
		client:    client,
		keyPrefix: "pricing:suggestions:",
		ttl:       ttl,
		logger:    logger,
	}
}

func (c *RedisSuggestionCache) key(tenantID, productID uuid.UUID) string {
	return c.keyPrefix + tenantID.String() + ":" + productID.String()
}

// Get implements sourcing.SuggestionCache. Redis errors degrade to a cache
// miss so the engine recomputes instead of failing the request.
func (c *RedisSuggestionCache) Get(ctx context.Context, tenantID, productID uuid.UUID) ([]sourcing.SupplierSuggestion, bool) {
	payload, err := c.client.Get(ctx, c.key(tenantID, productID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("suggestion cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var suggestions []sourcing.SupplierSuggestion
	if err := json.Unmarshal(payload, &suggestions); err != nil {
		c.logger.Warn("suggestion cache entry corrupted, dropping",
			zap.String("product_id", productID.String()), zap.Error(err))
		c.client.Del(ctx, c.key(tenantID, productID))
		return nil, false
	}
	return suggestions, true
}

// Set implements sourcing.SuggestionCache
func (c *RedisSuggestionCache) Set(ctx context.Context, tenantID, productID uuid.UUID, suggestions []sourcing.SupplierSuggestion) {
	payload, err := json.Marshal(suggestions)
	if err != nil {
		c.logger.Warn("suggestion cache serialization failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(tenantID, productID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("suggestion cache write failed", zap.Error(err))
	}
}

// Invalidate implements sourcing.SuggestionCache
func (c *RedisSuggestionCache) Invalidate(ctx context.Context, tenantID, productID uuid.UUID) {
	if err := c.client.Del(ctx, c.key(tenantID, productID)).Err(); err != nil {
		c.logger.Warn("suggestion cache invalidation failed",
			zap.String("product_id", productID.String()), zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisSuggestionCache) Close() error {
	return c.client.Close()
}

// Ensure RedisSuggestionCache implements SuggestionCache
var _ sourcing.SuggestionCache = (*RedisSuggestionCache)(nil)
