package cache

import (
	"time"

	"github.com/erp/pricing/internal/domain/sourcing"
	"github.com/erp/pricing/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SuggestionCacheFactory builds the suggestion cache from configuration,
// preferring Redis and falling back to the in-process cache when Redis is
// disabled or unreachable
type SuggestionCacheFactory struct {
	redisConfig config.RedisConfig
	ttl         time.Duration
	logger      *zap.Logger
}

// NewSuggestionCacheFactory creates a new factory
func NewSuggestionCacheFactory(redisConfig config.RedisConfig, ttl time.Duration, logger *zap.Logger) *SuggestionCacheFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionCacheFactory{
		redisConfig: redisConfig,
		ttl:         ttl,
		logger:      logger,
	}
}

// Create builds the suggestion cache. With Redis disabled the in-memory
// cache is used directly; with Redis enabled but unreachable the factory
// warns and falls back, which only costs recomputation on other nodes.
func (f *SuggestionCacheFactory) Create() sourcing.SuggestionCache {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory suggestion cache")
		return NewInMemorySuggestionCache(f.ttl, WithInMemoryLogger(f.logger))
	}

	redisCache, err := NewRedisSuggestionCache(RedisOptions{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.ttl, f.logger)
	if err != nil {
		f.logger.Warn("Redis unavailable, falling back to in-memory suggestion cache",
			zap.Error(err))
		return NewInMemorySuggestionCache(f.ttl, WithInMemoryLogger(f.logger))
	}

	f.logger.Info("using Redis suggestion cache")
	return redisCache
}
