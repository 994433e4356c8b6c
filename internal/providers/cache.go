package providers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores normalized candidate lists keyed by (category, constraints).
// Backends are dumb stores; the at-most-once population discipline lives in
// the Adapter.
type Cache interface {
	Get(ctx context.Context, key string) ([]CandidateOption, bool)
	Set(ctx context.Context, key string, options []CandidateOption, ttl time.Duration)
}

// --------- In-memory TTL cache ---------

type memoryCacheEntry struct {
	Options   []CandidateOption
	ExpiresAt time.Time
}

type inMemoryCache struct {
	mu    sync.RWMutex
	store map[string]memoryCacheEntry
}

// NewInMemoryCache returns the default process-local cache, used when no
// redis address is configured.
func NewInMemoryCache() Cache {
	return &inMemoryCache{store: make(map[string]memoryCacheEntry)}
}

func (c *inMemoryCache) Get(_ context.Context, key string) ([]CandidateOption, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[key]
	if !ok || time.Now().After(it.ExpiresAt) {
		return nil, false
	}
	return it.Options, true
}

func (c *inMemoryCache) Set(_ context.Context, key string, options []CandidateOption, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = memoryCacheEntry{Options: options, ExpiresAt: time.Now().Add(ttl)}
}

// --------- Redis-backed cache ---------

type redisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache wraps a redis client. Redis failures are logged and treated
// as cache misses; the planner never fails because the cache is down.
func NewRedisCache(client *redis.Client, logger *zap.Logger) Cache {
	return &redisCache{client: client, logger: logger}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]CandidateOption, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var options []CandidateOption
	if err := json.Unmarshal(raw, &options); err != nil {
		c.logger.Warn("cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, key)
		return nil, false
	}
	return options, true
}

func (c *redisCache) Set(ctx context.Context, key string, options []CandidateOption, ttl time.Duration) {
	raw, err := json.Marshal(options)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
