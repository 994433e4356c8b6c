package providers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMiniredisCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, zap.NewNop()), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache, _ := newMiniredisCache(t)
	ctx := context.Background()
	options := []CandidateOption{testOption("a"), testOption("b")}

	cache.Set(ctx, "flight:key", options, time.Minute)

	got, ok := cache.Get(ctx, "flight:key")
	require.True(t, ok)
	assert.Equal(t, options, got)
}

func TestRedisCacheMiss(t *testing.T) {
	cache, _ := newMiniredisCache(t)

	_, ok := cache.Get(context.Background(), "absent")
	assert.False(t, ok)
}

func TestRedisCacheTTLExpiry(t *testing.T) {
	cache, mr := newMiniredisCache(t)
	ctx := context.Background()

	cache.Set(ctx, "flight:key", []CandidateOption{testOption("a")}, time.Minute)
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "flight:key")
	assert.False(t, ok)
}

func TestRedisCacheDropsCorruptEntries(t *testing.T) {
	cache, mr := newMiniredisCache(t)
	require.NoError(t, mr.Set("flight:key", "not json"))

	_, ok := cache.Get(context.Background(), "flight:key")
	assert.False(t, ok)
	assert.False(t, mr.Exists("flight:key"), "corrupt entry should be deleted")
}

func TestInMemoryCacheExpiry(t *testing.T) {
	cache := NewInMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "key", []CandidateOption{testOption("a")}, 10*time.Millisecond)

	_, ok := cache.Get(ctx, "key")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = cache.Get(ctx, "key")
	assert.False(t, ok)
}
