package cache_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"nomadai/internal/infra"
	"nomadai/internal/providers"
)

var Module = fx.Options(
	fx.Provide(provideRedis, provideCache),
	fx.Invoke(registerCacheHooks))

func provideRedis() *redis.Client {
	return infra.InitRedis()
}

// provideCache prefers redis when configured and reachable, otherwise the
// process-local TTL cache.
func provideCache(client *redis.Client, logger *zap.Logger) providers.Cache {
	if client != nil {
		return providers.NewRedisCache(client, logger)
	}
	logger.Info("using in-memory provider cache")
	return providers.NewInMemoryCache()
}

func registerCacheHooks(lc fx.Lifecycle, client *redis.Client) {
	lc.Append(fx.StopHook(func() {
		infra.CloseRedis(client)
	}))
}
