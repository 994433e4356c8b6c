package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"nomadai/pkg/config"
	"nomadai/pkg/utils"
)

// InitRedis connects to the configured cache backend. Returns nil when no
// address is configured; callers fall back to the in-memory cache.
func InitRedis() *redis.Client {
	if config.AppConfig.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		utils.GetLogger().Warn("redis unreachable, falling back to in-memory cache", zap.Error(err))
		return nil
	}

	return client
}

func CloseRedis(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		utils.GetLogger().Error("failed to close redis connection", zap.Error(err))
	}
}
