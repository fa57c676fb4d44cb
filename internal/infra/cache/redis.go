package cache

import (
	"context"
	"fmt"
	"todo-api/internal/domain/usecase/stats"
	"todo-api/pkg/log"
	"todo-api/pkg/redis"
	"todo-api/pkg/resource"
)

// NewRedisClient connects to the Redis server configured under app.redis.*
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	config := redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database"))

	if ttl := resource.GetDuration("app.stats.cache-ttl"); ttl > 0 {
		config = config.WithCacheTTL(stats.CacheName, ttl)
	}

	client, err := redis.NewClient(config)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", config.Addr(), err)
	}

	log.Infof("Connected to redis at %s", config.Addr())
	return client, nil
}
