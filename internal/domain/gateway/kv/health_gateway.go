package kv

import (
	"context"
	"todo-api/internal/domain/model"
	"todo-api/pkg/redis"
)

type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}

// RedisHealthGateway reports the Redis connection backing cache, locks and guest storage
type RedisHealthGateway struct {
	checker *redis.HealthChecker
}

func NewRedisHealthGateway(client *redis.Client) *RedisHealthGateway {
	return &RedisHealthGateway{checker: redis.NewHealthChecker(client)}
}

func (gateway *RedisHealthGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	check := gateway.checker.HealthCheck(ctx)

	status := model.StatusUp
	if check.Status != redis.StatusUp {
		status = model.StatusDown
	}
	return model.ComponentHealthStatus{Status: status, Details: check.Details}
}

// MemoryHealthGateway is reported when Redis is disabled
type MemoryHealthGateway struct{}

func (MemoryHealthGateway) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status:  model.StatusUp,
		Details: map[string]string{"message": "Redis disabled, using in-memory stores"},
	}
}
