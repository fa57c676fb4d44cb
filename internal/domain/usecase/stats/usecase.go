package stats

import (
	"context"
	"todo-api/internal/domain/model"
)

type UseCase interface {
	// GetWeeklyStats counts completed todos per calendar day over the last seven days, today included
	GetWeeklyStats(ctx context.Context, identity *model.Identity) (*model.WeeklyStats, error)

	// Evict drops today's cached statistics of an identity
	Evict(ctx context.Context, identity *model.Identity) error
}

// Cache is the part of pkg/redis.Cache the statistics need
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
