package db

import (
	"context"
	"todo-api/internal/domain/entity"
)

type SettingsGateway interface {
	FindByUserID(ctx context.Context, userID string) (*entity.UserSettings, error)
	Upsert(ctx context.Context, settings entity.UserSettings) error
	FindPushEnabled(ctx context.Context) ([]entity.UserSettings, error)
}
