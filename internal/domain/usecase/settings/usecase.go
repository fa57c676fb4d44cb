package settings

import (
	"context"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

type UseCase interface {
	// Get returns the stored settings or the defaults when the user never saved any
	Get(ctx context.Context, identity *model.Identity) (*entity.UserSettings, error)

	// Upsert validates HH:MM times and saves the settings, keyed by user id
	Upsert(ctx context.Context, identity *model.Identity, dto model.UpdateSettingsDTO) (*entity.UserSettings, error)
}
