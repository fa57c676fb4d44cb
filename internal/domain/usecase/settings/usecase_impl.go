package settings

import (
	"context"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/util/dateutils"

	"go.uber.org/zap"
)

type settingsUseCase struct {
	gateway db.SettingsGateway
	now     func() time.Time
}

func NewSettingsUseCase(gateway db.SettingsGateway, now func() time.Time) UseCase {
	if now == nil {
		now = time.Now
	}
	return &settingsUseCase{
		gateway: gateway,
		now:     now,
	}
}

func (uc *settingsUseCase) Get(ctx context.Context, identity *model.Identity) (*entity.UserSettings, error) {
	if err := requireUser(identity); err != nil {
		return nil, err
	}

	settings, err := uc.gateway.FindByUserID(ctx, identity.OwnerID)
	if err != nil {
		log.Error(msg.GetMessage("settings.error.failed", identity.OwnerID), zap.Error(err))
		return nil, model.NewOperationFailedError(msg.GetMessage("app.error.operation-failed"), err)
	}
	if settings == nil {
		defaults := entity.DefaultUserSettings(identity.OwnerID)
		return &defaults, nil
	}
	return settings, nil
}

func (uc *settingsUseCase) Upsert(ctx context.Context, identity *model.Identity, dto model.UpdateSettingsDTO) (*entity.UserSettings, error) {
	if err := requireUser(identity); err != nil {
		return nil, err
	}

	settings := entity.DefaultUserSettings(identity.OwnerID)
	settings.PushEnabled = dto.PushEnabled
	settings.WeekendDnd = dto.WeekendDnd
	settings.UpdatedAt = uc.now()
	if dto.MorningTime != "" {
		settings.MorningTime = dto.MorningTime
	}
	if dto.EveningTime != "" {
		settings.EveningTime = dto.EveningTime
	}

	for _, clock := range []string{settings.MorningTime, settings.EveningTime} {
		if !dateutils.IsValidClock(clock) {
			return nil, model.NewValidationError(msg.GetMessage("settings.error.invalid-time", clock))
		}
	}

	if err := uc.gateway.Upsert(ctx, settings); err != nil {
		log.Error(msg.GetMessage("settings.error.failed", identity.OwnerID), zap.Error(err))
		return nil, model.NewOperationFailedError(msg.GetMessage("app.error.operation-failed"), err)
	}
	return &settings, nil
}

func requireUser(identity *model.Identity) error {
	if identity == nil || identity.OwnerID == "" {
		return model.NewUnauthorizedError(msg.GetMessage("app.error.unauthorized"))
	}
	if identity.Guest {
		return model.NewUnauthorizedError(msg.GetMessage("settings.error.guest"))
	}
	return nil
}
