package settings

import (
	"context"
	"errors"
	"testing"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

type memoryGateway struct {
	saved map[string]entity.UserSettings
}

func (g *memoryGateway) FindByUserID(_ context.Context, userID string) (*entity.UserSettings, error) {
	settings, ok := g.saved[userID]
	if !ok {
		return nil, nil
	}
	return &settings, nil
}

func (g *memoryGateway) Upsert(_ context.Context, settings entity.UserSettings) error {
	g.saved[settings.UserID] = settings
	return nil
}

func (g *memoryGateway) FindPushEnabled(context.Context) ([]entity.UserSettings, error) {
	return nil, nil
}

func TestGetReturnsDefaults(t *testing.T) {
	uc := NewSettingsUseCase(&memoryGateway{saved: map[string]entity.UserSettings{}}, nil)

	settings, err := uc.Get(context.Background(), model.NewUserIdentity("user-1"))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if settings.PushEnabled || settings.WeekendDnd || settings.MorningTime != "08:00" || settings.EveningTime != "21:00" {
		t.Fatalf("defaults = %+v", settings)
	}
}

func TestUpsertValidatesAndSaves(t *testing.T) {
	gateway := &memoryGateway{saved: map[string]entity.UserSettings{}}
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	uc := NewSettingsUseCase(gateway, func() time.Time { return now })
	ctx := context.Background()
	identity := model.NewUserIdentity("user-1")

	for _, clock := range []string{"24:00", "7:30", "07:60", "noon"} {
		if _, err := uc.Upsert(ctx, identity, model.UpdateSettingsDTO{MorningTime: clock}); !errors.Is(err, model.ErrValidation) {
			t.Errorf("Upsert(%q) error = %v", clock, err)
		}
	}

	saved, err := uc.Upsert(ctx, identity, model.UpdateSettingsDTO{PushEnabled: true, EveningTime: "22:30", WeekendDnd: true})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if !saved.PushEnabled || saved.MorningTime != "08:00" || saved.EveningTime != "22:30" || !saved.UpdatedAt.Equal(now) {
		t.Fatalf("saved = %+v", saved)
	}

	loaded, _ := uc.Get(ctx, identity)
	if loaded.EveningTime != "22:30" || !loaded.WeekendDnd {
		t.Fatalf("Get() = %+v", loaded)
	}
}

func TestGuestsCannotUseSettings(t *testing.T) {
	uc := NewSettingsUseCase(&memoryGateway{saved: map[string]entity.UserSettings{}}, nil)

	if _, err := uc.Get(context.Background(), model.NewGuestIdentity("guest-1")); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("Get() as guest error = %v", err)
	}
}
