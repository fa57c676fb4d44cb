package reminder

import (
	"context"
	"errors"
	"testing"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model/external"
)

type fakeSettings struct {
	settings []entity.UserSettings
}

func (f fakeSettings) FindByUserID(context.Context, string) (*entity.UserSettings, error) {
	return nil, nil
}

func (f fakeSettings) Upsert(context.Context, entity.UserSettings) error {
	return nil
}

func (f fakeSettings) FindPushEnabled(context.Context) ([]entity.UserSettings, error) {
	return f.settings, nil
}

type fakeDue struct {
	counts map[string]int
	from   time.Time
	to     time.Time
}

func (f *fakeDue) CountOpenDueBetween(_ context.Context, ownerID string, from time.Time, to time.Time) (int, error) {
	f.from, f.to = from, to
	return f.counts[ownerID], nil
}

type fakePush struct {
	sent []external.PushNotificationRequest
	fail string
}

func (f *fakePush) SendNotification(_ context.Context, notification external.PushNotificationRequest) error {
	if notification.UserID == f.fail {
		return errors.New("push service unavailable")
	}
	f.sent = append(f.sent, notification)
	return nil
}

func settingsFor(userID, morning, evening string, weekendDnd bool) entity.UserSettings {
	return entity.UserSettings{UserID: userID, PushEnabled: true, MorningTime: morning, EveningTime: evening, WeekendDnd: weekendDnd}
}

func TestDispatchDueMatchesClock(t *testing.T) {
	// 2026-10-17 is a Saturday
	now := time.Date(2026, 10, 17, 8, 0, 30, 0, time.UTC)
	due := &fakeDue{counts: map[string]int{"morning": 3, "evening": 2, "dnd": 1, "idle": 0, "broken": 4}}
	push := &fakePush{fail: "broken"}
	uc := NewReminderUseCase(fakeSettings{settings: []entity.UserSettings{
		settingsFor("morning", "08:00", "21:00", false),
		settingsFor("evening", "07:00", "08:00", false),
		settingsFor("dnd", "08:00", "21:00", true),
		settingsFor("idle", "08:00", "21:00", false),
		settingsFor("late", "09:00", "21:00", false),
		settingsFor("broken", "08:00", "21:00", false),
	}}, due, push, func() time.Time { return now }, time.UTC)

	sent, err := uc.DispatchDue(context.Background())
	if err != nil {
		t.Fatalf("DispatchDue() error = %v", err)
	}
	if sent != 2 || len(push.sent) != 2 {
		t.Fatalf("sent = %d, notifications = %+v", sent, push.sent)
	}
	if push.sent[0].UserID != "morning" || push.sent[0].Data["count"] != "3" || push.sent[1].UserID != "evening" {
		t.Fatalf("notifications = %+v", push.sent)
	}
	if push.sent[0].IdempotencyKey != "morning:2026-10-17:08:00" {
		t.Fatalf("IdempotencyKey = %q", push.sent[0].IdempotencyKey)
	}
	if !due.from.Equal(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)) || due.to.Day() != 17 {
		t.Fatalf("due window = %v..%v", due.from, due.to)
	}
}
