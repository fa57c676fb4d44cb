package reminder

import (
	"context"
	"strconv"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/api"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model/external"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/util/dateutils"

	"go.uber.org/zap"
)

type reminderUseCase struct {
	settingsGateway db.SettingsGateway
	todoGateway     db.DueTodoGateway
	pushGateway     api.PushGateway
	now             func() time.Time
	location        *time.Location
}

func NewReminderUseCase(
	settingsGateway db.SettingsGateway,
	todoGateway db.DueTodoGateway,
	pushGateway api.PushGateway,
	now func() time.Time,
	location *time.Location,
) UseCase {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &reminderUseCase{
		settingsGateway: settingsGateway,
		todoGateway:     todoGateway,
		pushGateway:     pushGateway,
		now:             now,
		location:        location,
	}
}

func (uc *reminderUseCase) DispatchDue(ctx context.Context) (int, error) {
	now := uc.now().In(uc.location)
	clock := dateutils.ClockKey(now)
	log.Debug(msg.GetMessage("reminder.cron.start", clock))

	candidates, err := uc.settingsGateway.FindPushEnabled(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, settings := range candidates {
		if !isDue(settings, now, clock) {
			continue
		}

		count, err := uc.todoGateway.CountOpenDueBetween(ctx, settings.UserID, dateutils.StartOfDay(now), dateutils.EndOfDay(now))
		if err != nil {
			log.Error(msg.GetMessage("reminder.error.send-failed", settings.UserID), zap.Error(err))
			continue
		}
		if count == 0 {
			continue
		}

		notification := external.PushNotificationRequest{
			UserID: settings.UserID,
			Title:  msg.GetMessage("reminder.notification.title"),
			Body:   msg.GetMessage("reminder.notification.body", count),
			Data: map[string]string{
				"date":  dateutils.DateKey(now),
				"count": strconv.Itoa(count),
			},
			IdempotencyKey: settings.UserID + ":" + dateutils.DateKey(now) + ":" + clock,
		}
		if err := uc.pushGateway.SendNotification(ctx, notification); err != nil {
			log.Error(msg.GetMessage("reminder.error.send-failed", settings.UserID), zap.Error(err))
			continue
		}
		sent++
	}

	log.Debug(msg.GetMessage("reminder.cron.end", sent))
	return sent, nil
}

func isDue(settings entity.UserSettings, now time.Time, clock string) bool {
	if !settings.PushEnabled {
		return false
	}
	if settings.WeekendDnd && dateutils.IsWeekend(now) {
		return false
	}
	return settings.MorningTime == clock || settings.EveningTime == clock
}
