package schedule

import (
	"context"
	"time"
	"todo-api/internal/domain/usecase/reminder"
)

// NewReminderJob dispatches push reminders. It runs every minute, so the lock is held for most of
// the minute to keep other instances from sending the same reminders.
func NewReminderJob(useCase reminder.UseCase, cronExpression string) Job {
	return Job{
		Name:     "reminder",
		Cron:     cronExpression,
		LockTTL:  50 * time.Second,
		HoldLock: true,
		Task: func(ctx context.Context) error {
			_, err := useCase.DispatchDue(ctx)
			return err
		},
	}
}
