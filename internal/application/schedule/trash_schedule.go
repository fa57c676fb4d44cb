package schedule

import (
	"context"
	"time"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

// NewTrashPurgeJob permanently deletes todos that stayed in the trash longer than retention
func NewTrashPurgeJob(useCase todo.UseCase, cronExpression string, retention time.Duration) Job {
	return Job{
		Name:    "trash-purge",
		Cron:    cronExpression,
		LockTTL: 10 * time.Minute,
		Task: func(ctx context.Context) error {
			log.Info(msg.GetMessage("trash.cron.start"))
			removed, err := useCase.PurgeTrash(ctx, retention)
			if err != nil {
				return err
			}
			log.Info(msg.GetMessage("trash.cron.end", removed))
			return nil
		},
	}
}
