package db

import (
	"context"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

// TodoGateway persists todos and their sub-todos. Every method is scoped to ownerID.
// Lookups of missing rows return nil without error; mutations report whether a row matched.
type TodoGateway interface {
	FindActive(ctx context.Context, ownerID string, folderID *string) ([]entity.Todo, error)
	FindDeleted(ctx context.Context, ownerID string) ([]entity.Todo, error)
	FindByID(ctx context.Context, ownerID string, id string) (*entity.Todo, error)
	FindCompletedCreatedBetween(ctx context.Context, ownerID string, from time.Time, to time.Time) ([]time.Time, error)

	Create(ctx context.Context, todo entity.Todo) error
	Update(ctx context.Context, ownerID string, id string, patch model.TodoPatch) (*entity.Todo, error)
	// SetCompleted flips the completion state only when it differs and reports whether it changed
	SetCompleted(ctx context.Context, ownerID string, id string, isCompleted bool) (bool, error)
	SoftDelete(ctx context.Context, ownerID string, id string, deletedAt time.Time) (bool, error)
	Restore(ctx context.Context, ownerID string, id string) (bool, error)
	DeletePermanently(ctx context.Context, ownerID string, id string) (bool, error)
	Reorder(ctx context.Context, ownerID string, items []model.ReorderItem) error

	CreateSubTodo(ctx context.Context, ownerID string, subTodo entity.SubTodo) (bool, error)
	UpdateSubTodo(ctx context.Context, ownerID string, id string, patch model.SubTodoPatch) (*entity.SubTodo, error)
	DeleteSubTodo(ctx context.Context, ownerID string, id string) (bool, error)
	ReorderSubTodos(ctx context.Context, ownerID string, todoID string, items []model.ReorderItem) error
}

// TrashGateway removes expired trash across all owners
type TrashGateway interface {
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// DueTodoGateway counts open todos for reminders
type DueTodoGateway interface {
	CountOpenDueBetween(ctx context.Context, ownerID string, from time.Time, to time.Time) (int, error)
}
