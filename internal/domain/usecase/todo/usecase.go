package todo

import (
	"context"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

type UseCase interface {
	// List returns the owner's active todos, optionally limited to one folder.
	// Store failures are logged and yield an empty list.
	List(ctx context.Context, identity *model.Identity, folderID *string) ([]entity.Todo, error)

	// ListDeleted returns the owner's trash, most recently deleted first
	ListDeleted(ctx context.Context, identity *model.Identity) ([]entity.Todo, error)

	// Create validates and stores a new todo stamped with the current time as its order
	Create(ctx context.Context, identity *model.Identity, dto model.CreateTodoDTO) (*entity.Todo, error)

	// Update applies a partial update. An empty patch changes nothing and returns nil.
	Update(ctx context.Context, identity *model.Identity, id string, patch model.TodoPatch) (*entity.Todo, error)

	// Toggle sets the completion state and creates the next occurrence of a recurring todo
	// when it goes from open to completed
	Toggle(ctx context.Context, identity *model.Identity, id string, isCompleted bool) (*entity.Todo, error)

	Delete(ctx context.Context, identity *model.Identity, id string) error
	Restore(ctx context.Context, identity *model.Identity, id string) error
	DeletePermanently(ctx context.Context, identity *model.Identity, id string) error
	Reorder(ctx context.Context, identity *model.Identity, items []model.ReorderItem) error

	CreateSubTodo(ctx context.Context, identity *model.Identity, todoID string, dto model.CreateSubTodoDTO) (*entity.SubTodo, error)
	UpdateSubTodo(ctx context.Context, identity *model.Identity, id string, patch model.SubTodoPatch) (*entity.SubTodo, error)
	ToggleSubTodo(ctx context.Context, identity *model.Identity, id string, isCompleted bool) (*entity.SubTodo, error)
	DeleteSubTodo(ctx context.Context, identity *model.Identity, id string) error
	ReorderSubTodos(ctx context.Context, identity *model.Identity, todoID string, items []model.ReorderItem) error

	// ParseContent extracts a relative due date phrase from free text
	ParseContent(text string) model.ParsedContentDTO

	// PurgeTrash permanently removes server todos deleted before now minus retention
	PurgeTrash(ctx context.Context, retention time.Duration) (int64, error)
}
