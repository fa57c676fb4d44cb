package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"
	"todo-api/pkg/redis"
)

const guestTodosCache = "guest-todos"

// MirrorTodoGateway keeps a guest's whole todo collection as one JSON document.
// Every mutation reads the document, changes it in memory and writes it back in full.
type MirrorTodoGateway struct {
	store KeyValueStore
	mu    sync.Mutex
}

var _ db.TodoGateway = (*MirrorTodoGateway)(nil)

func NewMirrorTodoGateway(store KeyValueStore) *MirrorTodoGateway {
	return &MirrorTodoGateway{store: store}
}

func (gateway *MirrorTodoGateway) FindActive(ctx context.Context, ownerID string, folderID *string) ([]entity.Todo, error) {
	todos, err := gateway.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	results := make([]entity.Todo, 0, len(todos))
	for _, todo := range todos {
		if todo.IsDeleted() {
			continue
		}
		if folderID != nil && (todo.FolderID == nil || *todo.FolderID != *folderID) {
			continue
		}
		results = append(results, todo)
	}

	entity.SortTodos(results)
	return results, nil
}

func (gateway *MirrorTodoGateway) FindDeleted(ctx context.Context, ownerID string) ([]entity.Todo, error) {
	todos, err := gateway.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	results := make([]entity.Todo, 0)
	for _, todo := range todos {
		if todo.IsDeleted() {
			results = append(results, todo)
		}
	}

	entity.SortDeleted(results)
	return results, nil
}

func (gateway *MirrorTodoGateway) FindByID(ctx context.Context, ownerID string, id string) (*entity.Todo, error) {
	todos, err := gateway.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if i := indexOfTodo(todos, id); i >= 0 {
		return &todos[i], nil
	}
	return nil, nil
}

func (gateway *MirrorTodoGateway) FindCompletedCreatedBetween(ctx context.Context, ownerID string, from time.Time, to time.Time) ([]time.Time, error) {
	todos, err := gateway.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	results := make([]time.Time, 0)
	for _, todo := range todos {
		if todo.IsCompleted && !todo.CreatedAt.Before(from) && !todo.CreatedAt.After(to) {
			results = append(results, todo.CreatedAt)
		}
	}
	return results, nil
}

func (gateway *MirrorTodoGateway) Create(ctx context.Context, todo entity.Todo) error {
	return gateway.mutate(ctx, todo.UserID, func(todos []entity.Todo) ([]entity.Todo, bool) {
		return append(todos, todo), true
	})
}

func (gateway *MirrorTodoGateway) Update(ctx context.Context, ownerID string, id string, patch model.TodoPatch) (*entity.Todo, error) {
	if patch.IsEmpty() {
		return nil, nil
	}

	var updated *entity.Todo
	err := gateway.mutate(ctx, ownerID, func(todos []entity.Todo) ([]entity.Todo, bool) {
		i := indexOfTodo(todos, id)
		if i < 0 {
			return todos, false
		}
		patch.ApplyTo(&todos[i])
		result := todos[i]
		updated = &result
		return todos, true
	})
	return updated, err
}

func (gateway *MirrorTodoGateway) SetCompleted(ctx context.Context, ownerID string, id string, isCompleted bool) (bool, error) {
	var changed bool
	err := gateway.mutate(ctx, ownerID, func(todos []entity.Todo) ([]entity.Todo, bool) {
		i := indexOfTodo(todos, id)
		if i < 0 || todos[i].IsCompleted == isCompleted {
			return todos, false
		}
		todos[i].IsCompleted = isCompleted
		changed = true
		return todos, true
	})
	return changed, err
}

func (gateway *MirrorTodoGateway) SoftDelete(ctx context.Context, ownerID string, id string, deletedAt time.Time) (bool, error) {
	return gateway.mutateTodo(ctx, ownerID, id, func(todo *entity.Todo) {
		at := deletedAt
		todo.DeletedAt = &at
	})
}

func (gateway *MirrorTodoGateway) Restore(ctx context.Context, ownerID string, id string) (bool, error) {
	var restored bool
	err := gateway.mutate(ctx, ownerID, func(todos []entity.Todo) ([]entity.Todo, bool) {
		i := indexOfTodo(todos, id)
		if i < 0 {
			return todos, false
		}
		todos[i].DeletedAt = nil
		entity.SortTodos(todos)
		restored = true
		return todos, true
	})
	return restored, err
}

func (gateway *MirrorTodoGateway) DeletePermanently(ctx context.Context, ownerID string, id string) (bool, error) {
	var deleted bool
	err := gateway.mutate(ctx, ownerID, func(todos []entity.Todo) ([]entity.Todo, bool) {
		i := indexOfTodo(todos, id)
		if i < 0 {
			return todos, false
		}
		deleted = true
		return append(todos[:i], todos[i+1:]...), true
	})
	return deleted, err
}

func (gateway *MirrorTodoGateway) Reorder(ctx context.Context, ownerID string, items []model.ReorderItem) error {
	orders := make(map[string]float64, len(items))
	for _, item := range items {
		orders[item.ID] = item.Order
	}

	return gateway.mutate(ctx, ownerID, func(todos []entity.Todo) ([]entity.Todo, bool) {
		for i := range todos {
			if order, ok := orders[todos[i].ID]; ok {
				todos[i].Order = order
			}
		}
		entity.SortTodos(todos)
		return todos, true
	})
}

func (gateway *MirrorTodoGateway) CreateSubTodo(ctx context.Context, ownerID string, subTodo entity.SubTodo) (bool, error) {
	return gateway.mutateTodo(ctx, ownerID, subTodo.TodoID, func(todo *entity.Todo) {
		todo.SubTodos = append(todo.SubTodos, subTodo)
		entity.SortSubTodos(todo.SubTodos)
	})
}

func (gateway *MirrorTodoGateway) UpdateSubTodo(ctx context.Context, ownerID string, id string, patch model.SubTodoPatch) (*entity.SubTodo, error) {
	if patch.IsEmpty() {
		return nil, nil
	}

	var updated *entity.SubTodo
	err := gateway.mutateSubTodo(ctx, ownerID, id, func(todo *entity.Todo, i int) {
		patch.ApplyTo(&todo.SubTodos[i])
		result := todo.SubTodos[i]
		updated = &result
		entity.SortSubTodos(todo.SubTodos)
	})
	return updated, err
}

func (gateway *MirrorTodoGateway) DeleteSubTodo(ctx context.Context, ownerID string, id string) (bool, error) {
	var deleted bool
	err := gateway.mutateSubTodo(ctx, ownerID, id, func(todo *entity.Todo, i int) {
		todo.SubTodos = append(todo.SubTodos[:i], todo.SubTodos[i+1:]...)
		deleted = true
	})
	return deleted, err
}

func (gateway *MirrorTodoGateway) ReorderSubTodos(ctx context.Context, ownerID string, todoID string, items []model.ReorderItem) error {
	orders := make(map[string]float64, len(items))
	for _, item := range items {
		orders[item.ID] = item.Order
	}

	_, err := gateway.mutateTodo(ctx, ownerID, todoID, func(todo *entity.Todo) {
		for i := range todo.SubTodos {
			if order, ok := orders[todo.SubTodos[i].ID]; ok {
				todo.SubTodos[i].Order = order
			}
		}
		entity.SortSubTodos(todo.SubTodos)
	})
	return err
}

// mutate loads the owner's collection, applies fn and writes the result back when fn reports a change
func (gateway *MirrorTodoGateway) mutate(ctx context.Context, ownerID string, fn func([]entity.Todo) ([]entity.Todo, bool)) error {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()

	todos, err := gateway.load(ctx, ownerID)
	if err != nil {
		return err
	}

	todos, changed := fn(todos)
	if !changed {
		return nil
	}
	return gateway.save(ctx, ownerID, todos)
}

func (gateway *MirrorTodoGateway) mutateTodo(ctx context.Context, ownerID string, id string, fn func(*entity.Todo)) (bool, error) {
	var found bool
	err := gateway.mutate(ctx, ownerID, func(todos []entity.Todo) ([]entity.Todo, bool) {
		i := indexOfTodo(todos, id)
		if i < 0 {
			return todos, false
		}
		fn(&todos[i])
		found = true
		return todos, true
	})
	return found, err
}

func (gateway *MirrorTodoGateway) mutateSubTodo(ctx context.Context, ownerID string, id string, fn func(*entity.Todo, int)) error {
	return gateway.mutate(ctx, ownerID, func(todos []entity.Todo) ([]entity.Todo, bool) {
		for t := range todos {
			for s := range todos[t].SubTodos {
				if todos[t].SubTodos[s].ID == id {
					fn(&todos[t], s)
					return todos, true
				}
			}
		}
		return todos, false
	})
}

func (gateway *MirrorTodoGateway) load(ctx context.Context, ownerID string) ([]entity.Todo, error) {
	data, found, err := gateway.store.Get(ctx, mirrorKey(ownerID))
	if err != nil {
		return nil, err
	}
	if !found || len(data) == 0 {
		return []entity.Todo{}, nil
	}

	var todos []entity.Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, fmt.Errorf("failed to decode guest todos: %w", err)
	}

	for i := range todos {
		if todos[i].SubTodos == nil {
			todos[i].SubTodos = []entity.SubTodo{}
		}
		if todos[i].Tags == nil {
			todos[i].Tags = []string{}
		}
	}
	return todos, nil
}

func (gateway *MirrorTodoGateway) save(ctx context.Context, ownerID string, todos []entity.Todo) error {
	data, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("failed to encode guest todos: %w", err)
	}
	return gateway.store.Set(ctx, mirrorKey(ownerID), data)
}

func mirrorKey(ownerID string) string {
	return redis.BuildCacheKey(guestTodosCache, ownerID)
}

func indexOfTodo(todos []entity.Todo, id string) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}
