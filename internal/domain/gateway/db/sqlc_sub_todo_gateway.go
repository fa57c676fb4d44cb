package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
	"todo-api/pkg/sqlstore"
)

// ownedSubTodo restricts a sub-todo statement to rows whose parent belongs to the caller
const ownedSubTodo = `id = ? AND todo_id IN (SELECT id FROM todos WHERE user_id = ?)`

func (gateway *SQLCTodoGateway) CreateSubTodo(ctx context.Context, ownerID string, subTodo entity.SubTodo) (bool, error) {
	err := gateway.Store.WithTx(ctx, func(tx *sqlstore.Tx) error {
		var owned int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE id = ? AND user_id = ?`,
			subTodo.TodoID, ownerID).Scan(&owned); err != nil {
			return err
		}
		if owned == 0 {
			return errNoOwnedParent
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO sub_todos (id, todo_id, content, is_completed, created_at, sort_order, image_url)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			subTodo.ID, subTodo.TodoID, subTodo.Content, subTodo.IsCompleted, subTodo.CreatedAt, subTodo.Order, subTodo.ImageURL)
		return err
	})

	if errors.Is(err, errNoOwnedParent) {
		return false, nil
	}
	return err == nil, err
}

func (gateway *SQLCTodoGateway) UpdateSubTodo(ctx context.Context, ownerID string, id string, patch model.SubTodoPatch) (*entity.SubTodo, error) {
	var sets []string
	var args []any

	if patch.Content != nil {
		sets, args = append(sets, "content = ?"), append(args, *patch.Content)
	}
	if patch.IsCompleted != nil {
		sets, args = append(sets, "is_completed = ?"), append(args, *patch.IsCompleted)
	}
	if patch.Order != nil {
		sets, args = append(sets, "sort_order = ?"), append(args, *patch.Order)
	}
	if patch.ImageURL.Set {
		sets, args = append(sets, "image_url = ?"), append(args, patch.ImageURL.Value)
	}
	if len(sets) == 0 {
		return nil, nil
	}

	args = append(args, id, ownerID)
	updated, err := gateway.execAffecting(ctx, `UPDATE sub_todos SET `+strings.Join(sets, ", ")+` WHERE `+ownedSubTodo, args...)
	if err != nil || !updated {
		return nil, err
	}

	subTodos, err := gateway.querySubTodos(ctx, `
		SELECT id, todo_id, content, is_completed, created_at, sort_order, image_url
		FROM sub_todos
		WHERE `+ownedSubTodo, id, ownerID)
	if err != nil || len(subTodos) == 0 {
		return nil, err
	}
	return &subTodos[0], nil
}

func (gateway *SQLCTodoGateway) DeleteSubTodo(ctx context.Context, ownerID string, id string) (bool, error) {
	return gateway.execAffecting(ctx, `DELETE FROM sub_todos WHERE `+ownedSubTodo, id, ownerID)
}

func (gateway *SQLCTodoGateway) ReorderSubTodos(ctx context.Context, ownerID string, todoID string, items []model.ReorderItem) error {
	return gateway.Store.WithTx(ctx, func(tx *sqlstore.Tx) error {
		for _, item := range items {
			if _, err := tx.ExecContext(ctx, `UPDATE sub_todos SET sort_order = ? WHERE todo_id = ? AND `+ownedSubTodo,
				item.Order, todoID, item.ID, ownerID); err != nil {
				return fmt.Errorf("failed to reorder sub-todo %s: %w", item.ID, err)
			}
		}
		return nil
	})
}
