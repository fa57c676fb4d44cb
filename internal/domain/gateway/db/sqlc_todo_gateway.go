package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
	"todo-api/pkg/sqlstore"
)

const todoColumns = `
	t.id, t.user_id, t.content, t.is_completed, t.created_at, t.deleted_at, t.folder_id,
	f.name, f.color, t.priority, t.due_date, t.sort_order, t.is_recurring,
	t.recurrence_pattern, t.recurrence_interval, t.tags`

const todoFrom = `
	FROM todos t
	LEFT JOIN folders f ON f.id = t.folder_id AND f.user_id = t.user_id`

type SQLCTodoGateway struct {
	Store *sqlstore.Store
}

var (
	_ TodoGateway    = (*SQLCTodoGateway)(nil)
	_ TrashGateway   = (*SQLCTodoGateway)(nil)
	_ DueTodoGateway = (*SQLCTodoGateway)(nil)
)

func NewSQLCTodoGateway(store *sqlstore.Store) *SQLCTodoGateway {
	return &SQLCTodoGateway{Store: store}
}

func (gateway *SQLCTodoGateway) FindActive(ctx context.Context, ownerID string, folderID *string) ([]entity.Todo, error) {
	query := `SELECT` + todoColumns + todoFrom + ` WHERE t.user_id = ? AND t.deleted_at IS NULL`
	args := []any{ownerID}
	if folderID != nil {
		query += ` AND t.folder_id = ?`
		args = append(args, *folderID)
	}
	query += ` ORDER BY t.sort_order ASC, t.created_at DESC`

	todos, err := gateway.queryTodos(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if err := gateway.attachSubTodos(ctx, ownerID, todos, false); err != nil {
		return nil, err
	}
	return todos, nil
}

func (gateway *SQLCTodoGateway) FindDeleted(ctx context.Context, ownerID string) ([]entity.Todo, error) {
	todos, err := gateway.queryTodos(ctx, `SELECT`+todoColumns+todoFrom+`
		WHERE t.user_id = ? AND t.deleted_at IS NOT NULL
		ORDER BY t.deleted_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}

	if err := gateway.attachSubTodos(ctx, ownerID, todos, true); err != nil {
		return nil, err
	}
	return todos, nil
}

func (gateway *SQLCTodoGateway) FindByID(ctx context.Context, ownerID string, id string) (*entity.Todo, error) {
	todos, err := gateway.queryTodos(ctx, `SELECT`+todoColumns+todoFrom+` WHERE t.id = ? AND t.user_id = ?`, id, ownerID)
	if err != nil {
		return nil, err
	}
	if len(todos) == 0 {
		return nil, nil
	}

	subTodos, err := gateway.querySubTodos(ctx, `
		SELECT s.id, s.todo_id, s.content, s.is_completed, s.created_at, s.sort_order, s.image_url
		FROM sub_todos s
		WHERE s.todo_id = ?
		ORDER BY s.sort_order ASC, s.created_at ASC`, id)
	if err != nil {
		return nil, err
	}

	todo := todos[0]
	todo.SubTodos = subTodos
	return &todo, nil
}

func (gateway *SQLCTodoGateway) FindCompletedCreatedBetween(ctx context.Context, ownerID string, from time.Time, to time.Time) ([]time.Time, error) {
	rows, err := gateway.Store.QueryContext(ctx, `
		SELECT created_at
		FROM todos
		WHERE user_id = ? AND is_completed = ? AND created_at >= ? AND created_at <= ?`,
		ownerID, true, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := make([]time.Time, 0)
	for rows.Next() {
		var createdAt sqlstore.Timestamp
		if err := rows.Scan(&createdAt); err != nil {
			return nil, err
		}
		results = append(results, createdAt.Time)
	}
	return results, rows.Err()
}

func (gateway *SQLCTodoGateway) CountOpenDueBetween(ctx context.Context, ownerID string, from time.Time, to time.Time) (int, error) {
	var count int
	err := gateway.Store.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM todos
		WHERE user_id = ? AND is_completed = ? AND deleted_at IS NULL AND due_date >= ? AND due_date <= ?`,
		ownerID, false, from, to).Scan(&count)
	return count, err
}

func (gateway *SQLCTodoGateway) Create(ctx context.Context, todo entity.Todo) error {
	tags, err := encodeTags(todo.Tags)
	if err != nil {
		return err
	}

	_, err = gateway.Store.ExecContext(ctx, `
		INSERT INTO todos (id, user_id, content, is_completed, created_at, deleted_at, folder_id, priority,
			due_date, sort_order, is_recurring, recurrence_pattern, recurrence_interval, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.UserID, todo.Content, todo.IsCompleted, todo.CreatedAt, todo.DeletedAt, todo.FolderID,
		string(todo.Priority), todo.DueDate, todo.Order, todo.IsRecurring, string(todo.RecurrencePattern),
		todo.RecurrenceInterval, tags)
	return err
}

func (gateway *SQLCTodoGateway) Update(ctx context.Context, ownerID string, id string, patch model.TodoPatch) (*entity.Todo, error) {
	sets, args, err := todoPatchAssignments(patch)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, nil
	}

	args = append(args, id, ownerID)
	result, err := gateway.Store.ExecContext(ctx,
		`UPDATE todos SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`, args...)
	if err != nil {
		return nil, err
	}

	affected, err := sqlstore.RowsAffected(result)
	if err != nil || affected == 0 {
		return nil, err
	}

	return gateway.FindByID(ctx, ownerID, id)
}

func (gateway *SQLCTodoGateway) SetCompleted(ctx context.Context, ownerID string, id string, isCompleted bool) (bool, error) {
	return gateway.execAffecting(ctx, `UPDATE todos SET is_completed = ? WHERE id = ? AND user_id = ? AND is_completed = ?`,
		isCompleted, id, ownerID, !isCompleted)
}

func (gateway *SQLCTodoGateway) SoftDelete(ctx context.Context, ownerID string, id string, deletedAt time.Time) (bool, error) {
	return gateway.execAffecting(ctx, `UPDATE todos SET deleted_at = ? WHERE id = ? AND user_id = ?`, deletedAt, id, ownerID)
}

func (gateway *SQLCTodoGateway) Restore(ctx context.Context, ownerID string, id string) (bool, error) {
	return gateway.execAffecting(ctx, `UPDATE todos SET deleted_at = NULL WHERE id = ? AND user_id = ?`, id, ownerID)
}

func (gateway *SQLCTodoGateway) DeletePermanently(ctx context.Context, ownerID string, id string) (bool, error) {
	var deleted bool
	err := gateway.Store.WithTx(ctx, func(tx *sqlstore.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM sub_todos
			WHERE todo_id IN (SELECT id FROM todos WHERE id = ? AND user_id = ?)`, id, ownerID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, id, ownerID)
		if err != nil {
			return err
		}

		affected, err := sqlstore.RowsAffected(result)
		deleted = affected > 0
		return err
	})
	return deleted, err
}

func (gateway *SQLCTodoGateway) Reorder(ctx context.Context, ownerID string, items []model.ReorderItem) error {
	return gateway.Store.WithTx(ctx, func(tx *sqlstore.Tx) error {
		for _, item := range items {
			if _, err := tx.ExecContext(ctx, `UPDATE todos SET sort_order = ? WHERE id = ? AND user_id = ?`,
				item.Order, item.ID, ownerID); err != nil {
				return fmt.Errorf("failed to reorder todo %s: %w", item.ID, err)
			}
		}
		return nil
	})
}

func (gateway *SQLCTodoGateway) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	err := gateway.Store.WithTx(ctx, func(tx *sqlstore.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM sub_todos
			WHERE todo_id IN (SELECT id FROM todos WHERE deleted_at IS NOT NULL AND deleted_at < ?)`, cutoff); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE deleted_at IS NOT NULL AND deleted_at < ?`, cutoff)
		if err != nil {
			return err
		}

		purged, err = sqlstore.RowsAffected(result)
		return err
	})
	return purged, err
}

func (gateway *SQLCTodoGateway) execAffecting(ctx context.Context, query string, args ...any) (bool, error) {
	result, err := gateway.Store.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	affected, err := sqlstore.RowsAffected(result)
	return affected > 0, err
}

// queryTodos reads every row before returning so callers may issue follow-up queries
func (gateway *SQLCTodoGateway) queryTodos(ctx context.Context, query string, args ...any) ([]entity.Todo, error) {
	rows, err := gateway.Store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := make([]entity.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, todo)
	}
	return results, rows.Err()
}

// attachSubTodos loads the sub-todos of the owner's active or deleted todos in one query
func (gateway *SQLCTodoGateway) attachSubTodos(ctx context.Context, ownerID string, todos []entity.Todo, deleted bool) error {
	if len(todos) == 0 {
		return nil
	}

	deletedFilter := `t.deleted_at IS NULL`
	if deleted {
		deletedFilter = `t.deleted_at IS NOT NULL`
	}

	subTodos, err := gateway.querySubTodos(ctx, `
		SELECT s.id, s.todo_id, s.content, s.is_completed, s.created_at, s.sort_order, s.image_url
		FROM sub_todos s
		JOIN todos t ON t.id = s.todo_id
		WHERE t.user_id = ? AND `+deletedFilter+`
		ORDER BY s.sort_order ASC, s.created_at ASC`, ownerID)
	if err != nil {
		return err
	}

	byTodo := make(map[string][]entity.SubTodo, len(todos))
	for _, subTodo := range subTodos {
		byTodo[subTodo.TodoID] = append(byTodo[subTodo.TodoID], subTodo)
	}
	for i := range todos {
		if children, ok := byTodo[todos[i].ID]; ok {
			todos[i].SubTodos = children
		}
	}
	return nil
}

func (gateway *SQLCTodoGateway) querySubTodos(ctx context.Context, query string, args ...any) ([]entity.SubTodo, error) {
	rows, err := gateway.Store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := make([]entity.SubTodo, 0)
	for rows.Next() {
		subTodo, err := scanSubTodo(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, subTodo)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (entity.Todo, error) {
	var (
		t           entity.Todo
		createdAt   sqlstore.Timestamp
		deletedAt   sqlstore.Timestamp
		dueDate     sqlstore.Timestamp
		folderID    sql.NullString
		folderName  sql.NullString
		folderColor sql.NullString
		priority    string
		pattern     string
		tags        sql.NullString
	)

	err := row.Scan(&t.ID, &t.UserID, &t.Content, &t.IsCompleted, &createdAt, &deletedAt, &folderID,
		&folderName, &folderColor, &priority, &dueDate, &t.Order, &t.IsRecurring,
		&pattern, &t.RecurrenceInterval, &tags)
	if err != nil {
		return t, err
	}

	t.CreatedAt = createdAt.Time
	t.DeletedAt = deletedAt.Ptr()
	t.DueDate = dueDate.Ptr()
	t.FolderID = nullableString(folderID)
	t.FolderName = nullableString(folderName)
	t.FolderColor = nullableString(folderColor)
	t.Priority = entity.Priority(priority)
	t.RecurrencePattern = entity.RecurrencePattern(pattern)
	t.SubTodos = []entity.SubTodo{}

	t.Tags, err = decodeTags(tags.String)
	return t, err
}

func scanSubTodo(row rowScanner) (entity.SubTodo, error) {
	var (
		s         entity.SubTodo
		createdAt sqlstore.Timestamp
		imageURL  sql.NullString
	)

	if err := row.Scan(&s.ID, &s.TodoID, &s.Content, &s.IsCompleted, &createdAt, &s.Order, &imageURL); err != nil {
		return s, err
	}

	s.CreatedAt = createdAt.Time
	s.ImageURL = nullableString(imageURL)
	return s, nil
}

// todoPatchAssignments turns the set fields of patch into SET clauses and their arguments
func todoPatchAssignments(patch model.TodoPatch) ([]string, []any, error) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.IsCompleted != nil {
		add("is_completed", *patch.IsCompleted)
	}
	if patch.FolderID.Set {
		add("folder_id", patch.FolderID.Value)
	}
	if patch.Priority != nil {
		add("priority", string(*patch.Priority))
	}
	if patch.DueDate.Set {
		add("due_date", patch.DueDate.Value)
	}
	if patch.Order != nil {
		add("sort_order", *patch.Order)
	}
	if patch.IsRecurring != nil {
		add("is_recurring", *patch.IsRecurring)
	}
	if patch.RecurrencePattern != nil {
		add("recurrence_pattern", string(*patch.RecurrencePattern))
	}
	if patch.RecurrenceInterval != nil {
		add("recurrence_interval", *patch.RecurrenceInterval)
	}
	if patch.Tags != nil {
		tags, err := encodeTags(*patch.Tags)
		if err != nil {
			return nil, nil, err
		}
		add("tags", tags)
	}

	return sets, args, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}

// errNoOwnedParent is returned inside transactions to abort when the parent todo is not the caller's
var errNoOwnedParent = errors.New("parent todo not owned by caller")
