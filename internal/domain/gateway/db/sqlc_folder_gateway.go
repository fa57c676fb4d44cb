package db

import (
	"context"
	"strings"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
	"todo-api/pkg/sqlstore"
)

type SQLCFolderGateway struct {
	Store *sqlstore.Store
}

var _ FolderGateway = (*SQLCFolderGateway)(nil)

func NewSQLCFolderGateway(store *sqlstore.Store) *SQLCFolderGateway {
	return &SQLCFolderGateway{Store: store}
}

func (gateway *SQLCFolderGateway) FindAll(ctx context.Context, ownerID string) ([]entity.Folder, error) {
	return gateway.query(ctx, `
		SELECT id, user_id, name, color, created_at
		FROM folders
		WHERE user_id = ?
		ORDER BY created_at ASC`, ownerID)
}

func (gateway *SQLCFolderGateway) FindByID(ctx context.Context, ownerID string, id string) (*entity.Folder, error) {
	folders, err := gateway.query(ctx, `
		SELECT id, user_id, name, color, created_at
		FROM folders
		WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil || len(folders) == 0 {
		return nil, err
	}
	return &folders[0], nil
}

func (gateway *SQLCFolderGateway) Create(ctx context.Context, folder entity.Folder) error {
	_, err := gateway.Store.ExecContext(ctx, `
		INSERT INTO folders (id, user_id, name, color, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		folder.ID, folder.UserID, folder.Name, folder.Color, folder.CreatedAt)
	return err
}

func (gateway *SQLCFolderGateway) Update(ctx context.Context, ownerID string, id string, dto model.UpdateFolderDTO) (*entity.Folder, error) {
	var sets []string
	var args []any
	if dto.Name != nil {
		sets, args = append(sets, "name = ?"), append(args, *dto.Name)
	}
	if dto.Color != nil {
		sets, args = append(sets, "color = ?"), append(args, *dto.Color)
	}
	if len(sets) == 0 {
		return nil, nil
	}

	args = append(args, id, ownerID)
	result, err := gateway.Store.ExecContext(ctx,
		`UPDATE folders SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`, args...)
	if err != nil {
		return nil, err
	}

	affected, err := sqlstore.RowsAffected(result)
	if err != nil || affected == 0 {
		return nil, err
	}
	return gateway.FindByID(ctx, ownerID, id)
}

func (gateway *SQLCFolderGateway) Delete(ctx context.Context, ownerID string, id string) (bool, error) {
	var deleted bool
	err := gateway.Store.WithTx(ctx, func(tx *sqlstore.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE todos SET folder_id = NULL WHERE user_id = ? AND folder_id = ?`,
			ownerID, id); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE id = ? AND user_id = ?`, id, ownerID)
		if err != nil {
			return err
		}

		affected, err := sqlstore.RowsAffected(result)
		deleted = affected > 0
		return err
	})
	return deleted, err
}

func (gateway *SQLCFolderGateway) query(ctx context.Context, query string, args ...any) ([]entity.Folder, error) {
	rows, err := gateway.Store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := make([]entity.Folder, 0)
	for rows.Next() {
		var f entity.Folder
		var createdAt sqlstore.Timestamp
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.Color, &createdAt); err != nil {
			return nil, err
		}
		f.CreatedAt = createdAt.Time
		results = append(results, f)
	}
	return results, rows.Err()
}
