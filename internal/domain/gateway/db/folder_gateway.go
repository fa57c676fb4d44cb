package db

import (
	"context"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

type FolderGateway interface {
	FindAll(ctx context.Context, ownerID string) ([]entity.Folder, error)
	FindByID(ctx context.Context, ownerID string, id string) (*entity.Folder, error)
	Create(ctx context.Context, folder entity.Folder) error
	Update(ctx context.Context, ownerID string, id string, dto model.UpdateFolderDTO) (*entity.Folder, error)
	// Delete detaches the folder's todos and removes the folder
	Delete(ctx context.Context, ownerID string, id string) (bool, error)
}
