package folder

import (
	"context"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

// UseCase manages folders of signed-in users. Guests are rejected.
type UseCase interface {
	List(ctx context.Context, identity *model.Identity) ([]entity.Folder, error)
	Create(ctx context.Context, identity *model.Identity, dto model.CreateFolderDTO) (*entity.Folder, error)
	Update(ctx context.Context, identity *model.Identity, id string, dto model.UpdateFolderDTO) (*entity.Folder, error)
	// Delete moves the folder's todos out of it before removing the folder
	Delete(ctx context.Context, identity *model.Identity, id string) error
}
