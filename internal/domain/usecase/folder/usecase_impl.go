package folder

import (
	"context"
	"strings"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type folderUseCase struct {
	gateway db.FolderGateway
	now     func() time.Time
}

func NewFolderUseCase(gateway db.FolderGateway, now func() time.Time) UseCase {
	if now == nil {
		now = time.Now
	}
	return &folderUseCase{
		gateway: gateway,
		now:     now,
	}
}

func (uc *folderUseCase) List(ctx context.Context, identity *model.Identity) ([]entity.Folder, error) {
	if err := requireUser(identity); err != nil {
		return nil, err
	}

	folders, err := uc.gateway.FindAll(ctx, identity.OwnerID)
	if err != nil {
		log.Error(msg.GetMessage("folder.error.failed", identity.OwnerID), zap.Error(err))
		return []entity.Folder{}, nil
	}
	return folders, nil
}

func (uc *folderUseCase) Create(ctx context.Context, identity *model.Identity, dto model.CreateFolderDTO) (*entity.Folder, error) {
	if err := requireUser(identity); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, model.NewValidationError(msg.GetMessage("folder.error.empty-name"))
	}
	color := strings.TrimSpace(dto.Color)
	if color == "" {
		color = entity.DefaultFolderColor
	}

	folder := entity.Folder{
		ID:        uuid.NewString(),
		UserID:    identity.OwnerID,
		Name:      name,
		Color:     color,
		CreatedAt: uc.now(),
	}
	if err := uc.gateway.Create(ctx, folder); err != nil {
		return nil, storeFailure(identity, err)
	}
	return &folder, nil
}

func (uc *folderUseCase) Update(ctx context.Context, identity *model.Identity, id string, dto model.UpdateFolderDTO) (*entity.Folder, error) {
	if err := requireUser(identity); err != nil {
		return nil, err
	}
	if dto.IsEmpty() {
		return nil, nil
	}
	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, model.NewValidationError(msg.GetMessage("folder.error.empty-name"))
		}
		dto.Name = &name
	}

	folder, err := uc.gateway.Update(ctx, identity.OwnerID, id, dto)
	if err != nil {
		return nil, storeFailure(identity, err)
	}
	if folder == nil {
		return nil, model.NewNotFoundError(msg.GetMessage("folder.error.not-found", id))
	}
	return folder, nil
}

func (uc *folderUseCase) Delete(ctx context.Context, identity *model.Identity, id string) error {
	if err := requireUser(identity); err != nil {
		return err
	}

	deleted, err := uc.gateway.Delete(ctx, identity.OwnerID, id)
	if err != nil {
		return storeFailure(identity, err)
	}
	if !deleted {
		return model.NewNotFoundError(msg.GetMessage("folder.error.not-found", id))
	}
	return nil
}

func requireUser(identity *model.Identity) error {
	if identity == nil || identity.OwnerID == "" {
		return model.NewUnauthorizedError(msg.GetMessage("app.error.unauthorized"))
	}
	if identity.Guest {
		return model.NewUnauthorizedError(msg.GetMessage("folder.error.guest"))
	}
	return nil
}

func storeFailure(identity *model.Identity, err error) error {
	log.Error(msg.GetMessage("folder.error.failed", identity.OwnerID), zap.Error(err))
	return model.NewOperationFailedError(msg.GetMessage("app.error.operation-failed"), err)
}
