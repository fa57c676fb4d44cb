package todo

import (
	"context"
	"strings"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/queue"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/util/dateutils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gateways selects the store behind each identity kind.
// Guest may be nil when guest mode is disabled; Trash may be nil when purging is not scheduled.
type Gateways struct {
	Server db.TodoGateway
	Guest  db.TodoGateway
	Trash  db.TrashGateway
}

type todoUseCase struct {
	gateways  Gateways
	publisher queue.Publisher
	now       func() time.Time
	location  *time.Location
}

func NewTodoUseCase(gateways Gateways, publisher queue.Publisher, now func() time.Time, location *time.Location) UseCase {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &todoUseCase{
		gateways:  gateways,
		publisher: publisher,
		now:       now,
		location:  location,
	}
}

func (uc *todoUseCase) List(ctx context.Context, identity *model.Identity, folderID *string) ([]entity.Todo, error) {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return nil, err
	}

	todos, err := gateway.FindActive(ctx, identity.OwnerID, folderID)
	if err != nil {
		log.Error(msg.GetMessage("todo.error.list-failed", identity.OwnerID), zap.Error(err))
		return []entity.Todo{}, nil
	}
	entity.SortTodos(todos)
	return todos, nil
}

func (uc *todoUseCase) ListDeleted(ctx context.Context, identity *model.Identity) ([]entity.Todo, error) {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return nil, err
	}

	todos, err := gateway.FindDeleted(ctx, identity.OwnerID)
	if err != nil {
		log.Error(msg.GetMessage("todo.error.list-failed", identity.OwnerID), zap.Error(err))
		return []entity.Todo{}, nil
	}
	entity.SortDeleted(todos)
	return todos, nil
}

func (uc *todoUseCase) Create(ctx context.Context, identity *model.Identity, dto model.CreateTodoDTO) (*entity.Todo, error) {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	content := strings.TrimSpace(dto.Content)
	dueDate := dto.DueDate
	if dto.ParseDate && dueDate == nil {
		parsed := uc.ParseContent(content)
		if parsed.DueDate != nil && parsed.Content != "" {
			content, dueDate = parsed.Content, parsed.DueDate
		}
	}
	if content == "" {
		return nil, model.NewValidationError(msg.GetMessage("todo.error.empty-content"))
	}

	priority := dto.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	pattern := dto.RecurrencePattern
	if pattern == "" {
		pattern = entity.RecurrenceNone
	}
	interval := dto.RecurrenceInterval
	if interval == 0 {
		interval = 1
	}
	if err := validateFields(priority, pattern, interval); err != nil {
		return nil, err
	}

	todo := entity.Todo{
		ID:                 uuid.NewString(),
		UserID:             identity.OwnerID,
		Content:            content,
		CreatedAt:          now,
		FolderID:           dto.FolderID,
		Priority:           priority,
		DueDate:            dueDate,
		Order:              orderStamp(now),
		IsRecurring:        dto.IsRecurring,
		RecurrencePattern:  pattern,
		RecurrenceInterval: interval,
		Tags:               uniqueTags(dto.Tags),
		SubTodos:           []entity.SubTodo{},
	}

	if err := gateway.Create(ctx, todo); err != nil {
		return nil, uc.storeFailure(msg.GetMessage("todo.error.create-failed"), err)
	}

	uc.publish(ctx, identity, model.TodoCreated, todo.ID)
	return &todo, nil
}

func (uc *todoUseCase) Update(ctx context.Context, identity *model.Identity, id string, patch model.TodoPatch) (*entity.Todo, error) {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, nil
	}
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	updated, err := gateway.Update(ctx, identity.OwnerID, id, patch)
	if err != nil {
		return nil, uc.storeFailure(msg.GetMessage("todo.error.update-failed", id), err)
	}
	if updated == nil {
		return nil, model.NewNotFoundError(msg.GetMessage("todo.error.not-found", id))
	}

	uc.publish(ctx, identity, model.TodoUpdated, id)
	return updated, nil
}

func (uc *todoUseCase) Toggle(ctx context.Context, identity *model.Identity, id string, isCompleted bool) (*entity.Todo, error) {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return nil, err
	}

	previous, err := gateway.FindByID(ctx, identity.OwnerID, id)
	if err != nil {
		return nil, uc.storeFailure(msg.GetMessage("todo.error.update-failed", id), err)
	}
	if previous == nil {
		return nil, model.NewNotFoundError(msg.GetMessage("todo.error.not-found", id))
	}

	// only the caller that actually flips the state expands a recurrence
	changed, err := gateway.SetCompleted(ctx, identity.OwnerID, id, isCompleted)
	if err != nil {
		return nil, uc.storeFailure(msg.GetMessage("todo.error.update-failed", id), err)
	}

	updated, err := gateway.FindByID(ctx, identity.OwnerID, id)
	if err != nil {
		return nil, uc.storeFailure(msg.GetMessage("todo.error.update-failed", id), err)
	}
	if updated == nil {
		return nil, model.NewNotFoundError(msg.GetMessage("todo.error.not-found", id))
	}

	if !isCompleted {
		uc.publish(ctx, identity, model.TodoReopened, id)
		return updated, nil
	}

	uc.publish(ctx, identity, model.TodoCompleted, id)
	if changed {
		uc.expandRecurrence(ctx, gateway, identity, *previous)
	}
	return updated, nil
}

// expandRecurrence creates the next occurrence of a recurring todo. Failures are only logged.
func (uc *todoUseCase) expandRecurrence(ctx context.Context, gateway db.TodoGateway, identity *model.Identity, completed entity.Todo) {
	due, ok := completed.NextDueDate()
	if !ok {
		return
	}

	now := uc.now()
	next := completed.NextOccurrence(due)
	next.ID = uuid.NewString()
	next.UserID = identity.OwnerID
	next.CreatedAt = now
	next.Order = orderStamp(now)

	if err := gateway.Create(ctx, next); err != nil {
		log.Error(msg.GetMessage("todo.error.recurrence-failed", completed.ID), zap.Error(err))
		return
	}

	log.Info(msg.GetMessage("todo.recurrence.created", next.ID, completed.ID, due.Format(time.RFC3339)))
	uc.publish(ctx, identity, model.TodoCreated, next.ID)
}

func (uc *todoUseCase) Delete(ctx context.Context, identity *model.Identity, id string) error {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return err
	}

	found, err := gateway.SoftDelete(ctx, identity.OwnerID, id, uc.now())
	if err != nil {
		return uc.storeFailure(msg.GetMessage("todo.error.delete-failed", id), err)
	}
	if !found {
		return model.NewNotFoundError(msg.GetMessage("todo.error.not-found", id))
	}

	uc.publish(ctx, identity, model.TodoDeleted, id)
	return nil
}

func (uc *todoUseCase) Restore(ctx context.Context, identity *model.Identity, id string) error {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return err
	}

	found, err := gateway.Restore(ctx, identity.OwnerID, id)
	if err != nil {
		return uc.storeFailure(msg.GetMessage("todo.error.restore-failed", id), err)
	}
	if !found {
		return model.NewNotFoundError(msg.GetMessage("todo.error.not-found", id))
	}

	uc.publish(ctx, identity, model.TodoRestored, id)
	return nil
}

func (uc *todoUseCase) DeletePermanently(ctx context.Context, identity *model.Identity, id string) error {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return err
	}

	found, err := gateway.DeletePermanently(ctx, identity.OwnerID, id)
	if err != nil {
		return uc.storeFailure(msg.GetMessage("todo.error.delete-failed", id), err)
	}
	if !found {
		return model.NewNotFoundError(msg.GetMessage("todo.error.not-found", id))
	}

	uc.publish(ctx, identity, model.TodoPurged, id)
	return nil
}

func (uc *todoUseCase) Reorder(ctx context.Context, identity *model.Identity, items []model.ReorderItem) error {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return model.NewValidationError(msg.GetMessage("todo.error.empty-reorder"))
	}

	if err := gateway.Reorder(ctx, identity.OwnerID, items); err != nil {
		return uc.storeFailure(msg.GetMessage("todo.error.reorder-failed"), err)
	}

	uc.publish(ctx, identity, model.TodoReordered, "")
	return nil
}

func (uc *todoUseCase) CreateSubTodo(ctx context.Context, identity *model.Identity, todoID string, dto model.CreateSubTodoDTO) (*entity.SubTodo, error) {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(dto.Content)
	if content == "" {
		return nil, model.NewValidationError(msg.GetMessage("sub-todo.error.empty-content"))
	}

	now := uc.now()
	subTodo := entity.SubTodo{
		ID:        uuid.NewString(),
		TodoID:    todoID,
		Content:   content,
		CreatedAt: now,
		Order:     orderStamp(now),
		ImageURL:  dto.ImageURL,
	}

	created, err := gateway.CreateSubTodo(ctx, identity.OwnerID, subTodo)
	if err != nil {
		return nil, uc.storeFailure(msg.GetMessage("sub-todo.error.create-failed"), err)
	}
	if !created {
		return nil, model.NewNotFoundError(msg.GetMessage("sub-todo.error.parent-not-found", todoID))
	}

	uc.publish(ctx, identity, model.TodoUpdated, todoID)
	return &subTodo, nil
}

func (uc *todoUseCase) UpdateSubTodo(ctx context.Context, identity *model.Identity, id string, patch model.SubTodoPatch) (*entity.SubTodo, error) {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, nil
	}
	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return nil, model.NewValidationError(msg.GetMessage("sub-todo.error.empty-content"))
		}
		patch.Content = &content
	}

	updated, err := gateway.UpdateSubTodo(ctx, identity.OwnerID, id, patch)
	if err != nil {
		return nil, uc.storeFailure(msg.GetMessage("sub-todo.error.update-failed", id), err)
	}
	if updated == nil {
		return nil, model.NewNotFoundError(msg.GetMessage("sub-todo.error.not-found", id))
	}

	uc.publish(ctx, identity, model.TodoUpdated, updated.TodoID)
	return updated, nil
}

func (uc *todoUseCase) ToggleSubTodo(ctx context.Context, identity *model.Identity, id string, isCompleted bool) (*entity.SubTodo, error) {
	return uc.UpdateSubTodo(ctx, identity, id, model.SubTodoPatch{IsCompleted: &isCompleted})
}

func (uc *todoUseCase) DeleteSubTodo(ctx context.Context, identity *model.Identity, id string) error {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return err
	}

	found, err := gateway.DeleteSubTodo(ctx, identity.OwnerID, id)
	if err != nil {
		return uc.storeFailure(msg.GetMessage("sub-todo.error.update-failed", id), err)
	}
	if !found {
		return model.NewNotFoundError(msg.GetMessage("sub-todo.error.not-found", id))
	}
	return nil
}

func (uc *todoUseCase) ReorderSubTodos(ctx context.Context, identity *model.Identity, todoID string, items []model.ReorderItem) error {
	gateway, err := uc.gatewayFor(identity)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return model.NewValidationError(msg.GetMessage("todo.error.empty-reorder"))
	}

	if err := gateway.ReorderSubTodos(ctx, identity.OwnerID, todoID, items); err != nil {
		return uc.storeFailure(msg.GetMessage("todo.error.reorder-failed"), err)
	}
	return nil
}

func (uc *todoUseCase) ParseContent(text string) model.ParsedContentDTO {
	content, dueDate := dateutils.ExtractDueDate(text, uc.now().In(uc.location))
	return model.ParsedContentDTO{Content: content, DueDate: dueDate}
}

func (uc *todoUseCase) PurgeTrash(ctx context.Context, retention time.Duration) (int64, error) {
	if uc.gateways.Trash == nil {
		return 0, nil
	}

	removed, err := uc.gateways.Trash.PurgeDeletedBefore(ctx, uc.now().Add(-retention))
	if err != nil {
		return 0, uc.storeFailure(msg.GetMessage("trash.error.purge-failed"), err)
	}
	return removed, nil
}

func (uc *todoUseCase) gatewayFor(identity *model.Identity) (db.TodoGateway, error) {
	if identity == nil || identity.OwnerID == "" {
		return nil, model.NewUnauthorizedError(msg.GetMessage("app.error.unauthorized"))
	}
	if identity.Guest {
		if uc.gateways.Guest == nil {
			return nil, model.NewUnauthorizedError(msg.GetMessage("app.error.unauthorized"))
		}
		return uc.gateways.Guest, nil
	}
	return uc.gateways.Server, nil
}

func (uc *todoUseCase) storeFailure(message string, err error) error {
	log.Error(message, zap.Error(err))
	return model.NewOperationFailedError(msg.GetMessage("app.error.operation-failed"), err)
}

func (uc *todoUseCase) publish(ctx context.Context, identity *model.Identity, eventType model.TodoEventType, todoID string) {
	if uc.publisher == nil {
		return
	}

	event := model.TodoEvent{
		Type:       eventType,
		OwnerID:    identity.OwnerID,
		Guest:      identity.Guest,
		TodoID:     todoID,
		OccurredAt: uc.now(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		log.Warn(msg.GetMessage("todo.event.publish-failed", eventType, todoID), zap.Error(err))
	}
}

func validateFields(priority entity.Priority, pattern entity.RecurrencePattern, interval int) error {
	if !priority.IsValid() {
		return model.NewValidationError(msg.GetMessage("todo.error.invalid-priority", priority))
	}
	if !pattern.IsValid() {
		return model.NewValidationError(msg.GetMessage("todo.error.invalid-pattern", pattern))
	}
	if interval < 1 {
		return model.NewValidationError(msg.GetMessage("todo.error.invalid-interval"))
	}
	return nil
}

func validatePatch(patch *model.TodoPatch) error {
	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return model.NewValidationError(msg.GetMessage("todo.error.empty-content"))
		}
		patch.Content = &content
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return model.NewValidationError(msg.GetMessage("todo.error.invalid-priority", *patch.Priority))
	}
	if patch.RecurrencePattern != nil && !patch.RecurrencePattern.IsValid() {
		return model.NewValidationError(msg.GetMessage("todo.error.invalid-pattern", *patch.RecurrencePattern))
	}
	if patch.RecurrenceInterval != nil && *patch.RecurrenceInterval < 1 {
		return model.NewValidationError(msg.GetMessage("todo.error.invalid-interval"))
	}
	if patch.Tags != nil {
		tags := uniqueTags(*patch.Tags)
		patch.Tags = &tags
	}
	return nil
}

// orderStamp places new items after everything created earlier
func orderStamp(now time.Time) float64 {
	return float64(now.UnixMilli())
}

func uniqueTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}

