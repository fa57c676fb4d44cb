package kv

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

var baseTime = time.Date(2026, 10, 16, 1, 0, 0, 0, time.UTC)

func newTodo(id string, order float64) entity.Todo {
	return entity.Todo{
		ID:                 id,
		UserID:             "guest-1",
		Content:            "todo " + id,
		CreatedAt:          baseTime,
		Priority:           entity.PriorityMedium,
		Order:              order,
		RecurrencePattern:  entity.RecurrenceNone,
		RecurrenceInterval: 1,
		Tags:               []string{},
		SubTodos:           []entity.SubTodo{},
	}
}

func TestMirrorRewritesWholeDocumentAndRevivesDates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	gateway := NewMirrorTodoGateway(store)

	due := baseTime.Add(48 * time.Hour)
	todo := newTodo("a", 1)
	todo.DueDate = &due
	if err := gateway.Create(ctx, todo); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := gateway.SoftDelete(ctx, "guest-1", "a", baseTime.Add(time.Hour)); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	raw, found, _ := store.Get(ctx, "guest-todos::guest-1")
	if !found {
		t.Fatal("document not stored under guest key")
	}
	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil || len(decoded) != 1 {
		t.Fatalf("document = %s, %v", raw, err)
	}
	if deletedAt, _ := decoded[0]["deletedAt"].(string); !strings.HasPrefix(deletedAt, "2026-10-16T02:00:00") {
		t.Fatalf("deletedAt stored as %v", decoded[0]["deletedAt"])
	}

	trash, err := gateway.FindDeleted(ctx, "guest-1")
	if err != nil || len(trash) != 1 {
		t.Fatalf("FindDeleted() = %+v, %v", trash, err)
	}
	if trash[0].DeletedAt == nil || !trash[0].DeletedAt.Equal(baseTime.Add(time.Hour)) {
		t.Fatalf("deletedAt not revived: %v", trash[0].DeletedAt)
	}
	if trash[0].DueDate == nil || !trash[0].DueDate.Equal(due) {
		t.Fatalf("dueDate not revived: %v", trash[0].DueDate)
	}
	if !trash[0].CreatedAt.Equal(baseTime) {
		t.Fatalf("createdAt not revived: %v", trash[0].CreatedAt)
	}
}

func TestMirrorIsolatesGuests(t *testing.T) {
	ctx := context.Background()
	gateway := NewMirrorTodoGateway(NewMemoryStore())

	if err := gateway.Create(ctx, newTodo("a", 1)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	other, err := gateway.FindActive(ctx, "guest-2", nil)
	if err != nil || len(other) != 0 {
		t.Fatalf("other guest sees %+v, %v", other, err)
	}
	if ok, err := gateway.SoftDelete(ctx, "guest-2", "a", baseTime); err != nil || ok {
		t.Fatalf("other guest deleted todo: %v, %v", ok, err)
	}
}

func TestMirrorRestoreResortsState(t *testing.T) {
	ctx := context.Background()
	gateway := NewMirrorTodoGateway(NewMemoryStore())

	for _, todo := range []entity.Todo{newTodo("c", 3), newTodo("a", 1), newTodo("b", 2)} {
		if err := gateway.Create(ctx, todo); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if _, err := gateway.SoftDelete(ctx, "guest-1", "a", baseTime); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	if ok, err := gateway.Restore(ctx, "guest-1", "a"); err != nil || !ok {
		t.Fatalf("Restore() = %v, %v", ok, err)
	}

	todos, err := gateway.load(ctx, "guest-1")
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if todos[0].ID != "a" || todos[1].ID != "b" || todos[2].ID != "c" {
		t.Fatalf("stored order = %s %s %s", todos[0].ID, todos[1].ID, todos[2].ID)
	}
}

func TestMirrorSubTodoLifecycle(t *testing.T) {
	ctx := context.Background()
	gateway := NewMirrorTodoGateway(NewMemoryStore())
	if err := gateway.Create(ctx, newTodo("a", 1)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if ok, err := gateway.CreateSubTodo(ctx, "guest-1", entity.SubTodo{ID: "s1", TodoID: "missing", Content: "x"}); err != nil || ok {
		t.Fatalf("sub-todo on missing parent = %v, %v", ok, err)
	}
	for i, id := range []string{"s1", "s2"} {
		sub := entity.SubTodo{ID: id, TodoID: "a", Content: id, CreatedAt: baseTime, Order: float64(i)}
		if ok, err := gateway.CreateSubTodo(ctx, "guest-1", sub); err != nil || !ok {
			t.Fatalf("CreateSubTodo() = %v, %v", ok, err)
		}
	}

	done := true
	updated, err := gateway.UpdateSubTodo(ctx, "guest-1", "s2", model.SubTodoPatch{IsCompleted: &done})
	if err != nil || updated == nil || !updated.IsCompleted {
		t.Fatalf("UpdateSubTodo() = %+v, %v", updated, err)
	}

	if err := gateway.ReorderSubTodos(ctx, "guest-1", "a", []model.ReorderItem{{ID: "s1", Order: 9}}); err != nil {
		t.Fatalf("ReorderSubTodos() error = %v", err)
	}
	todo, _ := gateway.FindByID(ctx, "guest-1", "a")
	if todo.SubTodos[0].ID != "s2" {
		t.Fatalf("sub-todo order = %+v", todo.SubTodos)
	}

	if ok, err := gateway.DeleteSubTodo(ctx, "guest-1", "s1"); err != nil || !ok {
		t.Fatalf("DeleteSubTodo() = %v, %v", ok, err)
	}
	if ok, err := gateway.DeletePermanently(ctx, "guest-1", "a"); err != nil || !ok {
		t.Fatalf("DeletePermanently() = %v, %v", ok, err)
	}
	if todo, _ := gateway.FindByID(ctx, "guest-1", "a"); todo != nil {
		t.Fatalf("todo still present: %+v", todo)
	}
}

func TestMirrorReorderAndFolderFilter(t *testing.T) {
	ctx := context.Background()
	gateway := NewMirrorTodoGateway(NewMemoryStore())

	folder := "f1"
	a := newTodo("a", 1)
	a.FolderID = &folder
	for _, todo := range []entity.Todo{a, newTodo("b", 2)} {
		if err := gateway.Create(ctx, todo); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	if err := gateway.Reorder(ctx, "guest-1", []model.ReorderItem{{ID: "a", Order: 5}}); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	list, _ := gateway.FindActive(ctx, "guest-1", nil)
	if list[0].ID != "b" || list[1].ID != "a" {
		t.Fatalf("order = %s %s", list[0].ID, list[1].ID)
	}

	filtered, _ := gateway.FindActive(ctx, "guest-1", &folder)
	if len(filtered) != 1 || filtered[0].ID != "a" {
		t.Fatalf("filtered = %+v", filtered)
	}
}

func TestMirrorSetCompletedOnlyReportsActualChange(t *testing.T) {
	ctx := context.Background()
	gateway := NewMirrorTodoGateway(NewMemoryStore())
	if err := gateway.Create(ctx, newTodo("a", 1)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if changed, err := gateway.SetCompleted(ctx, "guest-1", "a", true); err != nil || !changed {
		t.Fatalf("first SetCompleted() = %v, %v", changed, err)
	}
	if changed, err := gateway.SetCompleted(ctx, "guest-1", "a", true); err != nil || changed {
		t.Fatalf("repeated SetCompleted() = %v, %v", changed, err)
	}
	if changed, _ := gateway.SetCompleted(ctx, "guest-1", "missing", true); changed {
		t.Fatal("missing todo reported as changed")
	}

	if found, _ := gateway.FindByID(ctx, "guest-1", "a"); found == nil || !found.IsCompleted {
		t.Fatalf("FindByID() = %+v", found)
	}
}
