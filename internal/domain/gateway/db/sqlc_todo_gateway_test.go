package db

import (
	"context"
	"testing"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
	"todo-api/internal/infra/database/sqlite"
	"todo-api/pkg/sqlstore"
)

var baseTime = time.Date(2026, 10, 16, 1, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlstore.New(db, sqlstore.SQLite)
}

func newTodo(id, owner string, order float64) entity.Todo {
	return entity.Todo{
		ID:                 id,
		UserID:             owner,
		Content:            "todo " + id,
		CreatedAt:          baseTime,
		Priority:           entity.PriorityMedium,
		Order:              order,
		RecurrencePattern:  entity.RecurrenceNone,
		RecurrenceInterval: 1,
		Tags:               []string{},
	}
}

func mustCreate(t *testing.T, gateway *SQLCTodoGateway, todos ...entity.Todo) {
	t.Helper()
	for _, todo := range todos {
		if err := gateway.Create(context.Background(), todo); err != nil {
			t.Fatalf("create %s: %v", todo.ID, err)
		}
	}
}

func TestFindActiveJoinsFolderAndSortsSubTodos(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	todos := NewSQLCTodoGateway(store)
	folders := NewSQLCFolderGateway(store)

	if err := folders.Create(ctx, entity.Folder{ID: "f1", UserID: "u1", Name: "Work", Color: "blue", CreatedAt: baseTime}); err != nil {
		t.Fatalf("create folder: %v", err)
	}

	folderID := "f1"
	due := baseTime.Add(24 * time.Hour)
	first := newTodo("a", "u1", 2)
	first.FolderID = &folderID
	first.DueDate = &due
	first.Tags = []string{"work", "urgent"}
	second := newTodo("b", "u1", 1)
	other := newTodo("c", "u2", 0)
	mustCreate(t, todos, first, second, other)

	for i, sub := range []entity.SubTodo{
		{ID: "s2", TodoID: "a", Content: "second", CreatedAt: baseTime, Order: 20},
		{ID: "s1", TodoID: "a", Content: "first", CreatedAt: baseTime, Order: 10},
	} {
		ok, err := todos.CreateSubTodo(ctx, "u1", sub)
		if err != nil || !ok {
			t.Fatalf("create sub-todo %d: ok=%v err=%v", i, ok, err)
		}
	}

	list, err := todos.FindActive(ctx, "u1", nil)
	if err != nil {
		t.Fatalf("FindActive() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "a" {
		t.Fatalf("unexpected order %+v", list)
	}

	a := list[1]
	if a.FolderName == nil || *a.FolderName != "Work" || a.FolderColor == nil || *a.FolderColor != "blue" {
		t.Fatalf("folder not joined: %+v", a)
	}
	if a.DueDate == nil || !a.DueDate.Equal(due) {
		t.Fatalf("due date = %v", a.DueDate)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "work" {
		t.Fatalf("tags = %v", a.Tags)
	}
	if len(a.SubTodos) != 2 || a.SubTodos[0].ID != "s1" {
		t.Fatalf("sub-todos = %+v", a.SubTodos)
	}
	if list[0].SubTodos == nil || len(list[0].SubTodos) != 0 {
		t.Fatalf("expected empty sub-todo slice, got %v", list[0].SubTodos)
	}

	filtered, err := todos.FindActive(ctx, "u1", &folderID)
	if err != nil || len(filtered) != 1 || filtered[0].ID != "a" {
		t.Fatalf("folder filter = %+v, %v", filtered, err)
	}
}

func TestUpdateIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	gateway := NewSQLCTodoGateway(newTestStore(t))
	mustCreate(t, gateway, newTodo("a", "u1", 1))

	content := "changed"
	high := entity.PriorityHigh
	patch := model.TodoPatch{Content: &content, Priority: &high, DueDate: model.NewNullable(baseTime)}

	if updated, err := gateway.Update(ctx, "u2", "a", patch); err != nil || updated != nil {
		t.Fatalf("foreign update = %+v, %v", updated, err)
	}

	updated, err := gateway.Update(ctx, "u1", "a", patch)
	if err != nil || updated == nil {
		t.Fatalf("Update() = %+v, %v", updated, err)
	}
	if updated.Content != "changed" || updated.Priority != entity.PriorityHigh || updated.DueDate == nil {
		t.Fatalf("patch not applied: %+v", updated)
	}

	cleared, err := gateway.Update(ctx, "u1", "a", model.TodoPatch{DueDate: model.Null[time.Time]()})
	if err != nil || cleared == nil || cleared.DueDate != nil {
		t.Fatalf("clearing due date = %+v, %v", cleared, err)
	}

	if empty, err := gateway.Update(ctx, "u1", "a", model.TodoPatch{}); err != nil || empty != nil {
		t.Fatalf("empty patch = %+v, %v", empty, err)
	}
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	gateway := NewSQLCTodoGateway(newTestStore(t))
	mustCreate(t, gateway, newTodo("a", "u1", 1), newTodo("b", "u1", 2))

	if ok, err := gateway.SoftDelete(ctx, "u1", "a", baseTime); err != nil || !ok {
		t.Fatalf("SoftDelete(a) = %v, %v", ok, err)
	}
	if ok, err := gateway.SoftDelete(ctx, "u1", "b", baseTime.Add(time.Hour)); err != nil || !ok {
		t.Fatalf("SoftDelete(b) = %v, %v", ok, err)
	}

	active, _ := gateway.FindActive(ctx, "u1", nil)
	if len(active) != 0 {
		t.Fatalf("deleted todos listed as active: %+v", active)
	}

	trash, err := gateway.FindDeleted(ctx, "u1")
	if err != nil || len(trash) != 2 || trash[0].ID != "b" {
		t.Fatalf("trash = %+v, %v", trash, err)
	}

	if ok, err := gateway.Restore(ctx, "u1", "a"); err != nil || !ok {
		t.Fatalf("Restore() = %v, %v", ok, err)
	}

	restored, err := gateway.FindByID(ctx, "u1", "a")
	if err != nil || restored == nil || restored.DeletedAt != nil || restored.Content != "todo a" {
		t.Fatalf("restored = %+v, %v", restored, err)
	}
}

func TestDeletePermanentlyRemovesSubTodos(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	gateway := NewSQLCTodoGateway(store)
	mustCreate(t, gateway, newTodo("a", "u1", 1))

	for _, id := range []string{"s1", "s2"} {
		if ok, err := gateway.CreateSubTodo(ctx, "u1", entity.SubTodo{ID: id, TodoID: "a", Content: id, CreatedAt: baseTime}); err != nil || !ok {
			t.Fatalf("create sub-todo: %v %v", ok, err)
		}
	}

	if ok, err := gateway.DeletePermanently(ctx, "u2", "a"); err != nil || ok {
		t.Fatalf("foreign delete = %v, %v", ok, err)
	}

	if ok, err := gateway.DeletePermanently(ctx, "u1", "a"); err != nil || !ok {
		t.Fatalf("DeletePermanently() = %v, %v", ok, err)
	}

	var remaining int
	if err := store.QueryRowContext(ctx, `SELECT COUNT(*) FROM sub_todos`).Scan(&remaining); err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("remaining sub-todos = %d", remaining)
	}
	if todo, _ := gateway.FindByID(ctx, "u1", "a"); todo != nil {
		t.Fatalf("todo still present: %+v", todo)
	}
}

func TestReorderAppliesAllOrders(t *testing.T) {
	ctx := context.Background()
	gateway := NewSQLCTodoGateway(newTestStore(t))
	mustCreate(t, gateway, newTodo("a", "u1", 1), newTodo("b", "u1", 2), newTodo("c", "u1", 3))

	err := gateway.Reorder(ctx, "u1", []model.ReorderItem{{ID: "c", Order: 0.5}, {ID: "a", Order: 2.5}, {ID: "missing", Order: 9}})
	if err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}

	list, _ := gateway.FindActive(ctx, "u1", nil)
	got := []string{list[0].ID, list[1].ID, list[2].ID}
	if got[0] != "c" || got[1] != "b" || got[2] != "a" {
		t.Fatalf("order = %v", got)
	}
}

func TestSubTodoMutationsCheckParentOwner(t *testing.T) {
	ctx := context.Background()
	gateway := NewSQLCTodoGateway(newTestStore(t))
	mustCreate(t, gateway, newTodo("a", "u1", 1))

	if ok, err := gateway.CreateSubTodo(ctx, "u2", entity.SubTodo{ID: "x", TodoID: "a", Content: "x", CreatedAt: baseTime}); err != nil || ok {
		t.Fatalf("foreign create = %v, %v", ok, err)
	}
	if ok, err := gateway.CreateSubTodo(ctx, "u1", entity.SubTodo{ID: "s1", TodoID: "a", Content: "s1", CreatedAt: baseTime}); err != nil || !ok {
		t.Fatalf("create = %v, %v", ok, err)
	}

	done := true
	if sub, err := gateway.UpdateSubTodo(ctx, "u2", "s1", model.SubTodoPatch{IsCompleted: &done}); err != nil || sub != nil {
		t.Fatalf("foreign update = %+v, %v", sub, err)
	}
	sub, err := gateway.UpdateSubTodo(ctx, "u1", "s1", model.SubTodoPatch{IsCompleted: &done, ImageURL: model.NewNullable("https://img/1.png")})
	if err != nil || sub == nil || !sub.IsCompleted || sub.ImageURL == nil {
		t.Fatalf("update = %+v, %v", sub, err)
	}

	if ok, err := gateway.DeleteSubTodo(ctx, "u2", "s1"); err != nil || ok {
		t.Fatalf("foreign delete = %v, %v", ok, err)
	}
	if ok, err := gateway.DeleteSubTodo(ctx, "u1", "s1"); err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
}

func TestReorderSubTodos(t *testing.T) {
	ctx := context.Background()
	gateway := NewSQLCTodoGateway(newTestStore(t))
	mustCreate(t, gateway, newTodo("a", "u1", 1))
	for i, id := range []string{"s1", "s2"} {
		if _, err := gateway.CreateSubTodo(ctx, "u1", entity.SubTodo{ID: id, TodoID: "a", Content: id, CreatedAt: baseTime, Order: float64(i)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := gateway.ReorderSubTodos(ctx, "u1", "a", []model.ReorderItem{{ID: "s1", Order: 5}}); err != nil {
		t.Fatalf("ReorderSubTodos() error = %v", err)
	}

	todo, _ := gateway.FindByID(ctx, "u1", "a")
	if todo.SubTodos[0].ID != "s2" || todo.SubTodos[1].ID != "s1" {
		t.Fatalf("sub-todo order = %+v", todo.SubTodos)
	}
}

func TestFindCompletedCreatedBetweenAndPurge(t *testing.T) {
	ctx := context.Background()
	gateway := NewSQLCTodoGateway(newTestStore(t))

	inside := newTodo("in", "u1", 1)
	inside.IsCompleted = true
	outside := newTodo("out", "u1", 2)
	outside.IsCompleted = true
	outside.CreatedAt = baseTime.Add(-10 * 24 * time.Hour)
	open := newTodo("open", "u1", 3)
	mustCreate(t, gateway, inside, outside, open)

	times, err := gateway.FindCompletedCreatedBetween(ctx, "u1", baseTime.Add(-time.Hour), baseTime.Add(time.Hour))
	if err != nil || len(times) != 1 || !times[0].Equal(baseTime) {
		t.Fatalf("completed = %v, %v", times, err)
	}

	if _, err := gateway.SoftDelete(ctx, "u1", "out", baseTime.Add(-40*24*time.Hour)); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := gateway.SoftDelete(ctx, "u1", "open", baseTime); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	purged, err := gateway.PurgeDeletedBefore(ctx, baseTime.Add(-30*24*time.Hour))
	if err != nil || purged != 1 {
		t.Fatalf("purged = %d, %v", purged, err)
	}
	if trash, _ := gateway.FindDeleted(ctx, "u1"); len(trash) != 1 || trash[0].ID != "open" {
		t.Fatalf("trash after purge = %+v", trash)
	}
}

func TestCountOpenDueBetween(t *testing.T) {
	ctx := context.Background()
	gateway := NewSQLCTodoGateway(newTestStore(t))

	due := baseTime.Add(2 * time.Hour)
	a := newTodo("a", "u1", 1)
	a.DueDate = &due
	b := newTodo("b", "u1", 2)
	b.DueDate = &due
	b.IsCompleted = true
	c := newTodo("c", "u1", 3)
	mustCreate(t, gateway, a, b, c)

	count, err := gateway.CountOpenDueBetween(ctx, "u1", baseTime, baseTime.Add(24*time.Hour))
	if err != nil || count != 1 {
		t.Fatalf("count = %d, %v", count, err)
	}
}

func TestSetCompletedOnlyReportsActualChange(t *testing.T) {
	ctx := context.Background()
	todos := NewSQLCTodoGateway(newTestStore(t))
	mustCreate(t, todos, newTodo("a", "u1", 1))

	for _, step := range []struct {
		owner       string
		isCompleted bool
		want        bool
	}{
		{"u1", true, true},
		{"u1", true, false},
		{"u2", false, false},
		{"u1", false, true},
	} {
		changed, err := todos.SetCompleted(ctx, step.owner, "a", step.isCompleted)
		if err != nil {
			t.Fatalf("SetCompleted(%s, %v) error = %v", step.owner, step.isCompleted, err)
		}
		if changed != step.want {
			t.Fatalf("SetCompleted(%s, %v) = %v, want %v", step.owner, step.isCompleted, changed, step.want)
		}
	}

	if found, _ := todos.FindByID(ctx, "u1", "a"); found == nil || found.IsCompleted {
		t.Fatalf("FindByID() = %+v", found)
	}
}
