package stats

import (
	"context"
	"encoding/json"
	"testing"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/kv"
	"todo-api/internal/domain/model"
	"todo-api/pkg/msg"
)

var seoul = time.FixedZone("KST", 9*60*60)

type memoryCache struct {
	values map[string][]byte
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func completedTodo(id string, createdAt time.Time, completed bool) entity.Todo {
	return entity.Todo{
		ID:                 id,
		UserID:             "guest-1",
		Content:            id,
		IsCompleted:        completed,
		CreatedAt:          createdAt,
		Priority:           entity.PriorityMedium,
		RecurrencePattern:  entity.RecurrenceNone,
		RecurrenceInterval: 1,
		Tags:               []string{},
		SubTodos:           []entity.SubTodo{},
	}
}

func TestWeeklyStatsBucketsByLocalDateAndCaches(t *testing.T) {
	ctx := context.Background()
	gateway := kv.NewMirrorTodoGateway(kv.NewMemoryStore())
	cache := &memoryCache{values: map[string][]byte{}}
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, seoul)
	uc := NewStatsUseCase(nil, gateway, cache, func() time.Time { return now }, seoul)
	guest := model.NewGuestIdentity("guest-1")

	for _, todo := range []entity.Todo{
		completedTodo("today-morning", time.Date(2026, 10, 16, 9, 0, 0, 0, seoul), true),
		completedTodo("today-after-midnight", time.Date(2026, 10, 15, 15, 30, 0, 0, time.UTC), true),
		completedTodo("first-day", time.Date(2026, 10, 10, 0, 0, 0, 0, seoul), true),
		completedTodo("too-old", time.Date(2026, 10, 9, 23, 59, 0, 0, seoul), true),
		completedTodo("open", time.Date(2026, 10, 16, 8, 0, 0, 0, seoul), false),
	} {
		if err := gateway.Create(ctx, todo); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	stats, err := uc.GetWeeklyStats(ctx, guest)
	if err != nil {
		t.Fatalf("GetWeeklyStats() error = %v", err)
	}
	if stats.Total != 3 || len(stats.Days) != 7 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.Days[0] != (model.DailyCount{Date: "2026-10-10", Count: 1}) {
		t.Errorf("first day = %+v", stats.Days[0])
	}
	if stats.Days[6] != (model.DailyCount{Date: "2026-10-16", Count: 2}) {
		t.Errorf("today = %+v", stats.Days[6])
	}
	if stats.Message != msg.GetMessage("stats.message.steady-start") || stats.TrendPercent != 0 {
		t.Errorf("message = %q, trend = %d", stats.Message, stats.TrendPercent)
	}

	if err := gateway.Create(ctx, completedTodo("later", time.Date(2026, 10, 16, 9, 30, 0, 0, seoul), true)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if cached, _ := uc.GetWeeklyStats(ctx, guest); cached.Total != 3 {
		t.Fatalf("cached total = %d, want 3", cached.Total)
	}

	if err := uc.Evict(ctx, guest); err != nil {
		t.Fatalf("Evict() error = %v", err)
	}
	if fresh, _ := uc.GetWeeklyStats(ctx, guest); fresh.Total != 4 {
		t.Fatalf("total after eviction = %d, want 4", fresh.Total)
	}
}

func TestWeeklyStatsCacheSeparatesGuestsFromUsers(t *testing.T) {
	ctx := context.Background()
	server := kv.NewMirrorTodoGateway(kv.NewMemoryStore())
	guestStore := kv.NewMirrorTodoGateway(kv.NewMemoryStore())
	cache := &memoryCache{values: map[string][]byte{}}
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, seoul)
	uc := NewStatsUseCase(server, guestStore, cache, func() time.Time { return now }, seoul)

	if err := server.Create(ctx, completedTodo("done", now.Add(-time.Hour), true)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	user, err := uc.GetWeeklyStats(ctx, model.NewUserIdentity("guest-1"))
	if err != nil || user.Total != 1 {
		t.Fatalf("user stats = %+v, %v", user, err)
	}
	guest, err := uc.GetWeeklyStats(ctx, model.NewGuestIdentity("guest-1"))
	if err != nil {
		t.Fatalf("GetWeeklyStats() error = %v", err)
	}
	if guest.Total != 0 {
		t.Fatalf("guest total = %d, want 0", guest.Total)
	}

	if again, _ := uc.GetWeeklyStats(ctx, model.NewUserIdentity("guest-1")); again.Total != 1 {
		t.Fatalf("user total after guest read = %d, want 1", again.Total)
	}
}

func TestWeeklyStatsWindowRollsOverAtMidnight(t *testing.T) {
	ctx := context.Background()
	gateway := kv.NewMirrorTodoGateway(kv.NewMemoryStore())
	cache := &memoryCache{values: map[string][]byte{}}
	now := time.Date(2026, 10, 16, 23, 58, 0, 0, seoul)
	uc := NewStatsUseCase(nil, gateway, cache, func() time.Time { return now }, seoul)
	guest := model.NewGuestIdentity("guest-1")

	before, err := uc.GetWeeklyStats(ctx, guest)
	if err != nil {
		t.Fatalf("GetWeeklyStats() error = %v", err)
	}
	if last := before.Days[6].Date; last != "2026-10-16" {
		t.Fatalf("last bucket = %s, want 2026-10-16", last)
	}

	now = now.Add(4 * time.Minute)
	after, err := uc.GetWeeklyStats(ctx, guest)
	if err != nil {
		t.Fatalf("GetWeeklyStats() error = %v", err)
	}
	if last := after.Days[6].Date; last != "2026-10-17" {
		t.Fatalf("last bucket after midnight = %s, want 2026-10-17", last)
	}
	if first := after.Days[0].Date; first != "2026-10-11" {
		t.Fatalf("first bucket after midnight = %s, want 2026-10-11", first)
	}
}

func TestBuildStatsMessages(t *testing.T) {
	first := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)

	empty := buildStats(first, nil, time.UTC)
	if empty.Total != 0 || empty.Message != msg.GetMessage("stats.message.get-started") {
		t.Fatalf("empty = %+v", empty)
	}

	var busy []time.Time
	for i := 0; i < 5; i++ {
		busy = append(busy, first.Add(time.Duration(i)*time.Hour))
	}
	positive := buildStats(first, busy, time.UTC)
	if positive.Total != 5 || positive.TrendPercent != model.PlaceholderTrendPercent || positive.Days[0].Count != 5 {
		t.Fatalf("positive = %+v", positive)
	}
	if positive.Message != msg.GetMessage("stats.message.positive", model.PlaceholderTrendPercent) {
		t.Fatalf("message = %q", positive.Message)
	}
}

func TestWeeklyStatsRequiresIdentity(t *testing.T) {
	uc := NewStatsUseCase(nil, nil, nil, nil, nil)

	if _, err := uc.GetWeeklyStats(context.Background(), model.NewGuestIdentity("guest-1")); err == nil {
		t.Fatal("guest stats served without a guest store")
	}
}
