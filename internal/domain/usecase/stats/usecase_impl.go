package stats

import (
	"context"
	"time"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/util/dateutils"

	"go.uber.org/zap"
)

const (
	CacheName  = "weekly-stats"
	windowDays = 7
	steadyMark = 5
)

type statsUseCase struct {
	server   db.TodoGateway
	guest    db.TodoGateway
	cache    Cache
	now      func() time.Time
	location *time.Location
}

// NewStatsUseCase builds the weekly statistics. guest and cache may be nil.
func NewStatsUseCase(server db.TodoGateway, guest db.TodoGateway, cache Cache, now func() time.Time, location *time.Location) UseCase {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &statsUseCase{
		server:   server,
		guest:    guest,
		cache:    cache,
		now:      now,
		location: location,
	}
}

func (uc *statsUseCase) GetWeeklyStats(ctx context.Context, identity *model.Identity) (*model.WeeklyStats, error) {
	if identity == nil || identity.OwnerID == "" || (identity.Guest && uc.guest == nil) {
		return nil, model.NewUnauthorizedError(msg.GetMessage("app.error.unauthorized"))
	}

	today := uc.now().In(uc.location)
	key := cacheKey(identity, today)

	if uc.cache != nil {
		var cached model.WeeklyStats
		found, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn(msg.GetMessage("stats.error.cache", identity.OwnerID), zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	gateway := uc.server
	if identity.Guest {
		gateway = uc.guest
	}

	first := dateutils.StartOfDay(today).AddDate(0, 0, -(windowDays - 1))

	completed, err := gateway.FindCompletedCreatedBetween(ctx, identity.OwnerID, first, dateutils.EndOfDay(today))
	if err != nil {
		log.Error(msg.GetMessage("stats.error.failed", identity.OwnerID), zap.Error(err))
		return buildStats(first, nil, uc.location), nil
	}

	stats := buildStats(first, completed, uc.location)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, stats); err != nil {
			log.Warn(msg.GetMessage("stats.error.cache", identity.OwnerID), zap.Error(err))
		}
	}
	return stats, nil
}

func (uc *statsUseCase) Evict(ctx context.Context, identity *model.Identity) error {
	if uc.cache == nil || identity == nil {
		return nil
	}
	return uc.cache.Delete(ctx, cacheKey(identity, uc.now().In(uc.location)))
}

// cacheKey separates guests from users sharing an id and rolls over at local midnight,
// so a cached window always ends on the current day
func cacheKey(identity *model.Identity, today time.Time) string {
	kind := "user"
	if identity.Guest {
		kind = "guest"
	}
	return kind + ":" + identity.OwnerID + ":" + dateutils.DateKey(today)
}

// buildStats fills one bucket per day starting at first, matching timestamps by calendar date
func buildStats(first time.Time, completed []time.Time, location *time.Location) *model.WeeklyStats {
	counts := make(map[string]int, len(completed))
	for _, createdAt := range completed {
		counts[dateutils.DateKey(createdAt.In(location))]++
	}

	stats := &model.WeeklyStats{Days: make([]model.DailyCount, 0, windowDays)}
	for i := 0; i < windowDays; i++ {
		date := dateutils.DateKey(first.AddDate(0, 0, i))
		stats.Days = append(stats.Days, model.DailyCount{Date: date, Count: counts[date]})
		stats.Total += counts[date]
	}

	switch {
	case stats.Total == 0:
		stats.Message = msg.GetMessage("stats.message.get-started")
	case stats.Total < steadyMark:
		stats.Message = msg.GetMessage("stats.message.steady-start")
	default:
		stats.TrendPercent = model.PlaceholderTrendPercent
		stats.Message = msg.GetMessage("stats.message.positive", model.PlaceholderTrendPercent)
	}
	return stats
}
