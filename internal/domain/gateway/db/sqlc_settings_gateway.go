package db

import (
	"context"
	"todo-api/internal/domain/entity"
	"todo-api/pkg/sqlstore"
)

const settingsColumns = `user_id, push_enabled, morning_time, evening_time, weekend_dnd, updated_at`

type SQLCSettingsGateway struct {
	Store *sqlstore.Store
}

var _ SettingsGateway = (*SQLCSettingsGateway)(nil)

func NewSQLCSettingsGateway(store *sqlstore.Store) *SQLCSettingsGateway {
	return &SQLCSettingsGateway{Store: store}
}

func (gateway *SQLCSettingsGateway) FindByUserID(ctx context.Context, userID string) (*entity.UserSettings, error) {
	settings, err := gateway.query(ctx, `SELECT `+settingsColumns+` FROM user_settings WHERE user_id = ?`, userID)
	if err != nil || len(settings) == 0 {
		return nil, err
	}
	return &settings[0], nil
}

func (gateway *SQLCSettingsGateway) Upsert(ctx context.Context, settings entity.UserSettings) error {
	_, err := gateway.Store.ExecContext(ctx, `
		INSERT INTO user_settings (`+settingsColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			push_enabled = excluded.push_enabled,
			morning_time = excluded.morning_time,
			evening_time = excluded.evening_time,
			weekend_dnd = excluded.weekend_dnd,
			updated_at = excluded.updated_at`,
		settings.UserID, settings.PushEnabled, settings.MorningTime, settings.EveningTime,
		settings.WeekendDnd, settings.UpdatedAt)
	return err
}

func (gateway *SQLCSettingsGateway) FindPushEnabled(ctx context.Context) ([]entity.UserSettings, error) {
	return gateway.query(ctx, `SELECT `+settingsColumns+` FROM user_settings WHERE push_enabled = ?`, true)
}

func (gateway *SQLCSettingsGateway) query(ctx context.Context, query string, args ...any) ([]entity.UserSettings, error) {
	rows, err := gateway.Store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := make([]entity.UserSettings, 0)
	for rows.Next() {
		var s entity.UserSettings
		var updatedAt sqlstore.Timestamp
		if err := rows.Scan(&s.UserID, &s.PushEnabled, &s.MorningTime, &s.EveningTime, &s.WeekendDnd, &updatedAt); err != nil {
			return nil, err
		}
		s.UpdatedAt = updatedAt.Time
		results = append(results, s)
	}
	return results, rows.Err()
}
