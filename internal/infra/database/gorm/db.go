package gorm

import (
	"context"
	"fmt"
	"todo-api/internal/domain/entity"
	"todo-api/internal/infra/database/sqlc"
	"todo-api/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects gorm to the same postgres database the sqlc gateways use
func Open() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(sqlc.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// Migrate creates or alters the todo tables from the entity definitions
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&entity.Folder{},
		&entity.Todo{},
		&entity.SubTodo{},
		&entity.UserSettings{},
	)
	if err != nil {
		log.Error("Schema migration failed", zap.Error(err))
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Info("Schema migration completed")
	return nil
}
