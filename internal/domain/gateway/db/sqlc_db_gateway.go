package db

import (
	"context"
	"time"
	"todo-api/internal/domain/model"
	"todo-api/pkg/sqlstore"
)

type SQLCHealthDBGateway struct {
	Store *sqlstore.Store
}

var _ HealthDBGateway = (*SQLCHealthDBGateway)(nil)

func NewSQLCHealthDBGateway(store *sqlstore.Store) *SQLCHealthDBGateway {
	return &SQLCHealthDBGateway{Store: store}
}

func (gateway *SQLCHealthDBGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := gateway.Store.PingContext(ctx); err != nil {
		return downStatus(err)
	}
	return upStatus(string(gateway.Store.Dialect()))
}
