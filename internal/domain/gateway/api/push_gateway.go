package api

import (
	"context"
	"todo-api/internal/domain/model/external"
)

// PushGateway delivers reminder notifications to the external push service
type PushGateway interface {
	SendNotification(ctx context.Context, notification external.PushNotificationRequest) error
}
