package api

import (
	"context"
	"fmt"
	"todo-api/internal/domain/model/external"
	"todo-api/pkg/http"
	"todo-api/pkg/log"

	"go.uber.org/zap"
)

// pushGatewayImpl implements the PushGateway interface
type pushGatewayImpl struct {
	httpClient *http.Client
	path       string
}

// NewPushGateway creates a PushGateway posting to baseURL+path
func NewPushGateway(baseURL string, path string, clientOptions http.ClientOptions) PushGateway {
	return &pushGatewayImpl{
		httpClient: http.NewHttpClient(baseURL, clientOptions),
		path:       path,
	}
}

func (p *pushGatewayImpl) SendNotification(ctx context.Context, notification external.PushNotificationRequest) error {
	resp := &external.PushResponse{}
	errResp := &external.PushErrorResponse{}

	_, err := p.httpClient.Request().
		WithMethod(http.POST).
		WithPath(p.path).
		WithHeader("Idempotency-Key", notification.IdempotencyKey).
		WithBody(notification).
		WithSuccessResp(resp).
		WithErrorResp(errResp).
		Execute(ctx)

	if err == nil {
		log.Debug("Push notification accepted", zap.String("user_id", notification.UserID), zap.String("push_id", resp.ID))
		return nil
	}
	if errResp.Message != "" {
		return fmt.Errorf("push rejected: %s: %w", errResp.Message, err)
	}
	return err
}
