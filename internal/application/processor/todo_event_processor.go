package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"todo-api/internal/domain/gateway/queue"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/stats"
	"todo-api/pkg/log"
	"todo-api/pkg/sqs"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
)

// TodoEventProcessor keeps derived data in step with todo mutations.
// It consumes events either from the SQS worker or in-process from the publisher.
type TodoEventProcessor struct {
	statsUseCase stats.UseCase
}

var (
	_ queue.EventHandler = (*TodoEventProcessor)(nil)
	_ sqs.Handler        = (*TodoEventProcessor)(nil)
)

func NewTodoEventProcessor(statsUseCase stats.UseCase) *TodoEventProcessor {
	return &TodoEventProcessor{
		statsUseCase: statsUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface
func (p *TodoEventProcessor) HandleMessage(ctx context.Context, msg types.Message) error {
	if msg.Body == nil {
		return fmt.Errorf("received message without body")
	}

	var event model.TodoEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		return fmt.Errorf("failed to unmarshal todo event: %w", err)
	}
	return p.HandleTodoEvent(ctx, event)
}

func (p *TodoEventProcessor) HandleTodoEvent(ctx context.Context, event model.TodoEvent) error {
	log.Debug("Processing todo event",
		zap.String("type", string(event.Type)),
		zap.String("owner", event.OwnerID),
		zap.String("todo_id", event.TodoID),
	)

	// order changes never affect completion counts
	if event.Type == model.TodoReordered {
		return nil
	}

	identity := model.NewUserIdentity(event.OwnerID)
	if event.Guest {
		identity = model.NewGuestIdentity(event.OwnerID)
	}
	if err := p.statsUseCase.Evict(ctx, identity); err != nil {
		return fmt.Errorf("failed to evict weekly stats of %s: %w", event.OwnerID, err)
	}
	return nil
}
