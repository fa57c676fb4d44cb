package processor

import (
	"context"
	"encoding/json"
	"testing"
	"todo-api/internal/domain/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type recordingStats struct {
	evicted []model.Identity
}

func (s *recordingStats) GetWeeklyStats(context.Context, *model.Identity) (*model.WeeklyStats, error) {
	return nil, nil
}

func (s *recordingStats) Evict(_ context.Context, identity *model.Identity) error {
	s.evicted = append(s.evicted, *identity)
	return nil
}

func TestHandleMessageEvictsStats(t *testing.T) {
	statsUseCase := &recordingStats{}
	processor := NewTodoEventProcessor(statsUseCase)

	body, _ := json.Marshal(model.TodoEvent{Type: model.TodoCompleted, OwnerID: "user-1", TodoID: "t1"})
	if err := processor.HandleMessage(context.Background(), types.Message{Body: aws.String(string(body))}); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if err := processor.HandleTodoEvent(context.Background(), model.TodoEvent{Type: model.TodoReordered, OwnerID: "user-2"}); err != nil {
		t.Fatalf("HandleTodoEvent() error = %v", err)
	}
	if err := processor.HandleTodoEvent(context.Background(), model.TodoEvent{Type: model.TodoDeleted, OwnerID: "user-1", Guest: true}); err != nil {
		t.Fatalf("HandleTodoEvent() error = %v", err)
	}

	want := []model.Identity{{OwnerID: "user-1"}, {OwnerID: "user-1", Guest: true}}
	if len(statsUseCase.evicted) != len(want) || statsUseCase.evicted[0] != want[0] || statsUseCase.evicted[1] != want[1] {
		t.Fatalf("evicted = %v", statsUseCase.evicted)
	}
}

func TestHandleMessageRejectsMalformedBody(t *testing.T) {
	processor := NewTodoEventProcessor(&recordingStats{})

	if err := processor.HandleMessage(context.Background(), types.Message{Body: aws.String("{")}); err == nil {
		t.Fatal("malformed body accepted")
	}
	if err := processor.HandleMessage(context.Background(), types.Message{}); err == nil {
		t.Fatal("empty message accepted")
	}
}
