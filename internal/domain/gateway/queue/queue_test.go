package queue

import (
	"context"
	"testing"
	"todo-api/internal/domain/model"
)

type recordingSender struct {
	queue      string
	body       any
	attributes map[string]string
}

func (r *recordingSender) SendMessage(_ context.Context, queueName string, body any, attributes map[string]string) error {
	r.queue, r.body, r.attributes = queueName, body, attributes
	return nil
}

type fakeWorker struct{ running bool }

func (w fakeWorker) IsRunning() bool   { return w.running }
func (w fakeWorker) QueueName() string { return "todo-events" }

func TestSQSPublisherTagsEventType(t *testing.T) {
	sender := &recordingSender{}
	publisher := NewSQSPublisher(sender, "todo-events")

	event := model.TodoEvent{Type: model.TodoCompleted, OwnerID: "user-1"}
	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if sender.queue != "todo-events" || sender.attributes["eventType"] != "completed" {
		t.Fatalf("sent to %q with %v", sender.queue, sender.attributes)
	}
	if sent, ok := sender.body.(model.TodoEvent); !ok || sent.OwnerID != "user-1" {
		t.Fatalf("body = %#v", sender.body)
	}
}

func TestQueueHealth(t *testing.T) {
	if status := NewQueueHealthGateway(false).Health().Status; status != model.StatusUp {
		t.Fatalf("disabled queue status = %s", status)
	}

	gateway := NewQueueHealthGateway(true)
	if status := gateway.Health().Status; status != model.StatusUnknown {
		t.Fatalf("no workers status = %s", status)
	}

	gateway.RegisterWorker("todo-events", fakeWorker{running: true})
	if status := gateway.Health().Status; status != model.StatusUp {
		t.Fatalf("running worker status = %s", status)
	}

	gateway.RegisterWorker("stopped", fakeWorker{running: false})
	health := gateway.Health()
	if health.Status != model.StatusDown || health.Details["workers_down"] != "1" {
		t.Fatalf("stopped worker health = %+v", health)
	}
}
