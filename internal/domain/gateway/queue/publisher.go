package queue

import (
	"context"
	"todo-api/internal/domain/model"
)

// Publisher delivers todo events to their consumers
type Publisher interface {
	Publish(ctx context.Context, event model.TodoEvent) error
}

// EventHandler consumes a todo event
type EventHandler interface {
	HandleTodoEvent(ctx context.Context, event model.TodoEvent) error
}

// MessageSender is the part of pkg/sqs.Sender the publisher needs
type MessageSender interface {
	SendMessage(ctx context.Context, queueName string, body any, attributes map[string]string) error
}

// SQSPublisher sends each event as a JSON message to the todo event queue
type SQSPublisher struct {
	sender    MessageSender
	queueName string
}

var _ Publisher = (*SQSPublisher)(nil)

func NewSQSPublisher(sender MessageSender, queueName string) *SQSPublisher {
	return &SQSPublisher{sender: sender, queueName: queueName}
}

func (publisher *SQSPublisher) Publish(ctx context.Context, event model.TodoEvent) error {
	return publisher.sender.SendMessage(ctx, publisher.queueName, event, map[string]string{
		"eventType": string(event.Type),
	})
}

// InProcessPublisher hands events straight to the handler when no queue is configured
type InProcessPublisher struct {
	handler EventHandler
}

var _ Publisher = (*InProcessPublisher)(nil)

func NewInProcessPublisher(handler EventHandler) *InProcessPublisher {
	return &InProcessPublisher{handler: handler}
}

func (publisher *InProcessPublisher) Publish(ctx context.Context, event model.TodoEvent) error {
	return publisher.handler.HandleTodoEvent(ctx, event)
}
