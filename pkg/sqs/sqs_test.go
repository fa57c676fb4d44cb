package sqs

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type fakeSQSClient struct {
	mu           sync.Mutex
	urlLookups   int
	sent         []*sqs.SendMessageInput
	deleted      []string
	pending      []types.Message
	cancelOnIdle context.CancelFunc
}

func (f *fakeSQSClient) GetQueueUrl(_ context.Context, params *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urlLookups++
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String("https://sqs.local/" + aws.ToString(params.QueueName))}, nil
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, params)
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func (f *fakeSQSClient) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pending) == 0 {
		f.cancelOnIdle()
		return nil, ctx.Err()
	}
	messages := f.pending
	f.pending = nil
	return &sqs.ReceiveMessageOutput{Messages: messages}, nil
}

func (f *fakeSQSClient) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func TestSenderSendsJSONWithAttributesAndCachesQueueURL(t *testing.T) {
	client := &fakeSQSClient{}
	sender := NewSender(client)

	body := map[string]string{"type": "completed", "ownerId": "user-1"}
	for i := 0; i < 2; i++ {
		if err := sender.SendMessage(context.Background(), "todo-events", body, map[string]string{"eventType": "completed"}); err != nil {
			t.Fatalf("SendMessage() error = %v", err)
		}
	}

	if client.urlLookups != 1 {
		t.Fatalf("queue URL looked up %d times, want 1", client.urlLookups)
	}
	if len(client.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(client.sent))
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(aws.ToString(client.sent[0].MessageBody)), &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if decoded["ownerId"] != "user-1" {
		t.Fatalf("unexpected body %v", decoded)
	}
	if got := aws.ToString(client.sent[0].MessageAttributes["eventType"].StringValue); got != "completed" {
		t.Fatalf("eventType attribute = %q", got)
	}
}

func TestNewWorkerValidatesConfig(t *testing.T) {
	client := &fakeSQSClient{}
	handler := HandlerFunc(func(context.Context, types.Message) error { return nil })

	if _, err := NewWorker(context.Background(), client, "q", handler, &WorkerConfig{MaxNumberOfMessages: 11}); err == nil {
		t.Fatal("expected error for maxNumberOfMessages > 10")
	}
	if _, err := NewWorker(context.Background(), client, "q", handler, &WorkerConfig{WaitTimeSeconds: 21}); err == nil {
		t.Fatal("expected error for waitTimeSeconds > 20")
	}
	if _, err := NewWorker(context.Background(), client, "q", handler, &WorkerConfig{PoolSize: -1}); err == nil {
		t.Fatal("expected error for negative pool size")
	}
}

func TestWorkerDeletesOnlyHandledMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &fakeSQSClient{
		cancelOnIdle: cancel,
		pending: []types.Message{
			{MessageId: aws.String("1"), ReceiptHandle: aws.String("r-1"), Body: aws.String("ok")},
			{MessageId: aws.String("2"), ReceiptHandle: aws.String("r-2"), Body: aws.String("fail")},
		},
	}

	handler := HandlerFunc(func(_ context.Context, msg types.Message) error {
		if aws.ToString(msg.Body) == "fail" {
			return errors.New("boom")
		}
		return nil
	})

	worker, err := NewWorker(ctx, client, "todo-events", handler, nil)
	if err != nil {
		t.Fatalf("NewWorker() error = %v", err)
	}

	worker.Start(ctx)

	if len(client.deleted) != 1 || client.deleted[0] != "r-1" {
		t.Fatalf("deleted = %v, want [r-1]", client.deleted)
	}
	if worker.IsRunning() {
		t.Fatal("worker should report stopped after Start returns")
	}
}
