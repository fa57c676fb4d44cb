package model

import "time"

type TodoEventType string

const (
	TodoCreated   TodoEventType = "created"
	TodoUpdated   TodoEventType = "updated"
	TodoCompleted TodoEventType = "completed"
	TodoReopened  TodoEventType = "reopened"
	TodoDeleted   TodoEventType = "deleted"
	TodoRestored  TodoEventType = "restored"
	TodoPurged    TodoEventType = "purged"
	TodoReordered TodoEventType = "reordered"
)

// TodoEvent is published after every successful todo mutation
type TodoEvent struct {
	Type       TodoEventType `json:"type"`
	OwnerID    string        `json:"ownerId"`
	Guest      bool          `json:"guest"`
	TodoID     string        `json:"todoId,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}
