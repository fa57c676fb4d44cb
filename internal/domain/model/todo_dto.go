package model

import (
	"time"
	"todo-api/internal/domain/entity"
)

type CreateTodoDTO struct {
	Content            string                   `json:"content"`
	FolderID           *string                  `json:"folderId"`
	Priority           entity.Priority          `json:"priority"`
	DueDate            *time.Time               `json:"dueDate"`
	IsRecurring        bool                     `json:"isRecurring"`
	RecurrencePattern  entity.RecurrencePattern `json:"recurrencePattern"`
	RecurrenceInterval int                      `json:"recurrenceInterval"`
	Tags               []string                 `json:"tags"`
	// ParseDate extracts a relative date phrase from Content when DueDate is empty
	ParseDate bool `json:"parseDate"`
}

// TodoPatch holds the fields of a partial update. Nil pointers and unset Nullables are left untouched.
type TodoPatch struct {
	Content            *string                   `json:"content"`
	IsCompleted        *bool                     `json:"isCompleted"`
	FolderID           Nullable[string]          `json:"folderId"`
	Priority           *entity.Priority          `json:"priority"`
	DueDate            Nullable[time.Time]       `json:"dueDate"`
	Order              *float64                  `json:"order"`
	IsRecurring        *bool                     `json:"isRecurring"`
	RecurrencePattern  *entity.RecurrencePattern `json:"recurrencePattern"`
	RecurrenceInterval *int                      `json:"recurrenceInterval"`
	Tags               *[]string                 `json:"tags"`
}

// IsEmpty reports whether the patch changes nothing
func (p TodoPatch) IsEmpty() bool {
	return p.Content == nil &&
		p.IsCompleted == nil &&
		!p.FolderID.Set &&
		p.Priority == nil &&
		!p.DueDate.Set &&
		p.Order == nil &&
		p.IsRecurring == nil &&
		p.RecurrencePattern == nil &&
		p.RecurrenceInterval == nil &&
		p.Tags == nil
}

// ApplyTo copies the set fields onto todo
func (p TodoPatch) ApplyTo(todo *entity.Todo) {
	if p.Content != nil {
		todo.Content = *p.Content
	}
	if p.IsCompleted != nil {
		todo.IsCompleted = *p.IsCompleted
	}
	if p.FolderID.Set {
		todo.FolderID = p.FolderID.Value
	}
	if p.Priority != nil {
		todo.Priority = *p.Priority
	}
	if p.DueDate.Set {
		todo.DueDate = p.DueDate.Value
	}
	if p.Order != nil {
		todo.Order = *p.Order
	}
	if p.IsRecurring != nil {
		todo.IsRecurring = *p.IsRecurring
	}
	if p.RecurrencePattern != nil {
		todo.RecurrencePattern = *p.RecurrencePattern
	}
	if p.RecurrenceInterval != nil {
		todo.RecurrenceInterval = *p.RecurrenceInterval
	}
	if p.Tags != nil {
		todo.Tags = append([]string{}, (*p.Tags)...)
	}
}

type ToggleDTO struct {
	IsCompleted bool `json:"isCompleted"`
}

type ReorderItem struct {
	ID    string  `json:"id"`
	Order float64 `json:"order"`
}

type ReorderDTO struct {
	Items []ReorderItem `json:"items"`
}

type ParseContentDTO struct {
	Text string `json:"text"`
}

type ParsedContentDTO struct {
	Content string     `json:"content"`
	DueDate *time.Time `json:"dueDate"`
}

type CreateSubTodoDTO struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

type SubTodoPatch struct {
	Content     *string          `json:"content"`
	IsCompleted *bool            `json:"isCompleted"`
	Order       *float64         `json:"order"`
	ImageURL    Nullable[string] `json:"imageUrl"`
}

func (p SubTodoPatch) IsEmpty() bool {
	return p.Content == nil && p.IsCompleted == nil && p.Order == nil && !p.ImageURL.Set
}

func (p SubTodoPatch) ApplyTo(subTodo *entity.SubTodo) {
	if p.Content != nil {
		subTodo.Content = *p.Content
	}
	if p.IsCompleted != nil {
		subTodo.IsCompleted = *p.IsCompleted
	}
	if p.Order != nil {
		subTodo.Order = *p.Order
	}
	if p.ImageURL.Set {
		subTodo.ImageURL = p.ImageURL.Value
	}
}
