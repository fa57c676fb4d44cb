package entity

import (
	"sort"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is one of the known priorities
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type RecurrencePattern string

const (
	RecurrenceNone    RecurrencePattern = "none"
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
)

// IsValid reports whether r is one of the known recurrence patterns
func (r RecurrencePattern) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

type Todo struct {
	ID                 string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID             string            `json:"userId" gorm:"type:varchar(255);not null;index"`
	Content            string            `json:"content" gorm:"type:text;not null"`
	IsCompleted        bool              `json:"isCompleted" gorm:"not null;default:false"`
	CreatedAt          time.Time         `json:"createdAt" gorm:"not null;autoCreateTime:false"`
	DeletedAt          *time.Time        `json:"deletedAt" gorm:"index"`
	FolderID           *string           `json:"folderId" gorm:"type:varchar(36);index"`
	FolderName         *string           `json:"folderName,omitempty" gorm:"-"`
	FolderColor        *string           `json:"folderColor,omitempty" gorm:"-"`
	Priority           Priority          `json:"priority" gorm:"type:varchar(10);not null;default:medium"`
	DueDate            *time.Time        `json:"dueDate"`
	Order              float64           `json:"order" gorm:"column:sort_order;not null;default:0"`
	IsRecurring        bool              `json:"isRecurring" gorm:"not null;default:false"`
	RecurrencePattern  RecurrencePattern `json:"recurrencePattern" gorm:"type:varchar(10);not null;default:none"`
	RecurrenceInterval int               `json:"recurrenceInterval" gorm:"not null;default:1"`
	Tags               []string          `json:"tags" gorm:"type:text;serializer:json"`
	SubTodos           []SubTodo         `json:"subTodos" gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE"`
}

func (Todo) TableName() string {
	return "todos"
}

// IsDeleted reports whether the todo sits in the trash
func (t Todo) IsDeleted() bool {
	return t.DeletedAt != nil
}

// NextDueDate returns the due date of the next occurrence of a recurring todo.
// It reports false when the todo does not recur or has no due date.
func (t Todo) NextDueDate() (time.Time, bool) {
	if !t.IsRecurring || t.DueDate == nil {
		return time.Time{}, false
	}

	interval := t.RecurrenceInterval
	if interval < 1 {
		interval = 1
	}

	due := *t.DueDate
	switch t.RecurrencePattern {
	case RecurrenceDaily:
		return due.AddDate(0, 0, interval), true
	case RecurrenceWeekly:
		return due.AddDate(0, 0, 7*interval), true
	case RecurrenceMonthly:
		return due.AddDate(0, interval, 0), true
	default:
		return time.Time{}, false
	}
}

// NextOccurrence clones the recurring fields of t into a fresh incomplete todo due at due.
// Identity, timestamps and sub-todos are left for the caller to assign.
func (t Todo) NextOccurrence(due time.Time) Todo {
	next := Todo{
		UserID:             t.UserID,
		Content:            t.Content,
		Priority:           t.Priority,
		DueDate:            &due,
		IsRecurring:        t.IsRecurring,
		RecurrencePattern:  t.RecurrencePattern,
		RecurrenceInterval: t.RecurrenceInterval,
		Tags:               append([]string{}, t.Tags...),
		SubTodos:           []SubTodo{},
	}
	if t.FolderID != nil {
		folderID := *t.FolderID
		next.FolderID = &folderID
	}
	return next
}

// SortTodos orders by order ascending, breaking ties with the newest created first.
func SortTodos(todos []Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		if todos[i].Order != todos[j].Order {
			return todos[i].Order < todos[j].Order
		}
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
}

// SortDeleted orders trash entries with the most recently deleted first.
func SortDeleted(todos []Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		a, b := todos[i].DeletedAt, todos[j].DeletedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
}
