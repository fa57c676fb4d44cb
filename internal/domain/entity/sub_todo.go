package entity

import (
	"sort"
	"time"
)

type SubTodo struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TodoID      string    `json:"todoId" gorm:"type:varchar(36);not null;index"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	IsCompleted bool      `json:"isCompleted" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;autoCreateTime:false"`
	Order       float64   `json:"order" gorm:"column:sort_order;not null;default:0"`
	ImageURL    *string   `json:"imageUrl" gorm:"type:text"`
}

func (SubTodo) TableName() string {
	return "sub_todos"
}

// SortSubTodos orders sub-todos by order, then oldest created first
func SortSubTodos(subTodos []SubTodo) {
	sort.SliceStable(subTodos, func(i, j int) bool {
		if subTodos[i].Order != subTodos[j].Order {
			return subTodos[i].Order < subTodos[j].Order
		}
		return subTodos[i].CreatedAt.Before(subTodos[j].CreatedAt)
	})
}
