package entity

import "time"

const DefaultFolderColor = "gray"

type Folder struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(255);not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Color     string    `json:"color" gorm:"type:varchar(32);not null;default:gray"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;autoCreateTime:false"`
}

func (Folder) TableName() string {
	return "folders"
}
