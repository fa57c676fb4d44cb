package entity

import "time"

const (
	DefaultMorningTime = "08:00"
	DefaultEveningTime = "21:00"
)

type UserSettings struct {
	UserID      string    `json:"userId" gorm:"primaryKey;type:varchar(255)"`
	PushEnabled bool      `json:"pushEnabled" gorm:"not null;default:false"`
	MorningTime string    `json:"morningTime" gorm:"type:varchar(5);not null;default:'08:00'"`
	EveningTime string    `json:"eveningTime" gorm:"type:varchar(5);not null;default:'21:00'"`
	WeekendDnd  bool      `json:"weekendDnd" gorm:"not null;default:false"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null;autoUpdateTime:false"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultUserSettings returns the settings a user has before saving any
func DefaultUserSettings(userID string) UserSettings {
	return UserSettings{
		UserID:      userID,
		MorningTime: DefaultMorningTime,
		EveningTime: DefaultEveningTime,
	}
}
