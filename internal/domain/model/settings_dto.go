package model

type UpdateSettingsDTO struct {
	PushEnabled bool   `json:"pushEnabled"`
	MorningTime string `json:"morningTime"`
	EveningTime string `json:"eveningTime"`
	WeekendDnd  bool   `json:"weekendDnd"`
}
