package model

// PlaceholderTrendPercent is the fixed trend shown in the positive stats message
const PlaceholderTrendPercent = 20

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type WeeklyStats struct {
	Total        int          `json:"total"`
	Days         []DailyCount `json:"days"`
	Message      string       `json:"message"`
	TrendPercent int          `json:"trendPercent"`
}
