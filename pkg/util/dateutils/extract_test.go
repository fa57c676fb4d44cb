package dateutils

import (
	"testing"
	"time"
)

func TestExtractDueDate(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	now := time.Date(2026, time.October, 16, 10, 30, 0, 0, seoul)

	tests := []struct {
		name        string
		input       string
		wantContent string
		wantDue     *time.Time
	}{
		{
			name:        "tomorrow afternoon",
			input:       "내일 오후 3시 회의",
			wantContent: "회의",
			wantDue:     ptr(time.Date(2026, time.October, 17, 15, 0, 0, 0, seoul)),
		},
		{
			name:        "no keyword",
			input:       "장보기  우유",
			wantContent: "장보기  우유",
			wantDue:     nil,
		},
		{
			name:        "time only defaults to today",
			input:       "오전 9시 30분 운동",
			wantContent: "운동",
			wantDue:     ptr(time.Date(2026, time.October, 16, 9, 30, 0, 0, seoul)),
		},
		{
			name:        "day only is midnight",
			input:       "보고서 모레 제출",
			wantContent: "보고서 제출",
			wantDue:     ptr(time.Date(2026, time.October, 18, 0, 0, 0, 0, seoul)),
		},
		{
			name:        "day after tomorrow compound keyword",
			input:       "내일모레 저녁 7시 약속",
			wantContent: "저녁 약속",
			wantDue:     ptr(time.Date(2026, time.October, 18, 7, 0, 0, 0, seoul)),
		},
		{
			name:        "noon am becomes midnight",
			input:       "오늘 오전 12시 배포",
			wantContent: "배포",
			wantDue:     ptr(time.Date(2026, time.October, 16, 0, 0, 0, 0, seoul)),
		},
		{
			name:        "only first keyword consumed",
			input:       "오늘 내일 정리",
			wantContent: "오늘 정리",
			wantDue:     ptr(time.Date(2026, time.October, 17, 0, 0, 0, 0, seoul)),
		},
		{
			name:        "out of range hour ignored",
			input:       "25시 영화",
			wantContent: "25시 영화",
			wantDue:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, due := ExtractDueDate(tt.input, now)
			if content != tt.wantContent {
				t.Fatalf("content = %q, want %q", content, tt.wantContent)
			}
			if tt.wantDue == nil {
				if due != nil {
					t.Fatalf("expected nil due date, got %v", due)
				}
				return
			}
			if due == nil || !due.Equal(*tt.wantDue) {
				t.Fatalf("due = %v, want %v", due, tt.wantDue)
			}
		})
	}
}

func TestDayHelpers(t *testing.T) {
	ts := time.Date(2026, time.October, 17, 18, 45, 12, 0, time.UTC)

	if got := DateKey(StartOfDay(ts)); got != "2026-10-17" {
		t.Fatalf("unexpected date key %q", got)
	}
	if end := EndOfDay(ts); end.Hour() != 23 || end.Day() != 17 {
		t.Fatalf("unexpected end of day %v", end)
	}
	if ClockKey(ts) != "18:45" {
		t.Fatalf("unexpected clock key %q", ClockKey(ts))
	}
	if !IsWeekend(ts) {
		t.Fatalf("expected %v to be a weekend", ts)
	}
	if !IsValidClock("08:00") || IsValidClock("8:00") || IsValidClock("25:00") {
		t.Fatalf("clock validation mismatch")
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
