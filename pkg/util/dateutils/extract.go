package dateutils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dayKeywords are checked in order; the first one present in the text wins.
// 내일모레 must come before 내일 and 모레.
var dayKeywords = []struct {
	word   string
	offset int
}{
	{word: "내일모레", offset: 2},
	{word: "모레", offset: 2},
	{word: "내일", offset: 1},
	{word: "오늘", offset: 0},
}

var clockPattern = regexp.MustCompile(`(오전|오후)?\s*(\d{1,2})\s*시(?:\s*(\d{1,2})\s*분)?`)

// ExtractDueDate pulls one relative day keyword and one "[오전|오후] H시 [M분]" expression out of
// text. It returns the remaining text with whitespace collapsed and the resulting due date, or the
// original text and nil when nothing was recognized.
func ExtractDueDate(text string, now time.Time) (string, *time.Time) {
	remaining := text
	dayOffset := -1

	for _, keyword := range dayKeywords {
		if idx := strings.Index(remaining, keyword.word); idx >= 0 {
			dayOffset = keyword.offset
			remaining = remaining[:idx] + " " + remaining[idx+len(keyword.word):]
			break
		}
	}

	hour, minute, hasClock := -1, 0, false
	if loc := clockPattern.FindStringSubmatchIndex(remaining); loc != nil {
		match := clockPattern.FindStringSubmatch(remaining)
		if h, m, ok := toClock(match[1], match[2], match[3]); ok {
			hour, minute, hasClock = h, m, true
			remaining = remaining[:loc[0]] + " " + remaining[loc[1]:]
		}
	}

	if dayOffset < 0 && !hasClock {
		return text, nil
	}
	if dayOffset < 0 {
		dayOffset = 0
	}

	day := StartOfDay(now).AddDate(0, 0, dayOffset)
	if hasClock {
		day = time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
	}

	return strings.Join(strings.Fields(remaining), " "), &day
}

// toClock converts a meridiem marker, hour and optional minute into a 24h clock.
func toClock(meridiem, hourText, minuteText string) (int, int, bool) {
	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return 0, 0, false
	}
	minute := 0
	if minuteText != "" {
		if minute, err = strconv.Atoi(minuteText); err != nil {
			return 0, 0, false
		}
	}

	switch meridiem {
	case "오후":
		if hour < 12 {
			hour += 12
		}
	case "오전":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
