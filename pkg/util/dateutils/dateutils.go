package dateutils

import "time"

// DateLayout is the calendar date layout used for day buckets.
const DateLayout = "2006-01-02"

// StartOfDay returns midnight of the given time in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given time's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DateKey formats the calendar date of t.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ClockKey formats the wall clock of t as HH:MM.
func ClockKey(t time.Time) string {
	return t.Format("15:04")
}

// IsValidClock reports whether s is a HH:MM wall clock value.
func IsValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	weekday := t.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}
