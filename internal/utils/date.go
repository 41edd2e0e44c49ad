package utils

import "time"

// DayKey returns the local calendar-date key for t in the given location,
// formatted exactly as YYYY-MM-DD. Every consumer that re-derives a daily
// bucket key must use this same derivation; the key is computed from
// local wall-clock time, not UTC.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2006-01-02")
}

// HourOfDay returns t's hour bucket (0-23) in the given location.
func HourOfDay(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Hour()
}

// DayOfWeek returns t's weekday bucket (0=Sunday..6=Saturday) in the
// given location.
func DayOfWeek(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	return int(t.In(loc).Weekday())
}
