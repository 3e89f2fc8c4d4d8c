// Package timeutil holds the date and time-of-day helpers shared by the
// scheduling services. Dates travel as YYYY-MM-DD strings and times of day
// as HH:MM strings; interval arithmetic happens in minutes since midnight.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format for times of day
	TimeLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseDateOr parses a date string, falling back to the given default when
// the input is malformed. The boolean reports whether the fallback was
// used, so callers can tell a parsed date from a defaulted one.
func ParseDateOr(s string, fallback time.Time) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fallback, true
	}
	return t, false
}

// MinutesOfDay converts an HH:MM string to minutes since midnight
func MinutesOfDay(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes converts minutes since midnight back to an HH:MM string
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DisplayTime formats an HH:MM string for 12-hour display, e.g. "2:30 PM"
func DisplayTime(s string) string {
	m, err := MinutesOfDay(s)
	if err != nil {
		return s
	}
	hour, minute := m/60, m%60
	switch {
	case hour == 0:
		return fmt.Sprintf("12:%02d AM", minute)
	case hour < 12:
		return fmt.Sprintf("%d:%02d AM", hour, minute)
	case hour == 12:
		return fmt.Sprintf("12:%02d PM", minute)
	default:
		return fmt.Sprintf("%d:%02d PM", hour-12, minute)
	}
}

// WeekdayName returns the lowercase weekday name of a date, matching the
// keys of the business-hours configuration
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// MondayOfWeek returns the Monday of the week containing t, at midnight in
// t's location
func MondayOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// MonthBounds returns the first and last date of the month containing t
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// LoadLocation resolves a timezone identifier, falling back to UTC when
// the identifier is unknown
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
