package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"00:00", 0},
		{"07:00", 420},
		{"09:30", 570},
		{"12:00", 720},
		{"17:00", 1020},
		{"23:59", 1439},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			m, err := MinutesOfDay(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, m)
		})
	}
}

func TestMinutesOfDayInvalid(t *testing.T) {
	for _, input := range []string{"", "25:00", "9am", "12:60", "noon"} {
		t.Run(input, func(t *testing.T) {
			_, err := MinutesOfDay(input)
			assert.Error(t, err)
		})
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "07:30", "12:00", "16:45", "23:59"} {
		m, err := MinutesOfDay(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatMinutes(m))
	}
}

func TestDisplayTime(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"00:15", "12:15 AM"},
		{"09:00", "9:00 AM"},
		{"12:00", "12:00 PM"},
		{"14:30", "2:30 PM"},
		{"23:05", "11:05 PM"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, DisplayTime(tc.input))
		})
	}
}

func TestDisplayTimePassesThroughMalformedInput(t *testing.T) {
	assert.Equal(t, "soon", DisplayTime("soon"))
}

func TestParseDateOr(t *testing.T) {
	fallback := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	parsed, defaulted := ParseDateOr("2025-07-15", fallback)
	assert.False(t, defaulted)
	assert.Equal(t, "2025-07-15", parsed.Format(DateLayout))

	parsed, defaulted = ParseDateOr("not-a-date", fallback)
	assert.True(t, defaulted)
	assert.Equal(t, fallback, parsed)

	_, defaulted = ParseDateOr("", fallback)
	assert.True(t, defaulted)
}

func TestWeekdayName(t *testing.T) {
	// 2025-06-16 is a Monday
	day, err := ParseDate("2025-06-16")
	require.NoError(t, err)
	assert.Equal(t, "monday", WeekdayName(day))
	assert.Equal(t, "sunday", WeekdayName(day.AddDate(0, 0, 6)))
}

func TestMondayOfWeek(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2025-06-16", "2025-06-16"}, // Monday maps to itself
		{"2025-06-18", "2025-06-16"}, // Wednesday
		{"2025-06-22", "2025-06-16"}, // Sunday belongs to the preceding Monday
		{"2025-06-23", "2025-06-23"}, // next Monday
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			day, err := ParseDate(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, MondayOfWeek(day).Format(DateLayout))
		})
	}
}

func TestMonthBounds(t *testing.T) {
	day := time.Date(2025, 2, 14, 10, 30, 0, 0, time.UTC)
	first, last := MonthBounds(day)
	assert.Equal(t, "2025-02-01", first.Format(DateLayout))
	assert.Equal(t, "2025-02-28", last.Format(DateLayout))

	day = time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	_, last = MonthBounds(day)
	assert.Equal(t, "2024-02-29", last.Format(DateLayout))
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))
	loc := LoadLocation("Pacific/Honolulu")
	assert.Equal(t, "Pacific/Honolulu", loc.String())
}
