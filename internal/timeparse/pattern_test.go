package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-14 is a Wednesday.
var wednesdayNoon = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func TestPatternMatcher_RelativeKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "today", input: "today", expected: "2026-10-14"},
		{name: "tomorrow", input: "tomorrow", expected: "2026-10-15"},
		{name: "yesterday", input: "yesterday", expected: "2026-10-13"},
		{name: "case and whitespace", input: "  ToMorrow ", expected: "2026-10-15"},
		{name: "next week is the following monday", input: "next week", expected: "2026-10-19"},
		{name: "this week is the following monday", input: "this week", expected: "2026-10-19"},
		{name: "iso date", input: "2026-12-01", expected: "2026-12-01"},
		{name: "us slash date", input: "12/01/2026", expected: "2026-12-01"},
		{name: "us slash date without padding", input: "3/5/2027", expected: "2027-03-05"},
		{name: "us dash date", input: "12-01-2026", expected: "2026-12-01"},
		{name: "weekday", input: "friday", expected: "2026-10-16"},
		{name: "weekday abbreviation", input: "mon", expected: "2026-10-19"},
		{name: "weekday with next", input: "next friday", expected: "2026-10-16"},
		{name: "weekday inside phrase", input: "friday afternoon", expected: "2026-10-16"},
		{name: "sunday", input: "Sunday", expected: "2026-10-18"},
	}

	var m PatternMatcher
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Match(tt.input, wednesdayNoon)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got.Format(DateLayout))
		})
	}
}

func TestPatternMatcher_NoMatch(t *testing.T) {
	var m PatternMatcher
	for _, input := range []string{"", "   ", "zzz", "in three days", "2026-13-45", "next"} {
		_, ok := m.Match(input, wednesdayNoon)
		assert.False(t, ok, "input %q", input)
	}
}

func TestPatternMatcher_SameWeekdayAdvancesFullWeek(t *testing.T) {
	var m PatternMatcher
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

	// Start on Monday 2026-10-12 and walk the week so every weekday meets itself.
	start := time.Date(2026, 10, 12, 8, 30, 0, 0, time.UTC)
	for i, day := range days {
		now := start.AddDate(0, 0, i)
		require.Equal(t, day, lowerWeekday(now))

		got, ok := m.Match(day, now)
		require.True(t, ok, day)
		assert.Equal(t, now.AddDate(0, 0, 7).Format(DateLayout), got.Format(DateLayout), day)

		got, ok = m.Match(day[:3], now)
		require.True(t, ok, day[:3])
		assert.Equal(t, now.AddDate(0, 0, 7).Format(DateLayout), got.Format(DateLayout), day[:3])
	}
}

func TestPatternMatcher_NextWeekOnMonday(t *testing.T) {
	var m PatternMatcher
	monday := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)

	got, ok := m.Match("next week", monday)
	require.True(t, ok)
	assert.Equal(t, "2026-10-19", got.Format(DateLayout))
}

func TestPatternMatcher_NextPrefixDoesNotSkipWeek(t *testing.T) {
	var m PatternMatcher
	for i := 0; i < 7; i++ {
		now := wednesdayNoon.AddDate(0, 0, i)
		plain, ok := m.Match("monday", now)
		require.True(t, ok)
		prefixed, ok := m.Match("next monday", now)
		require.True(t, ok)
		assert.Equal(t, plain, prefixed)
	}
}

func TestPatternMatcher_KeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// 23:30 in Los Angeles is already the next day in UTC.
	now := time.Date(2026, 10, 14, 23, 30, 0, 0, loc)
	var m PatternMatcher
	got, ok := m.Match("today", now)
	require.True(t, ok)
	assert.Equal(t, "2026-10-14", got.Format(DateLayout))
}

func lowerWeekday(t time.Time) string {
	switch t.Weekday() {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}
