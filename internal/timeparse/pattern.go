package timeparse

import (
	"context"
	"strings"
	"time"
)

// weekdayTokens lists weekday names and abbreviations in Monday-first order.
// Full names come before their abbreviation so the longer token is reported.
var weekdayTokens = []struct {
	token string
	day   time.Weekday
}{
	{"monday", time.Monday}, {"mon", time.Monday},
	{"tuesday", time.Tuesday}, {"tue", time.Tuesday},
	{"wednesday", time.Wednesday}, {"wed", time.Wednesday},
	{"thursday", time.Thursday}, {"thu", time.Thursday},
	{"friday", time.Friday}, {"fri", time.Friday},
	{"saturday", time.Saturday}, {"sat", time.Saturday},
	{"sunday", time.Sunday}, {"sun", time.Sunday},
}

// explicitDateLayouts are the numeric formats accepted verbatim.
var explicitDateLayouts = []string{
	DateLayout, // 2026-03-05
	"1/2/2006", // 03/05/2026, 3/5/2026
	"1-2-2006", // 03-05-2026
}

// PatternMatcher resolves the small set of expressions that never need a
// library or a model: relative day keywords, "next/this week", explicit
// numeric dates and weekday names.
//
// Weekday names are matched by substring anywhere in the text, so callers
// must pass an isolated date expression ("wedding" contains "wed").
type PatternMatcher struct{}

// Name implements DateResolver.
func (PatternMatcher) Name() string { return "patterns" }

// ResolveDate implements DateResolver.
func (m PatternMatcher) ResolveDate(_ context.Context, text string, now time.Time) (time.Time, bool) {
	return m.Match(text, now)
}

// Match returns the date for text relative to now, or false when no rule applies.
func (PatternMatcher) Match(text string, now time.Time) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return time.Time{}, false
	}

	today := startOfDay(now)

	switch s {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "yesterday":
		return today.AddDate(0, 0, -1), true
	case "next week", "this week":
		return today.AddDate(0, 0, daysUntil(now.Weekday(), time.Monday)), true
	}

	for _, layout := range explicitDateLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, true
		}
	}

	// "next friday" resolves exactly like "friday"; the prefix is only phrasing.
	dayPart := strings.TrimPrefix(s, "next ")
	for _, wd := range weekdayTokens {
		if strings.Contains(dayPart, wd.token) {
			return today.AddDate(0, 0, daysUntil(now.Weekday(), wd.day)), true
		}
	}

	return time.Time{}, false
}

// daysUntil returns how many days ahead the next target weekday is.
// A same-day match is always a full week away.
func daysUntil(from, target time.Weekday) int {
	days := (int(target) - int(from) + 7) % 7
	if days == 0 {
		days = 7
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
