package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockTimeRe    = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)?`)
	meridiemTimeRe = regexp.MustCompile(`(?:^|[^\d:])(\d{1,2})\s*(am|pm)`)
	compactTimeRe  = regexp.MustCompile(`(\d{4})`)
)

// ExtractTime finds the first time of day in text and returns it as HH:MM.
//
// Recognised forms, in priority order: "3:30", "3:30pm", "3pm", "3 pm",
// "1530". Candidates outside 00:00-23:59 are skipped. The meridiem form never
// starts inside a clock token, so "13:00pm" is absent rather than "12:00".
func ExtractTime(text string) (string, bool) {
	s := strings.ToLower(text)

	if m := clockTimeRe.FindStringSubmatch(s); m != nil {
		if hm, ok := toClock(atoi(m[1]), atoi(m[2]), m[3]); ok {
			return hm, true
		}
	}

	if m := meridiemTimeRe.FindStringSubmatch(s); m != nil {
		if hm, ok := toClock(atoi(m[1]), 0, m[2]); ok {
			return hm, true
		}
	}

	if m := compactTimeRe.FindStringSubmatch(s); m != nil {
		if hm, ok := toClock(atoi(m[1][:2]), atoi(m[1][2:]), ""); ok {
			return hm, true
		}
	}

	return "", false
}

// toClock applies the meridiem and validates the result.
// "12am" is midnight and "12pm" is noon.
func toClock(hour, minute int, meridiem string) (string, bool) {
	switch {
	case meridiem == "pm" && hour != 12:
		hour += 12
	case meridiem == "am" && hour == 12:
		hour = 0
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
