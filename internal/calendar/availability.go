package calendar

import (
	"context"
	"fmt"
	"time"
)

// DefaultSlot is the length of a checked time slot and of created events
// without an explicit end.
const DefaultSlot = time.Hour

// Availability is the result of an availability check.
type Availability struct {
	Start     time.Time
	End       time.Time
	Conflicts []Event
}

// Free reports whether nothing overlaps the checked range.
func (a Availability) Free() bool {
	return len(a.Conflicts) == 0
}

// DayBounds returns midnight of day and of the following day in day's location.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// Overlaps reports whether e intersects [start, end).
func Overlaps(e Event, start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}

// Conflicts returns the events intersecting [start, end).
func Conflicts(events []Event, start, end time.Time) []Event {
	var out []Event
	for _, e := range events {
		if Overlaps(e, start, end) {
			out = append(out, e)
		}
	}
	return out
}

// CheckDay reports every event on day.
func CheckDay(ctx context.Context, b Backend, day time.Time) (Availability, error) {
	start, end := DayBounds(day)
	return check(ctx, b, start, end)
}

// CheckSlot reports events intersecting [start, start+length). A
// non-positive length uses DefaultSlot.
func CheckSlot(ctx context.Context, b Backend, start time.Time, length time.Duration) (Availability, error) {
	if length <= 0 {
		length = DefaultSlot
	}
	return check(ctx, b, start, start.Add(length))
}

func check(ctx context.Context, b Backend, start, end time.Time) (Availability, error) {
	events, err := b.ListEvents(ctx, start, end, 0)
	if err != nil {
		return Availability{}, fmt.Errorf("failed to check availability: %w", err)
	}
	return Availability{
		Start:     start,
		End:       end,
		Conflicts: Conflicts(events, start, end),
	}, nil
}
