package icscal

import (
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/omriShneor/plancast/internal/calendar"
)

// maxOccurrences caps the expansion of a single recurring event.
const maxOccurrences = 500

// expand returns the occurrences of ev starting before rangeEnd. A
// non-recurring event is returned as is.
func expand(ev parsedEvent, rangeStart, rangeEnd time.Time, logger *zap.Logger) []calendar.Event {
	if ev.rrule == "" {
		return []calendar.Event{ev.Event}
	}

	r, err := rrule.StrToRRule(ev.rrule)
	if err != nil {
		logger.Warn("invalid RRULE, using first occurrence only",
			zap.String("id", ev.ID),
			zap.String("rrule", ev.rrule),
			zap.Error(err))
		return []calendar.Event{ev.Event}
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.exDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	duration := ev.End.Sub(ev.Start)
	// Start the search one duration early so occurrences already underway
	// at rangeStart are included.
	from := rangeStart.Add(-duration).In(ev.Start.Location())
	to := rangeEnd.In(ev.Start.Location())

	starts := set.Between(from, to, true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	out := make([]calendar.Event, 0, len(starts))
	for _, start := range starts {
		occ := ev.Event
		occ.Start = start
		if ev.AllDay {
			occ.End = start.AddDate(0, 0, int(duration.Hours()/24+0.5))
		} else {
			occ.End = start.Add(duration)
		}
		out = append(out, occ)
	}
	return out
}
