package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/omriShneor/plancast/internal/agent"
	"github.com/omriShneor/plancast/internal/calendar"
	"github.com/omriShneor/plancast/internal/database"
	"github.com/omriShneor/plancast/internal/timeparse"
	"github.com/omriShneor/plancast/internal/timeutil"
)

// maxListResults caps event listings.
const maxListResults = 10

// GetCalendarEventsTool lists events for a day or the upcoming events
var GetCalendarEventsTool = agent.Tool{
	Name: "get_calendar_events",
	Description: `Get calendar events for a specific date or upcoming events. Use this once to get
events, then respond to the user. The date can be 'today', 'tomorrow', a weekday, '2024-01-15'
or any natural phrase; leave it empty (or use 'upcoming', 'this week', 'next week') for the next
upcoming events.`,
	InputSchema: agent.BuildJSONSchema("object", map[string]any{
		"date": agent.PropertyString("Date to list, e.g. 'today', 'friday', '2024-01-15'. Optional."),
	}, nil),
}

// CreateCalendarEventTool creates a new calendar event
var CreateCalendarEventTool = agent.Tool{
	Name: "create_calendar_event",
	Description: `Create a new calendar event. Title and date are required. The time defaults to 9am
and the event lasts one hour unless duration_minutes is given. A timezone suffix on the time
(PST, EST, UTC) places the event in that zone. Attendees are e-mail addresses.`,
	InputSchema: agent.BuildJSONSchema("object", map[string]any{
		"title":            agent.PropertyString("Event title, e.g. 'Team Meeting'"),
		"date":             agent.PropertyString("Event date, e.g. 'today', 'next monday', '2024-01-15'"),
		"time":             agent.PropertyString("Start time, e.g. '3pm', '14:30', '3pm PST'. Optional."),
		"location":         agent.PropertyString("Event location. Optional."),
		"description":      agent.PropertyString("Event description. Optional."),
		"attendees":        agent.PropertyArray("Attendee e-mail addresses. Optional.", agent.PropertyString("E-mail address")),
		"duration_minutes": agent.PropertyInt("Event length in minutes. Optional, defaults to 60."),
		"allow_duplicate":  agent.PropertyBool("Create even if the same event was already created. Optional."),
	}, []string{"title", "date"}),
}

// CheckAvailabilityTool checks a whole day or a one-hour slot for conflicts
var CheckAvailabilityTool = agent.Tool{
	Name: "check_calendar_availability",
	Description: `Check if a time slot is available on a specific date. Use this once to check
availability, then respond to the user. Without a time slot the whole day is checked; with one,
the hour starting at that time is checked.`,
	InputSchema: agent.BuildJSONSchema("object", map[string]any{
		"date":      agent.PropertyString("Date to check, e.g. 'tomorrow'"),
		"time_slot": agent.PropertyString("Start of the one-hour slot, e.g. '2pm'. Optional."),
	}, []string{"date"}),
}

// GetEventsRequest is the input of get_calendar_events
type GetEventsRequest struct {
	Date string `json:"date,omitempty"`
}

// CreateEventRequest is the input of create_calendar_event
type CreateEventRequest struct {
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	Time            string   `json:"time,omitempty"`
	Location        string   `json:"location,omitempty"`
	Description     string   `json:"description,omitempty"`
	Attendees       []string `json:"attendees,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	AllowDuplicate  bool     `json:"allow_duplicate,omitempty"`
}

// CheckAvailabilityRequest is the input of check_calendar_availability
type CheckAvailabilityRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot,omitempty"`
}

func isUpcoming(date string) bool {
	switch strings.ToLower(date) {
	case "", "upcoming", "this week", "next week":
		return true
	}
	return false
}

// HandleGetCalendarEvents processes the get_calendar_events tool call
func (t *Toolset) HandleGetCalendarEvents(ctx context.Context, input map[string]any) (string, error) {
	req, err := agent.DecodeInput[GetEventsRequest](input)
	if err != nil {
		return "", err
	}

	dateInput := cleanInput(req.Date)
	loc := t.location()

	var events []calendar.Event
	if isUpcoming(dateInput) {
		events, err = t.calendar.ListEvents(ctx, t.now(), time.Time{}, maxListResults)
	} else {
		date, ok := t.resolveDate(ctx, dateInput)
		if !ok {
			return invalidDate(dateInput), nil
		}
		day, parseErr := time.ParseInLocation(timeutil.DateLayout, date, loc)
		if parseErr != nil {
			return invalidDate(dateInput), nil
		}
		start, end := calendar.DayBounds(day)
		events, err = t.calendar.ListEvents(ctx, start, end, maxListResults)
	}
	if err != nil {
		return fmt.Sprintf("Error getting calendar events: %v", err), nil
	}

	if len(events) == 0 {
		desc := dateInput
		if desc == "" {
			desc = "upcoming time"
		}
		return fmt.Sprintf("No events found for %s.", desc), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d events", len(events))
	if dateInput != "" {
		fmt.Fprintf(&b, " for %s", dateInput)
	}
	b.WriteString(":")
	for _, e := range events {
		fmt.Fprintf(&b, "\n- %s at %s", e.Title, formatEventStart(e, loc))
		if e.Location != "" {
			fmt.Fprintf(&b, " (%s)", e.Location)
		}
	}
	return b.String(), nil
}

// HandleCreateCalendarEvent processes the create_calendar_event tool call
func (t *Toolset) HandleCreateCalendarEvent(ctx context.Context, input map[string]any) (string, error) {
	req, err := agent.DecodeInput[CreateEventRequest](input)
	if err != nil {
		return "", err
	}

	title := cleanInput(req.Title)
	dateInput := cleanInput(req.Date)
	timeInput := cleanInput(req.Time)
	if title == "" || dateInput == "" {
		return "", fmt.Errorf("title and date are required")
	}
	if req.DurationMinutes < 0 {
		return "", fmt.Errorf("duration_minutes must not be negative")
	}

	date, ok := t.resolveDate(ctx, dateInput)
	if !ok {
		return invalidDate(dateInput), nil
	}

	clock := ""
	if timeInput != "" {
		if clock, ok = t.resolveTime(timeInput); !ok {
			return invalidTime(timeInput), nil
		}
	}

	timezone := t.eventTimezone
	if hint, ok := timeparse.DetectTimezone(timeInput); ok {
		timezone = hint
	}

	start, fallback, err := timeutil.Combine(date, clock, timezone)
	if err != nil {
		return fmt.Sprintf("Error creating calendar event: %v", err), nil
	}
	if fallback {
		t.logger.Warn("unknown event timezone, using UTC", zap.String("timezone", timezone))
	}

	duration := calendar.DefaultSlot
	if req.DurationMinutes > 0 {
		duration = time.Duration(req.DurationMinutes) * time.Minute
	}

	if !req.AllowDuplicate {
		if existing := t.findDuplicate(ctx, title, start); existing != nil {
			return fmt.Sprintf("⚠️ Event already exists: %s on %s", existing.Title, formatEventStart(*existing, start.Location())), nil
		}
	}

	event, err := t.calendar.CreateEvent(ctx, calendar.EventInput{
		Title:       title,
		Description: req.Description,
		Location:    cleanInput(req.Location),
		Start:       start,
		End:         start.Add(duration),
		Attendees:   cleanAttendees(req.Attendees),
	})
	if err != nil {
		t.logger.Error("failed to create event", zap.String("title", title), zap.Error(err))
		return fmt.Sprintf("❌ Failed to create event: %v", err), nil
	}

	t.record(event, dateInput, timeInput)

	return fmt.Sprintf("✅ Event created: %s on %s", event.Title, formatEventStart(*event, start.Location())), nil
}

func cleanAttendees(attendees []string) []string {
	var out []string
	for _, a := range attendees {
		for _, part := range strings.Split(a, ",") {
			if email := strings.TrimSpace(part); email != "" {
				out = append(out, email)
			}
		}
	}
	return out
}

// findDuplicate returns the backend event a previous request already created
// with the same title and start. Ledger rows whose event was removed from the
// backend are dropped.
func (t *Toolset) findDuplicate(ctx context.Context, title string, start time.Time) *calendar.Event {
	if t.ledger == nil {
		return nil
	}

	existing, err := t.ledger.FindDuplicate(t.calendar.Name(), title, start)
	if !errors.Is(err, database.ErrDuplicateEvent) {
		if err != nil {
			t.logger.Warn("duplicate lookup failed", zap.Error(err))
		}
		return nil
	}

	event, err := t.calendar.GetEvent(ctx, existing.EventID)
	if calendar.IsEventNotFound(err) {
		if delErr := t.ledger.DeleteEvent(existing.ID); delErr != nil {
			t.logger.Warn("failed to drop stale ledger row", zap.Int64("id", existing.ID), zap.Error(delErr))
		}
		return nil
	}
	if err != nil {
		t.logger.Warn("failed to verify duplicate", zap.String("event_id", existing.EventID), zap.Error(err))
		return nil
	}
	return event
}

func (t *Toolset) record(event *calendar.Event, dateInput, timeInput string) {
	if t.ledger == nil {
		return
	}
	_, err := t.ledger.RecordEvent(&database.CreatedEvent{
		Backend:     t.calendar.Name(),
		EventID:     event.ID,
		Title:       event.Title,
		Location:    event.Location,
		RequestText: strings.TrimSpace(dateInput + " " + timeInput),
		Start:       event.Start,
		End:         event.End,
	})
	if err != nil {
		t.logger.Warn("failed to record created event", zap.String("event_id", event.ID), zap.Error(err))
	}
}

// HandleCheckAvailability processes the check_calendar_availability tool call
func (t *Toolset) HandleCheckAvailability(ctx context.Context, input map[string]any) (string, error) {
	req, err := agent.DecodeInput[CheckAvailabilityRequest](input)
	if err != nil {
		return "", err
	}

	dateInput := cleanInput(req.Date)
	slotInput := cleanInput(req.TimeSlot)
	if dateInput == "" {
		return "", fmt.Errorf("date is required")
	}

	date, ok := t.resolveDate(ctx, dateInput)
	if !ok {
		return invalidDate(dateInput), nil
	}

	var (
		availability calendar.Availability
		slot         string
	)
	if slotInput != "" {
		if slot, ok = t.resolveTime(slotInput); !ok {
			return invalidTime(slotInput), nil
		}
		start, _, combineErr := timeutil.Combine(date, slot, t.eventTimezone)
		if combineErr != nil {
			return fmt.Sprintf("Error checking availability: %v", combineErr), nil
		}
		availability, err = calendar.CheckSlot(ctx, t.calendar, start, calendar.DefaultSlot)
	} else {
		day, parseErr := time.ParseInLocation(timeutil.DateLayout, date, t.location())
		if parseErr != nil {
			return invalidDate(dateInput), nil
		}
		availability, err = calendar.CheckDay(ctx, t.calendar, day)
	}
	if err != nil {
		return fmt.Sprintf("Error checking availability: %v", err), nil
	}

	var b strings.Builder
	if availability.Free() {
		fmt.Fprintf(&b, "✅ %s is available", dateInput)
	} else {
		fmt.Fprintf(&b, "❌ %s is not available", dateInput)
	}
	if slot != "" {
		fmt.Fprintf(&b, " for %s", slot)
	}
	if !availability.Free() {
		fmt.Fprintf(&b, " (conflicts with %d events)", len(availability.Conflicts))
	}
	return b.String(), nil
}
