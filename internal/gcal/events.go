package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	cal "github.com/omriShneor/plancast/internal/calendar"
)

func parseGoogleEventTimes(item *calendar.Event, loc *time.Location) (time.Time, time.Time, bool, error) {
	if item == nil || item.Start == nil || item.End == nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event is missing start or end")
	}

	// All-day events use Date instead of DateTime.
	if item.Start.Date != "" {
		startDate, err := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day start date: %w", err)
		}
		endDate, err := time.ParseInLocation("2006-01-02", item.End.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day end date: %w", err)
		}
		return startDate, endDate, true, nil
	}

	if item.Start.DateTime == "" || item.End.DateTime == "" {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event datetime is missing")
	}

	startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse start datetime: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse end datetime: %w", err)
	}

	return startTime, endTime, false, nil
}

func toEvent(item *calendar.Event, loc *time.Location) (cal.Event, error) {
	start, end, allDay, err := parseGoogleEventTimes(item, loc)
	if err != nil {
		return cal.Event{}, err
	}

	attendees := make([]string, 0, len(item.Attendees))
	for _, attendee := range item.Attendees {
		if attendee != nil && attendee.Email != "" {
			attendees = append(attendees, attendee.Email)
		}
	}

	return cal.Event{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		Location:    item.Location,
		Start:       start,
		End:         end,
		AllDay:      allDay,
		Attendees:   attendees,
	}, nil
}

// CreateEvent creates a new event in Google Calendar
func (c *Client) CreateEvent(ctx context.Context, input cal.EventInput) (*cal.Event, error) {
	if err := c.requireService(); err != nil {
		return nil, err
	}

	// RFC3339 carries the offset; TimeZone names the zone for recurring display.
	event := &calendar.Event{
		Summary:     input.Title,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: c.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: c.timezone,
		},
	}

	// Add attendees if provided
	if len(input.Attendees) > 0 {
		attendees := make([]*calendar.EventAttendee, len(input.Attendees))
		for i, email := range input.Attendees {
			attendees[i] = &calendar.EventAttendee{Email: email}
		}
		event.Attendees = attendees
	}

	// SendUpdates sends notifications to attendees
	created, err := c.service.Events.Insert(c.calendarID, event).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	result, err := toEvent(created, input.Start.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to parse created event: %w", err)
	}
	return &result, nil
}

// GetEvent retrieves a single event from Google Calendar.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*cal.Event, error) {
	if err := c.requireService(); err != nil {
		return nil, err
	}
	if eventID == "" {
		return nil, fmt.Errorf("event id is required")
	}

	item, err := c.service.Events.Get(c.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && (gErr.Code == http.StatusNotFound || gErr.Code == http.StatusGone) {
			return nil, cal.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	// Cancelled means the event was deleted/cancelled on Google Calendar side.
	if item.Status == "cancelled" {
		return nil, cal.ErrEventNotFound
	}

	event, err := toEvent(item, time.Local)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event times: %w", err)
	}
	return &event, nil
}

// ListEvents returns events in a time window from Google Calendar.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int) ([]cal.Event, error) {
	if err := c.requireService(); err != nil {
		return nil, err
	}
	if !timeMax.IsZero() && timeMax.Before(timeMin) {
		return nil, fmt.Errorf("invalid range: time_max is before time_min")
	}

	var result []cal.Event
	pageToken := ""
	loc := timeMin.Location()

	for {
		call := c.service.Events.List(c.calendarID).
			TimeMin(timeMin.Format(time.RFC3339)).
			SingleEvents(true).
			ShowDeleted(false).
			OrderBy("startTime").
			Context(ctx)
		if !timeMax.IsZero() {
			call = call.TimeMax(timeMax.Format(time.RFC3339))
		}
		if maxResults > 0 {
			call = call.MaxResults(int64(maxResults - len(result)))
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		events, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events in range: %w", err)
		}

		for _, item := range events.Items {
			if item == nil || item.Status == "cancelled" {
				continue
			}

			event, parseErr := toEvent(item, loc)
			if parseErr != nil {
				// Skip malformed events rather than failing the whole request.
				continue
			}
			result = append(result, event)
		}

		if events.NextPageToken == "" || (maxResults > 0 && len(result) >= maxResults) {
			break
		}
		pageToken = events.NextPageToken
	}

	return result, nil
}
