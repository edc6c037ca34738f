package gcal

import (
	"context"
	"fmt"
)

// CalendarInfo represents a Google Calendar
type CalendarInfo struct {
	ID         string `json:"id"`
	Summary    string `json:"summary"`
	Primary    bool   `json:"primary"`
	AccessRole string `json:"access_role"`
}

// ListCalendars returns all calendars the user has access to
func (c *Client) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	if err := c.requireService(); err != nil {
		return nil, err
	}

	list, err := c.service.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	var calendars []CalendarInfo
	for _, item := range list.Items {
		calendars = append(calendars, CalendarInfo{
			ID:         item.Id,
			Summary:    item.Summary,
			Primary:    item.Primary,
			AccessRole: item.AccessRole,
		})
	}

	return calendars, nil
}

// Ping implements calendar.Backend by fetching the configured calendar.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.requireService(); err != nil {
		return err
	}
	if _, err := c.service.CalendarList.Get(c.calendarID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to reach calendar %s: %w", c.calendarID, err)
	}
	return nil
}
