// Package calendar defines the calendar backend contract shared by the
// Google Calendar and local iCalendar implementations.
package calendar

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEventNotFound is returned when an event no longer exists on the backend.
	ErrEventNotFound = errors.New("calendar event not found")
	// ErrNotAuthenticated is returned when the backend has no usable credentials.
	ErrNotAuthenticated = errors.New("calendar not authenticated")
)

// Event is a single calendar entry. End is exclusive; all-day events span
// whole days from midnight.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Attendees   []string
}

// EventInput describes an event to create.
type EventInput struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Attendees   []string // Email addresses of attendees
}

// Backend is a calendar store.
type Backend interface {
	Name() string
	// ListEvents returns events overlapping [from, to) ordered by start time.
	// A zero to means no upper bound; maxResults <= 0 means no limit.
	ListEvents(ctx context.Context, from, to time.Time, maxResults int) ([]Event, error)
	CreateEvent(ctx context.Context, input EventInput) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	Ping(ctx context.Context) error
}

// IsEventNotFound returns true when an event no longer exists.
func IsEventNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}
