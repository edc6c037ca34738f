package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDuplicateEvent is returned by FindDuplicate when an event with the same
// title and start was already created on the backend.
var ErrDuplicateEvent = errors.New("event already created")

// CreatedEvent is a ledger row for an event plancast created on a backend.
type CreatedEvent struct {
	ID          int64     `json:"id"`
	Backend     string    `json:"backend"`
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	RequestText string    `json:"request_text,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	CreatedAt   time.Time `json:"created_at"`
}

func titleKey(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// RecordEvent stores a created event. Recording the same backend event twice
// updates the existing row.
func (d *DB) RecordEvent(event *CreatedEvent) (*CreatedEvent, error) {
	if event.Backend == "" || event.EventID == "" {
		return nil, fmt.Errorf("backend and event id are required")
	}

	_, err := d.Exec(`
		INSERT INTO created_events (backend, event_id, title, title_key, start_utc, end_utc, location, request_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(backend, event_id) DO UPDATE SET
			title = excluded.title,
			title_key = excluded.title_key,
			start_utc = excluded.start_utc,
			end_utc = excluded.end_utc,
			location = excluded.location,
			request_text = excluded.request_text
	`,
		event.Backend, event.EventID, event.Title, titleKey(event.Title),
		formatInstant(event.Start), formatInstant(event.End), event.Location, event.RequestText,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}

	return d.getByEventID(event.Backend, event.EventID)
}

// FindDuplicate looks for an event on backend with the same title (ignoring
// case and spacing) starting at the same instant. It returns the existing row
// together with ErrDuplicateEvent, or (nil, nil) when there is none.
func (d *DB) FindDuplicate(backend, title string, start time.Time) (*CreatedEvent, error) {
	row := d.QueryRow(`
		SELECT id, backend, event_id, title, location, request_text, start_utc, end_utc, created_at
		FROM created_events
		WHERE backend = ? AND title_key = ? AND start_utc = ?
		ORDER BY id DESC
		LIMIT 1
	`, backend, titleKey(title), formatInstant(start))

	existing, err := scanCreatedEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up duplicate: %w", err)
	}
	return existing, ErrDuplicateEvent
}

// ListCreatedEvents returns the most recently created events first.
func (d *DB) ListCreatedEvents(limit int) ([]CreatedEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := d.Query(`
		SELECT id, backend, event_id, title, location, request_text, start_utc, end_utc, created_at
		FROM created_events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list created events: %w", err)
	}
	defer rows.Close()

	var events []CreatedEvent
	for rows.Next() {
		event, err := scanCreatedEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan created event: %w", err)
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

// DeleteEvent removes a ledger row, typically after the backend reports the
// event no longer exists.
func (d *DB) DeleteEvent(id int64) error {
	_, err := d.Exec(`DELETE FROM created_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete created event: %w", err)
	}
	return nil
}

func (d *DB) getByEventID(backend, eventID string) (*CreatedEvent, error) {
	row := d.QueryRow(`
		SELECT id, backend, event_id, title, location, request_text, start_utc, end_utc, created_at
		FROM created_events
		WHERE backend = ? AND event_id = ?
	`, backend, eventID)

	event, err := scanCreatedEvent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get created event: %w", err)
	}
	return event, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCreatedEvent(row rowScanner) (*CreatedEvent, error) {
	var (
		event      CreatedEvent
		start, end string
		location   sql.NullString
		request    sql.NullString
	)
	err := row.Scan(
		&event.ID, &event.Backend, &event.EventID, &event.Title,
		&location, &request, &start, &end, &event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Location = location.String
	event.RequestText = request.String
	if event.Start, err = time.Parse(time.RFC3339, start); err != nil {
		return nil, fmt.Errorf("invalid start_utc %q: %w", start, err)
	}
	if event.End, err = time.Parse(time.RFC3339, end); err != nil {
		return nil, fmt.Errorf("invalid end_utc %q: %w", end, err)
	}
	return &event, nil
}
