// Package icscal stores calendar events in a local iCalendar file.
package icscal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/omriShneor/plancast/internal/calendar"
)

const (
	productID = "-//plancast//plancast//EN"
	// Recurring events are expanded this far ahead when a listing has no end.
	openRangeHorizon = 365 * 24 * time.Hour
)

// Store is a calendar.Backend over a single .ics file. Recurring events are
// expanded into occurrences when listed.
type Store struct {
	path   string
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger

	mu sync.Mutex
}

// New creates a store for path. The file is created on first write. loc is
// used for floating and all-day times.
func New(path string, loc *time.Location, logger *zap.Logger) *Store {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, loc: loc, now: time.Now, logger: logger}
}

// Name implements calendar.Backend.
func (s *Store) Name() string { return "ics" }

// Ping implements calendar.Backend by parsing the file.
func (s *Store) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.load()
	return err
}

// ListEvents implements calendar.Backend.
func (s *Store) ListEvents(_ context.Context, from, to time.Time, maxResults int) ([]calendar.Event, error) {
	s.mu.Lock()
	cal, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	rangeEnd := to
	if rangeEnd.IsZero() {
		rangeEnd = from.Add(openRangeHorizon)
	}

	var result []calendar.Event
	for _, ve := range cal.Events() {
		parsed, err := s.parseEvent(ve)
		if err != nil {
			s.logger.Warn("skipping unreadable event", zap.String("path", s.path), zap.Error(err))
			continue
		}
		for _, occ := range expand(parsed, from, rangeEnd, s.logger) {
			if calendar.Overlaps(occ, from, rangeEnd) {
				result = append(result, occ)
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})
	if maxResults > 0 && len(result) > maxResults {
		result = result[:maxResults]
	}
	return result, nil
}

// GetEvent implements calendar.Backend.
func (s *Store) GetEvent(_ context.Context, id string) (*calendar.Event, error) {
	s.mu.Lock()
	cal, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	for _, ve := range cal.Events() {
		if ve.Id() != id {
			continue
		}
		parsed, err := s.parseEvent(ve)
		if err != nil {
			return nil, fmt.Errorf("failed to read event %s: %w", id, err)
		}
		return &parsed.Event, nil
	}
	return nil, calendar.ErrEventNotFound
}

// CreateEvent implements calendar.Backend.
func (s *Store) CreateEvent(_ context.Context, input calendar.EventInput) (*calendar.Event, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("event title is required")
	}
	if !input.End.After(input.Start) {
		return nil, fmt.Errorf("event must end after it starts")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cal, err := s.load()
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := s.now().UTC()

	ve := cal.AddEvent(id)
	ve.SetCreatedTime(now)
	ve.SetDtStampTime(now)
	ve.SetModifiedAt(now)
	ve.SetStartAt(input.Start)
	ve.SetEndAt(input.End)
	ve.SetSummary(input.Title)
	if input.Description != "" {
		ve.SetDescription(input.Description)
	}
	if input.Location != "" {
		ve.SetLocation(input.Location)
	}
	for _, email := range input.Attendees {
		ve.AddAttendee("mailto:" + email)
	}

	if err := s.save(cal); err != nil {
		return nil, err
	}

	s.logger.Debug("event written", zap.String("id", id), zap.String("path", s.path))

	return &calendar.Event{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Start:       input.Start,
		End:         input.End,
		Attendees:   append([]string(nil), input.Attendees...),
	}, nil
}

// load parses the file, treating a missing file as an empty calendar.
func (s *Store) load() (*ical.Calendar, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(bytes.TrimSpace(data)) == 0) {
		cal := ical.NewCalendar()
		cal.SetProductId(productID)
		return cal, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return cal, nil
}

// save writes cal through a temporary file so readers never see a partial file.
func (s *Store) save(cal *ical.Calendar) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".plancast-*.ics")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(cal.Serialize()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

type parsedEvent struct {
	calendar.Event
	rrule   string
	exDates []time.Time
}

func (s *Store) parseEvent(ve *ical.VEvent) (parsedEvent, error) {
	var out parsedEvent

	out.ID = ve.Id()
	if out.ID == "" {
		return out, errors.New("missing UID")
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, errors.New("missing DTSTART")
	}
	// VALUE=DATE or a value without a time part marks an all-day event.
	out.AllDay = !strings.Contains(dtStart.Value, "T")
	if vs, ok := dtStart.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		out.AllDay = true
	}

	if out.AllDay {
		day, err := time.ParseInLocation("20060102", strings.TrimSpace(dtStart.Value), s.loc)
		if err != nil {
			return out, fmt.Errorf("invalid all-day DTSTART: %w", err)
		}
		out.Start = day
		out.End = day.AddDate(0, 0, 1)
		if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
			if end, err := time.ParseInLocation("20060102", strings.TrimSpace(dtEnd.Value), s.loc); err == nil && end.After(day) {
				out.End = end
			}
		}
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return out, fmt.Errorf("invalid DTSTART: %w", err)
		}
		out.Start = start
		end, err := ve.GetEndAt()
		if err != nil || !end.After(start) {
			end = start.Add(calendar.DefaultSlot)
		}
		out.End = end
	}

	for _, a := range ve.Attendees() {
		if email := a.Email(); email != "" {
			out.Attendees = append(out.Attendees, email)
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.rrule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(strings.TrimSpace(part), s.loc); err == nil {
				out.exDates = append(out.exDates, t)
			}
		}
	}

	return out, nil
}

// parseICSTime parses the basic DATE and DATE-TIME forms used by EXDATE.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
