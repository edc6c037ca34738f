package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/omriShneor/plancast/internal/calendar"
)

// MockCalendarBackend is a mock implementation of calendar.Backend
type MockCalendarBackend struct {
	mock.Mock
}

func (m *MockCalendarBackend) Name() string {
	return "mock"
}

func (m *MockCalendarBackend) ListEvents(ctx context.Context, from, to time.Time, maxResults int) ([]calendar.Event, error) {
	args := m.Called(ctx, from, to, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]calendar.Event), args.Error(1)
}

func (m *MockCalendarBackend) CreateEvent(ctx context.Context, input calendar.EventInput) (*calendar.Event, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Event), args.Error(1)
}

func (m *MockCalendarBackend) GetEvent(ctx context.Context, id string) (*calendar.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Event), args.Error(1)
}

func (m *MockCalendarBackend) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
