package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/omriShneor/plancast/internal/weather"
)

// MockWeather is a mock weather service
type MockWeather struct {
	mock.Mock
}

func (m *MockWeather) Current(ctx context.Context, location string) (*weather.Current, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weather.Current), args.Error(1)
}

func (m *MockWeather) ForecastFor(ctx context.Context, location, date string) (*weather.Day, error) {
	args := m.Called(ctx, location, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weather.Day), args.Error(1)
}

func (m *MockWeather) ForEvent(ctx context.Context, date, location string) (*weather.EventWeather, error) {
	args := m.Called(ctx, date, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weather.EventWeather), args.Error(1)
}
