package weather

import (
	"context"
	"errors"
)

// DefaultLocation is used when a request names no location.
const DefaultLocation = "New York"

// EventWeather is the forecast for the day of an event. Available is false
// when the date is outside the forecast window.
type EventWeather struct {
	Date      string
	Location  string
	Available bool
	Day       *Day
}

// ForEvent returns the forecast for an event on date (YYYY-MM-DD).
func (c *Client) ForEvent(ctx context.Context, date, location string) (*EventWeather, error) {
	if location == "" {
		location = DefaultLocation
	}

	result := &EventWeather{Date: date, Location: location}
	day, err := c.ForecastFor(ctx, location, date)
	if errors.Is(err, ErrNoForecast) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	result.Available = true
	result.Day = day
	return result, nil
}
