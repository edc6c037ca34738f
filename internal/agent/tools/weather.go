package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/omriShneor/plancast/internal/agent"
	"github.com/omriShneor/plancast/internal/weather"
)

// GetCurrentWeatherTool reports current conditions
var GetCurrentWeatherTool = agent.Tool{
	Name:        "get_current_weather",
	Description: `Get current weather for a location. The location is a city name like 'New York' or 'London'; it defaults to the configured home location.`,
	InputSchema: agent.BuildJSONSchema("object", map[string]any{
		"location": agent.PropertyString("City name. Optional."),
	}, nil),
}

// GetWeatherForecastTool reports the forecast for a date
var GetWeatherForecastTool = agent.Tool{
	Name: "get_weather_forecast",
	Description: `Get weather forecast for a specific date and location. Use this once to get the
forecast, then respond to the user. Without a date the current weather is returned. Forecasts
cover the next three days.`,
	InputSchema: agent.BuildJSONSchema("object", map[string]any{
		"location": agent.PropertyString("City name. Optional."),
		"date":     agent.PropertyString("Forecast date, e.g. 'tomorrow'. Optional."),
	}, nil),
}

// CheckWeatherForEventTool summarizes the weather on an event's day
var CheckWeatherForEventTool = agent.Tool{
	Name:        "check_weather_for_event",
	Description: `Check weather for a specific event date and location, including the chance of rain.`,
	InputSchema: agent.BuildJSONSchema("object", map[string]any{
		"date":     agent.PropertyString("Event date, e.g. 'tomorrow'"),
		"location": agent.PropertyString("City name. Optional."),
	}, []string{"date"}),
}

// WeatherRequest is the input of the weather tools
type WeatherRequest struct {
	Location string `json:"location,omitempty"`
	Date     string `json:"date,omitempty"`
}

func (t *Toolset) weatherRequest(input map[string]any) (WeatherRequest, error) {
	req, err := agent.DecodeInput[WeatherRequest](input)
	if err != nil {
		return req, err
	}
	req.Location = cleanInput(req.Location)
	req.Date = cleanInput(req.Date)
	if req.Location == "" {
		req.Location = t.defaultLocation
	}
	return req, nil
}

// HandleGetCurrentWeather processes the get_current_weather tool call
func (t *Toolset) HandleGetCurrentWeather(ctx context.Context, input map[string]any) (string, error) {
	req, err := t.weatherRequest(input)
	if err != nil {
		return "", err
	}

	current, err := t.weather.Current(ctx, req.Location)
	if err != nil {
		return fmt.Sprintf("Error getting weather: %v", err), nil
	}

	return fmt.Sprintf("Current weather in %s: %.1f°C, %s, Humidity: %d%%, Wind: %.1f km/h",
		req.Location, current.TempC, current.Condition, current.Humidity, current.WindKph), nil
}

// HandleGetWeatherForecast processes the get_weather_forecast tool call
func (t *Toolset) HandleGetWeatherForecast(ctx context.Context, input map[string]any) (string, error) {
	req, err := t.weatherRequest(input)
	if err != nil {
		return "", err
	}

	if req.Date == "" {
		current, err := t.weather.Current(ctx, req.Location)
		if err != nil {
			return fmt.Sprintf("Error getting weather forecast: %v", err), nil
		}
		return fmt.Sprintf("Weather forecast for %s: %.1f°C, %s", req.Location, current.TempC, current.Condition), nil
	}

	date, ok := t.resolveDate(ctx, req.Date)
	if !ok {
		return invalidDate(req.Date), nil
	}

	day, err := t.weather.ForecastFor(ctx, req.Location, date)
	if errors.Is(err, weather.ErrNoForecast) {
		return fmt.Sprintf("Weather forecast unavailable for %s", req.Location), nil
	}
	if err != nil {
		return fmt.Sprintf("Error getting weather forecast: %v", err), nil
	}

	return fmt.Sprintf("Weather forecast for %s on %s: %.1f°C, %s, %d%% chance of rain",
		req.Location, req.Date, day.AvgTempC, day.Condition, day.ChanceOfRain), nil
}

// HandleCheckWeatherForEvent processes the check_weather_for_event tool call
func (t *Toolset) HandleCheckWeatherForEvent(ctx context.Context, input map[string]any) (string, error) {
	req, err := t.weatherRequest(input)
	if err != nil {
		return "", err
	}
	if req.Date == "" {
		return "", fmt.Errorf("date is required")
	}

	date, ok := t.resolveDate(ctx, req.Date)
	if !ok {
		return invalidDate(req.Date), nil
	}

	forecast, err := t.weather.ForEvent(ctx, date, req.Location)
	if err != nil {
		return fmt.Sprintf("Error checking weather for event: %v", err), nil
	}
	if !forecast.Available {
		return fmt.Sprintf("Weather information unavailable for %s in %s", req.Date, req.Location), nil
	}

	day := forecast.Day
	return fmt.Sprintf("Weather for %s in %s: %.1f°C, %s, %d%% chance of rain, Humidity: %.0f%%",
		req.Date, req.Location, day.AvgTempC, day.Condition, day.ChanceOfRain, day.AvgHumidity), nil
}
