package tools

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/omriShneor/plancast/internal/mocks"
	"github.com/omriShneor/plancast/internal/weather"
)

func newWeatherToolset(ws *mocks.MockWeather) *Toolset {
	return New(Options{
		Resolver: testResolver(),
		Weather:  ws,
		Clock:    func() time.Time { return wednesdayNoon },
	})
}

func TestHandleGetCurrentWeather(t *testing.T) {
	t.Run("default location", func(t *testing.T) {
		ws := new(mocks.MockWeather)
		ws.On("Current", mock.Anything, "New York").Return(&weather.Current{
			Location:  "New York",
			TempC:     21.5,
			Condition: "Sunny",
			Humidity:  40,
			WindKph:   10,
		}, nil)

		out, err := newWeatherToolset(ws).HandleGetCurrentWeather(context.Background(), map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "Current weather in New York: 21.5°C, Sunny, Humidity: 40%, Wind: 10.0 km/h", out)
	})

	t.Run("backend failure", func(t *testing.T) {
		ws := new(mocks.MockWeather)
		ws.On("Current", mock.Anything, "London").Return(nil, weather.ErrNoAPIKey)

		out, err := newWeatherToolset(ws).HandleGetCurrentWeather(context.Background(), map[string]any{"location": "'London'"})
		require.NoError(t, err)
		assert.Equal(t, "Error getting weather: WEATHERAPI_API_KEY is not set", out)
	})
}

func TestHandleGetWeatherForecast(t *testing.T) {
	t.Run("resolved date", func(t *testing.T) {
		ws := new(mocks.MockWeather)
		ws.On("ForecastFor", mock.Anything, "London", "2026-10-15").Return(&weather.Day{
			Location:     "London",
			Date:         "2026-10-15",
			AvgTempC:     11,
			Condition:    "Light rain",
			ChanceOfRain: 80,
		}, nil)

		out, err := newWeatherToolset(ws).HandleGetWeatherForecast(context.Background(), map[string]any{
			"location": "London",
			"date":     "tomorrow",
		})
		require.NoError(t, err)
		assert.Equal(t, "Weather forecast for London on tomorrow: 11.0°C, Light rain, 80% chance of rain", out)
	})

	t.Run("no date uses current conditions", func(t *testing.T) {
		ws := new(mocks.MockWeather)
		ws.On("Current", mock.Anything, "Paris").Return(&weather.Current{TempC: 17, Condition: "Overcast"}, nil)

		out, err := newWeatherToolset(ws).HandleGetWeatherForecast(context.Background(), map[string]any{"location": "Paris"})
		require.NoError(t, err)
		assert.Equal(t, "Weather forecast for Paris: 17.0°C, Overcast", out)
		ws.AssertNotCalled(t, "ForecastFor", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("outside forecast window", func(t *testing.T) {
		ws := new(mocks.MockWeather)
		ws.On("ForecastFor", mock.Anything, "London", "2026-11-20").
			Return(nil, fmt.Errorf("%w: 2026-11-20", weather.ErrNoForecast))

		out, err := newWeatherToolset(ws).HandleGetWeatherForecast(context.Background(), map[string]any{
			"location": "London",
			"date":     "2026-11-20",
		})
		require.NoError(t, err)
		assert.Equal(t, "Weather forecast unavailable for London", out)
	})

	t.Run("unresolvable date", func(t *testing.T) {
		ws := new(mocks.MockWeather)

		out, err := newWeatherToolset(ws).HandleGetWeatherForecast(context.Background(), map[string]any{
			"location": "London",
			"date":     "zzz",
		})
		require.NoError(t, err)
		assert.Equal(t, "Error: Invalid date format 'zzz'. Use 'today', 'tomorrow', or YYYY-MM-DD", out)
	})
}

func TestHandleCheckWeatherForEvent(t *testing.T) {
	t.Run("forecast available", func(t *testing.T) {
		ws := new(mocks.MockWeather)
		ws.On("ForEvent", mock.Anything, "2026-10-16", "New York").Return(&weather.EventWeather{
			Date:      "2026-10-16",
			Location:  "New York",
			Available: true,
			Day: &weather.Day{
				AvgTempC:     14.2,
				Condition:    "Sunny",
				ChanceOfRain: 10,
				AvgHumidity:  70,
			},
		}, nil)

		out, err := newWeatherToolset(ws).HandleCheckWeatherForEvent(context.Background(), map[string]any{"date": "friday"})
		require.NoError(t, err)
		assert.Equal(t, "Weather for friday in New York: 14.2°C, Sunny, 10% chance of rain, Humidity: 70%", out)
	})

	t.Run("forecast unavailable", func(t *testing.T) {
		ws := new(mocks.MockWeather)
		ws.On("ForEvent", mock.Anything, "2026-10-26", "Oslo").Return(&weather.EventWeather{
			Date:     "2026-10-26",
			Location: "Oslo",
		}, nil)

		out, err := newWeatherToolset(ws).HandleCheckWeatherForEvent(context.Background(), map[string]any{
			"date":     "2026-10-26",
			"location": "Oslo",
		})
		require.NoError(t, err)
		assert.Equal(t, "Weather information unavailable for 2026-10-26 in Oslo", out)
	})

	t.Run("missing date", func(t *testing.T) {
		ws := new(mocks.MockWeather)
		_, err := newWeatherToolset(ws).HandleCheckWeatherForEvent(context.Background(), map[string]any{"location": "Oslo"})
		assert.Error(t, err)
	})
}
