package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastBody = `{
  "location": {"name": "New York"},
  "forecast": {"forecastday": [
    {"date": "2026-10-15", "day": {"avgtemp_c": 14.2, "maxtemp_c": 18.0, "mintemp_c": 9.5, "avghumidity": 70, "condition": {"text": "Sunny"}, "maxwind_kph": 12.6, "totalprecip_mm": 0, "daily_chance_of_rain": 0}},
    {"date": "2026-10-16", "day": {"avgtemp_c": 11.0, "maxtemp_c": 13.1, "mintemp_c": 8.0, "avghumidity": 88, "condition": {"text": "Patchy rain possible"}, "maxwind_kph": 20.5, "totalprecip_mm": 4.2, "daily_chance_of_rain": 80}}
  ]}
}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/current.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "no", r.URL.Query().Get("aqi"))
		if r.URL.Query().Get("q") == "Atlantis" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
			return
		}
		_, _ = w.Write([]byte(`{"location":{"name":"London"},"current":{"temp_c":12.5,"feelslike_c":10.1,"humidity":81,"condition":{"text":"Light rain"},"wind_kph":19.1,"wind_dir":"SW","precip_mm":0.3}}`))
	})
	mux.HandleFunc("/forecast.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte(forecastBody))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient_Current(t *testing.T) {
	server := newServer(t)
	c := NewClient("test-key", server.URL, 0)

	got, err := c.Current(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, &Current{
		Location:   "London",
		TempC:      12.5,
		FeelsLikeC: 10.1,
		Humidity:   81,
		Condition:  "Light rain",
		WindKph:    19.1,
		WindDir:    "SW",
		PrecipMM:   0.3,
	}, got)
}

func TestClient_Current_APIError(t *testing.T) {
	server := newServer(t)
	c := NewClient("test-key", server.URL, 0)

	_, err := c.Current(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No matching location found.")
}

func TestClient_ForecastFor(t *testing.T) {
	server := newServer(t)
	c := NewClient("test-key", server.URL, 0)

	day, err := c.ForecastFor(context.Background(), "New York", "2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, "New York", day.Location)
	assert.Equal(t, "Patchy rain possible", day.Condition)
	assert.Equal(t, 80, day.ChanceOfRain)
	assert.InDelta(t, 11.0, day.AvgTempC, 1e-9)

	_, err = c.ForecastFor(context.Background(), "New York", "2026-10-30")
	assert.ErrorIs(t, err, ErrNoForecast)
}

func TestClient_NoAPIKey(t *testing.T) {
	c := NewClient("", "", 0)
	assert.False(t, c.IsConfigured())

	_, err := c.Current(context.Background(), "London")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestClient_ForEvent(t *testing.T) {
	server := newServer(t)
	c := NewClient("test-key", server.URL, 0)

	got, err := c.ForEvent(context.Background(), "2026-10-15", "")
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, DefaultLocation, got.Location)
	assert.Equal(t, "Sunny", got.Day.Condition)

	got, err = c.ForEvent(context.Background(), "2026-11-01", "New York")
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Nil(t, got.Day)
}
