// Package weather is a client for the WeatherAPI.com current and forecast
// endpoints.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "http://api.weatherapi.com/v1"
	// ForecastDays is the free-tier forecast window.
	ForecastDays = 3
)

var (
	ErrNoAPIKey = errors.New("WEATHERAPI_API_KEY is not set")
	// ErrNoForecast is returned when a date is outside the forecast window.
	ErrNoForecast = errors.New("no forecast available for this date")
)

// Current is the current conditions at a location.
type Current struct {
	Location   string
	TempC      float64
	FeelsLikeC float64
	Humidity   int
	Condition  string
	WindKph    float64
	WindDir    string
	PrecipMM   float64
}

// Day is the forecast for a single date.
type Day struct {
	Location      string
	Date          string
	AvgTempC      float64
	MaxTempC      float64
	MinTempC      float64
	AvgHumidity   float64
	Condition     string
	MaxWindKph    float64
	TotalPrecipMM float64
	ChanceOfRain  int
}

// Client calls WeatherAPI.com.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new WeatherAPI client
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// IsConfigured returns true if the client has an API key
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type condition struct {
	Text string `json:"text"`
}

type currentResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC      float64   `json:"temp_c"`
		FeelsLikeC float64   `json:"feelslike_c"`
		Humidity   int       `json:"humidity"`
		Condition  condition `json:"condition"`
		WindKph    float64   `json:"wind_kph"`
		WindDir    string    `json:"wind_dir"`
		PrecipMM   float64   `json:"precip_mm"`
	} `json:"current"`
}

type forecastResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				AvgTempC      float64   `json:"avgtemp_c"`
				MaxTempC      float64   `json:"maxtemp_c"`
				MinTempC      float64   `json:"mintemp_c"`
				AvgHumidity   float64   `json:"avghumidity"`
				Condition     condition `json:"condition"`
				MaxWindKph    float64   `json:"maxwind_kph"`
				TotalPrecipMM float64   `json:"totalprecip_mm"`
				ChanceOfRain  int       `json:"daily_chance_of_rain"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Current returns current conditions for location.
func (c *Client) Current(ctx context.Context, location string) (*Current, error) {
	var resp currentResponse
	if err := c.get(ctx, "/current.json", url.Values{"q": {location}, "aqi": {"no"}}, &resp); err != nil {
		return nil, err
	}

	return &Current{
		Location:   resp.Location.Name,
		TempC:      resp.Current.TempC,
		FeelsLikeC: resp.Current.FeelsLikeC,
		Humidity:   resp.Current.Humidity,
		Condition:  resp.Current.Condition.Text,
		WindKph:    resp.Current.WindKph,
		WindDir:    resp.Current.WindDir,
		PrecipMM:   resp.Current.PrecipMM,
	}, nil
}

// Forecast returns the daily forecast for the next ForecastDays days.
func (c *Client) Forecast(ctx context.Context, location string) ([]Day, error) {
	var resp forecastResponse
	params := url.Values{"q": {location}, "days": {strconv.Itoa(ForecastDays)}, "aqi": {"no"}}
	if err := c.get(ctx, "/forecast.json", params, &resp); err != nil {
		return nil, err
	}

	days := make([]Day, 0, len(resp.Forecast.ForecastDay))
	for _, fd := range resp.Forecast.ForecastDay {
		days = append(days, Day{
			Location:      resp.Location.Name,
			Date:          fd.Date,
			AvgTempC:      fd.Day.AvgTempC,
			MaxTempC:      fd.Day.MaxTempC,
			MinTempC:      fd.Day.MinTempC,
			AvgHumidity:   fd.Day.AvgHumidity,
			Condition:     fd.Day.Condition.Text,
			MaxWindKph:    fd.Day.MaxWindKph,
			TotalPrecipMM: fd.Day.TotalPrecipMM,
			ChanceOfRain:  fd.Day.ChanceOfRain,
		})
	}
	return days, nil
}

// ForecastFor returns the forecast for a YYYY-MM-DD date, or ErrNoForecast
// when the date is outside the forecast window.
func (c *Client) ForecastFor(ctx context.Context, location, date string) (*Day, error) {
	days, err := c.Forecast(ctx, location)
	if err != nil {
		return nil, err
	}
	for i := range days {
		if days[i].Date == date {
			return &days[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoForecast, date)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if !c.IsConfigured() {
		return ErrNoAPIKey
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("weather API error (status %d, code %d): %s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Message)
		}
		return fmt.Errorf("weather API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
