package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

// LLM providers.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

// Calendar backends.
const (
	CalendarGoogle = "google"
	CalendarICS    = "ics"
)

type Config struct {
	// Language model
	LLMProvider     string
	LLMModel        string
	LLMTemperature  float64
	LLMTimeout      time.Duration
	OllamaBaseURL   string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string

	// Calendar
	CalendarBackend       string
	GoogleCredentialsFile string
	GoogleTokenFile       string
	CalendarID            string
	ICSPath               string
	EventTimezone         string

	// Weather
	WeatherAPIKey   string
	WeatherBaseURL  string
	DefaultLocation string

	// Resolution
	Timezone  string
	CacheSize int
	CacheTTL  time.Duration

	// Optional with defaults
	DBPath string
	Debug  bool
}

func LoadFromEnv() *Config {
	cfg := &Config{
		LLMProvider:     getEnvOrDefault("PLANCAST_LLM_PROVIDER", ProviderOllama),
		LLMModel:        getEnvOrDefault("LLM_MODEL", "mistral"),
		LLMTemperature:  getEnvAsFloatOrDefault("LLM_TEMPERATURE", 0.1),
		LLMTimeout:      time.Duration(getEnvAsIntOrDefault("PLANCAST_LLM_TIMEOUT", 30)) * time.Second,
		OllamaBaseURL:   getEnvOrDefault("OLLAMA_BASE_URL", "http://localhost:11434"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		CalendarBackend:       getEnvOrDefault("PLANCAST_CALENDAR_BACKEND", CalendarGoogle),
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),
		CalendarID:            getEnvOrDefault("PLANCAST_CALENDAR_ID", "primary"),
		ICSPath:               getEnvOrDefault("PLANCAST_ICS_PATH", "./plancast.ics"),
		EventTimezone:         getEnvOrDefault("PLANCAST_EVENT_TIMEZONE", "America/Los_Angeles"),

		WeatherAPIKey:   os.Getenv("WEATHERAPI_API_KEY"),
		WeatherBaseURL:  getEnvOrDefault("WEATHERAPI_BASE_URL", "http://api.weatherapi.com/v1"),
		DefaultLocation: getEnvOrDefault("PLANCAST_DEFAULT_LOCATION", "New York"),

		Timezone:  os.Getenv("PLANCAST_TIMEZONE"),
		CacheSize: getEnvAsIntOrDefault("PLANCAST_CACHE_SIZE", 256),
		CacheTTL:  time.Duration(getEnvAsIntOrDefault("PLANCAST_CACHE_TTL", 1440)) * time.Minute,

		DBPath: getEnvOrDefault("PLANCAST_DB_PATH", "./plancast.db"),
		Debug:  getEnvAsBoolOrDefault("PLANCAST_DEBUG", false),
	}

	return cfg
}

// Location returns the zone relative dates are evaluated in.
// An unset or unknown PLANCAST_TIMEZONE means the local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
