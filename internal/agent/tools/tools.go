// Package tools implements the calendar and weather tools. Each tool takes a
// structured request, normalizes its date and time fields through the
// temporal resolver and calls its backend with YYYY-MM-DD / HH:MM values only.
package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/omriShneor/plancast/internal/agent"
	"github.com/omriShneor/plancast/internal/calendar"
	"github.com/omriShneor/plancast/internal/database"
	"github.com/omriShneor/plancast/internal/timeutil"
	"github.com/omriShneor/plancast/internal/weather"
)

// Resolver turns user date and time expressions into YYYY-MM-DD and HH:MM.
type Resolver interface {
	ResolveDate(ctx context.Context, text string) (string, bool)
	ResolveTime(text string) (string, bool)
}

// WeatherService is the subset of the weather client the tools use.
type WeatherService interface {
	Current(ctx context.Context, location string) (*weather.Current, error)
	ForecastFor(ctx context.Context, location, date string) (*weather.Day, error)
	ForEvent(ctx context.Context, date, location string) (*weather.EventWeather, error)
}

// Ledger remembers the events created through the tools.
type Ledger interface {
	FindDuplicate(backend, title string, start time.Time) (*database.CreatedEvent, error)
	RecordEvent(event *database.CreatedEvent) (*database.CreatedEvent, error)
	DeleteEvent(id int64) error
}

// Options configures a Toolset. Calendar, Weather and Ledger are optional;
// tools whose backend is missing are not registered.
type Options struct {
	Resolver        Resolver
	Calendar        calendar.Backend
	Weather         WeatherService
	Ledger          Ledger
	EventTimezone   string
	DefaultLocation string
	Clock           func() time.Time
	Logger          *zap.Logger
}

// Toolset holds the backends shared by the tool handlers.
type Toolset struct {
	resolver        Resolver
	calendar        calendar.Backend
	weather         WeatherService
	ledger          Ledger
	eventTimezone   string
	defaultLocation string
	now             func() time.Time
	logger          *zap.Logger
}

// New creates a Toolset.
func New(opts Options) *Toolset {
	t := &Toolset{
		resolver:        opts.Resolver,
		calendar:        opts.Calendar,
		weather:         opts.Weather,
		ledger:          opts.Ledger,
		eventTimezone:   opts.EventTimezone,
		defaultLocation: opts.DefaultLocation,
		now:             opts.Clock,
		logger:          opts.Logger,
	}
	if t.eventTimezone == "" {
		t.eventTimezone = "America/Los_Angeles"
	}
	if t.defaultLocation == "" {
		t.defaultLocation = weather.DefaultLocation
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	return t
}

// Register adds every tool with a configured backend to r.
func (t *Toolset) Register(r *agent.ToolRegistry) error {
	type entry struct {
		tool    agent.Tool
		handler agent.ToolHandler
	}

	var entries []entry
	if t.calendar != nil {
		entries = append(entries,
			entry{GetCalendarEventsTool, t.HandleGetCalendarEvents},
			entry{CreateCalendarEventTool, t.HandleCreateCalendarEvent},
			entry{CheckAvailabilityTool, t.HandleCheckAvailability},
		)
	}
	if t.weather != nil {
		entries = append(entries,
			entry{GetCurrentWeatherTool, t.HandleGetCurrentWeather},
			entry{GetWeatherForecastTool, t.HandleGetWeatherForecast},
			entry{CheckWeatherForEventTool, t.HandleCheckWeatherForEvent},
		)
	}

	for _, e := range entries {
		if err := r.Register(e.tool, e.handler); err != nil {
			return err
		}
	}
	return nil
}

var parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)

// cleanInput strips surrounding quotes and parenthesised asides.
func cleanInput(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			s = s[1 : len(s)-1]
		}
	}
	s = parentheticalRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func invalidDate(input string) string {
	return fmt.Sprintf("Error: Invalid date format '%s'. Use 'today', 'tomorrow', or YYYY-MM-DD", input)
}

func invalidTime(input string) string {
	return fmt.Sprintf("Error: Invalid time format '%s'. Use '2pm', '14:30' or '1400'", input)
}

// location returns the zone events are created and displayed in.
func (t *Toolset) location() *time.Location {
	loc, fallback := timeutil.ResolveLocation(t.eventTimezone)
	if fallback {
		t.logger.Warn("unknown event timezone, using UTC", zap.String("timezone", t.eventTimezone))
	}
	return loc
}

// resolveDate normalizes a user date. It reports false when the input cannot
// be resolved.
func (t *Toolset) resolveDate(ctx context.Context, input string) (string, bool) {
	if t.resolver == nil {
		return "", false
	}
	return t.resolver.ResolveDate(ctx, input)
}

func (t *Toolset) resolveTime(input string) (string, bool) {
	if t.resolver == nil {
		return "", false
	}
	return t.resolver.ResolveTime(input)
}

func formatEventStart(e calendar.Event, loc *time.Location) string {
	if e.AllDay {
		return e.Start.Format(timeutil.DateLayout)
	}
	return e.Start.In(loc).Format(time.RFC3339)
}
