package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/omriShneor/plancast/internal/agent"
	"github.com/omriShneor/plancast/internal/agent/tools"
	"github.com/omriShneor/plancast/internal/calendar"
	"github.com/omriShneor/plancast/internal/config"
	"github.com/omriShneor/plancast/internal/database"
	"github.com/omriShneor/plancast/internal/gcal"
	"github.com/omriShneor/plancast/internal/icscal"
	"github.com/omriShneor/plancast/internal/llm"
	"github.com/omriShneor/plancast/internal/logging"
	"github.com/omriShneor/plancast/internal/timeparse"
	"github.com/omriShneor/plancast/internal/timeutil"
	"github.com/omriShneor/plancast/internal/weather"
)

// app lazily builds the components a command needs. Fields that are already
// set are used as is.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	debug  bool

	parser  *timeparse.Parser
	model   llm.Client
	backend calendar.Backend
	google  *gcal.Client
	weather tools.WeatherService
	db      *database.DB
}

func (a *app) setup() error {
	if a.cfg == nil {
		a.cfg = config.LoadFromEnv()
	}
	if a.logger == nil {
		logger, err := logging.New(a.debug || a.cfg.Debug)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
		zap.ReplaceGlobals(logger)
	}
	return nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) modelClient() (llm.Client, error) {
	if a.model != nil {
		return a.model, nil
	}
	client, err := llm.New(a.cfg)
	if err != nil {
		return nil, err
	}
	a.model = client
	return client, nil
}

func (a *app) resolver() *timeparse.Parser {
	if a.parser != nil {
		return a.parser
	}

	opts := []timeparse.Option{
		timeparse.WithLocation(a.cfg.Location()),
		timeparse.WithLogger(a.logger),
	}
	model, err := a.modelClient()
	switch {
	case err != nil:
		a.logger.Warn("language model fallback disabled", zap.Error(err))
	case model != nil:
		a.logger.Debug("language model fallback enabled", zap.String("provider", model.Name()))
		opts = append(opts, timeparse.WithModel(model, timeparse.NewLRUCache(a.cfg.CacheSize, a.cfg.CacheTTL)))
	}

	a.parser = timeparse.New(opts...)
	return a.parser
}

func (a *app) googleClient() (*gcal.Client, error) {
	if a.google != nil {
		return a.google, nil
	}
	client, err := gcal.NewClient(gcal.Options{
		CredentialsFile: a.cfg.GoogleCredentialsFile,
		TokenFile:       a.cfg.GoogleTokenFile,
		CalendarID:      a.cfg.CalendarID,
		Timezone:        a.cfg.EventTimezone,
		Logger:          a.logger,
	})
	if err != nil {
		return nil, err
	}
	a.google = client
	return client, nil
}

func (a *app) calendarBackend() (calendar.Backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}

	switch a.cfg.CalendarBackend {
	case config.CalendarICS:
		loc, _ := timeutil.ResolveLocation(a.cfg.EventTimezone)
		a.backend = icscal.New(a.cfg.ICSPath, loc, a.logger)
	case config.CalendarGoogle, "":
		client, err := a.googleClient()
		if err != nil {
			return nil, err
		}
		a.backend = client
	default:
		return nil, fmt.Errorf("unknown calendar backend: %s", a.cfg.CalendarBackend)
	}
	return a.backend, nil
}

func (a *app) weatherService() (tools.WeatherService, error) {
	if a.weather != nil {
		return a.weather, nil
	}
	client := weather.NewClient(a.cfg.WeatherAPIKey, a.cfg.WeatherBaseURL, 0)
	if !client.IsConfigured() {
		return nil, weather.ErrNoAPIKey
	}
	a.weather = client
	return client, nil
}

func (a *app) ledger() (*database.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.New(a.cfg.DBPath, a.logger)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

// registry registers every tool whose backend could be built. Missing
// backends only disable their tools.
func (a *app) registry() (*agent.ToolRegistry, error) {
	opts := tools.Options{
		Resolver:        a.resolver(),
		EventTimezone:   a.cfg.EventTimezone,
		DefaultLocation: a.cfg.DefaultLocation,
		Logger:          a.logger,
	}

	if backend, err := a.calendarBackend(); err != nil {
		a.logger.Warn("calendar tools disabled", zap.Error(err))
	} else {
		opts.Calendar = backend
	}
	if db, err := a.ledger(); err != nil {
		a.logger.Warn("duplicate event guard disabled", zap.Error(err))
	} else {
		opts.Ledger = db
	}
	if svc, err := a.weatherService(); err != nil {
		a.logger.Warn("weather tools disabled", zap.Error(err))
	} else {
		opts.Weather = svc
	}

	r := agent.NewToolRegistry()
	if err := tools.New(opts).Register(r); err != nil {
		return nil, err
	}
	return r, nil
}
