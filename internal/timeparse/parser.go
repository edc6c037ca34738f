// Package timeparse resolves natural-language date and time expressions into
// canonical YYYY-MM-DD dates and HH:MM times.
//
// Resolution runs a fixed chain of resolvers: deterministic patterns, then
// general-purpose parsing libraries, then (when configured) a language model
// whose answers are cached. Every entry point is total: unrecognised input
// yields an absent result, never an error or a panic.
package timeparse

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Canonical output layouts.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DateResolver is one stage of the date resolution chain.
type DateResolver interface {
	Name() string
	ResolveDate(ctx context.Context, text string, now time.Time) (time.Time, bool)
}

// Components is the structured result of ExtractComponents.
// Empty fields are absent.
type Components struct {
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Parser is the entry point for temporal resolution.
type Parser struct {
	now      func() time.Time
	patterns PatternMatcher
	library  *LibraryChain
	model    *ModelResolver
	logger   *zap.Logger

	libraryParsers []LibraryParser
	completer      Completer
	cache          Cache
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the source of the reference instant. It is sampled on
// every call.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLocation evaluates relative expressions in loc. It wraps the clock
// configured so far, so it belongs after WithClock.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc == nil {
			return
		}
		base := p.now
		p.now = func() time.Time { return base().In(loc) }
	}
}

// WithLibrary replaces the default library parsers.
func WithLibrary(parsers ...LibraryParser) Option {
	return func(p *Parser) {
		p.libraryParsers = parsers
	}
}

// WithModel enables model-assisted resolution. A nil cache gets a default one.
func WithModel(c Completer, cache Cache) Option {
	return func(p *Parser) {
		p.completer = c
		p.cache = cache
	}
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Parser. Without options it uses the wall clock, the default
// library parsers and no model.
func New(opts ...Option) *Parser {
	p := &Parser{
		now:            time.Now,
		logger:         zap.NewNop(),
		libraryParsers: DefaultLibraryParsers(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.library = NewLibraryChain(p.logger, p.libraryParsers...)
	if p.completer != nil {
		p.model = NewModelResolver(p.completer, p.cache, p.logger)
	}
	return p
}

// Resolvers returns the date resolution chain in priority order.
func (p *Parser) Resolvers() []DateResolver {
	chain := []DateResolver{p.patterns, p.library}
	if p.model != nil {
		chain = append(chain, p.model)
	}
	return chain
}

// Cache returns the model resolution cache, or nil when no model is configured.
func (p *Parser) Cache() Cache {
	if p.model == nil {
		return nil
	}
	return p.model.Cache()
}

// ResolveDate converts text to a YYYY-MM-DD date. The context bounds the
// model call, the only blocking stage.
func (p *Parser) ResolveDate(ctx context.Context, text string) (string, bool) {
	now := p.now()
	for _, r := range p.Resolvers() {
		if t, ok := p.try(ctx, r, text, now); ok {
			p.logger.Debug("date resolved",
				zap.String("text", text),
				zap.String("stage", r.Name()),
				zap.Time("date", t))
			return t.Format(DateLayout), true
		}
	}
	p.logger.Debug("date unresolved", zap.String("text", text))
	return "", false
}

// ResolveTime extracts an HH:MM time of day from text.
func (p *Parser) ResolveTime(text string) (string, bool) {
	return ExtractTime(text)
}

// ExtractComponents resolves date, time and timezone hint from one piece of
// text. A whole-text library parse supplies date and time together; otherwise
// they are resolved independently. An explicit clock found by ExtractTime
// takes precedence over the library's time of day. The timezone hint is
// scanned in both cases.
func (p *Parser) ExtractComponents(text string) Components {
	var c Components
	if zone, ok := DetectTimezone(text); ok {
		c.Timezone = zone
	}

	now := p.now()
	ctx := context.Background()

	if t, ok := p.try(ctx, p.library, text, now); ok {
		c.Date = t.Format(DateLayout)
		c.Time = t.Format(TimeLayout)
		if hm, ok := ExtractTime(text); ok {
			c.Time = hm
		}
		return c
	}

	// The library already declined the whole text, only patterns remain.
	if t, ok := p.try(ctx, p.patterns, text, now); ok {
		c.Date = t.Format(DateLayout)
	}
	if hm, ok := ExtractTime(text); ok {
		c.Time = hm
	}
	return c
}

func (p *Parser) try(ctx context.Context, r DateResolver, text string, now time.Time) (t time.Time, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Warn("resolver panicked",
				zap.String("stage", r.Name()),
				zap.Any("panic", rec))
			t, ok = time.Time{}, false
		}
	}()
	return r.ResolveDate(ctx, text, now)
}
