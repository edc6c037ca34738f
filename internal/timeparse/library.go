package timeparse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	naturaldate "github.com/tj/go-naturaldate"
	"go.uber.org/zap"
)

var errNotUnderstood = errors.New("expression not understood")

// LibraryParser is a general natural-language date parser.
// Parse returns an error when the text is not understood.
type LibraryParser interface {
	Parse(text string, now time.Time) (time.Time, error)
}

// LibraryParserFunc adapts a plain function to LibraryParser.
type LibraryParserFunc func(text string, now time.Time) (time.Time, error)

// Parse implements LibraryParser.
func (f LibraryParserFunc) Parse(text string, now time.Time) (time.Time, error) {
	return f(text, now)
}

// DefaultLibraryParsers returns the parsers tried by a Parser built without
// WithLibrary: absolute formats first, then relative phrasing.
func DefaultLibraryParsers() []LibraryParser {
	return []LibraryParser{
		AbsoluteDateParser{},
		NaturalDateParser{},
		NewWhenParser(),
	}
}

// LibraryChain tries each parser in order and keeps the first success.
// Errors and panics from a parser count as "not understood".
type LibraryChain struct {
	parsers []LibraryParser
	logger  *zap.Logger
}

// NewLibraryChain creates a chain over parsers.
func NewLibraryChain(logger *zap.Logger, parsers ...LibraryParser) *LibraryChain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LibraryChain{parsers: parsers, logger: logger}
}

// Name implements DateResolver.
func (c *LibraryChain) Name() string { return "library" }

// ResolveDate implements DateResolver. The result keeps its time of day.
func (c *LibraryChain) ResolveDate(_ context.Context, text string, now time.Time) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}
	for i, p := range c.parsers {
		t, err := safeParse(p, text, now)
		if err != nil {
			c.logger.Debug("library parser declined",
				zap.Int("parser", i),
				zap.String("text", text),
				zap.Error(err))
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

func safeParse(p LibraryParser, text string, now time.Time) (t time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = time.Time{}, fmt.Errorf("parser panic: %v", r)
		}
	}()
	t, err = p.Parse(text, now)
	if err == nil && t.IsZero() {
		err = errNotUnderstood
	}
	return t, err
}

// AbsoluteDateParser parses explicit calendar dates ("March 5, 2026",
// "2026-03-05 14:30") with dateparse, interpreting zone-less input in the
// reference instant's location.
type AbsoluteDateParser struct{}

// Parse implements LibraryParser.
func (AbsoluteDateParser) Parse(text string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(text)
	// Short digit runs are clock times or bare years, never a calendar date.
	if len(s) <= 4 && isDigits(s) {
		return time.Time{}, errNotUnderstood
	}
	return dateparse.ParseIn(s, now.Location())
}

// NaturalDateParser parses relative phrasing ("in 3 days", "next month")
// with go-naturaldate, preferring future dates.
//
// naturaldate reads a bare number as an hour offset, so text carrying a
// compact clock ("at 1400") is declined and left to the later stages.
type NaturalDateParser struct{}

// Parse implements LibraryParser.
func (NaturalDateParser) Parse(text string, now time.Time) (time.Time, error) {
	if hasCompactClock(text) {
		return time.Time{}, errNotUnderstood
	}
	t, err := naturaldate.Parse(text, now, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, err
	}
	// naturaldate falls back to the reference instant for input it ignores.
	if t.Equal(now) && !isNowReference(text) {
		return time.Time{}, errNotUnderstood
	}
	return t, nil
}

func isNowReference(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "now", "right now", "currently":
		return true
	}
	return false
}

// WhenParser finds a date expression inside free text using olebedev/when
// with the English and common rule sets.
type WhenParser struct {
	w *when.Parser
}

// NewWhenParser creates a WhenParser.
func NewWhenParser() *WhenParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &WhenParser{w: w}
}

// Parse implements LibraryParser.
func (p *WhenParser) Parse(text string, now time.Time) (time.Time, error) {
	r, err := p.w.Parse(text, now)
	if err != nil {
		return time.Time{}, err
	}
	if r == nil {
		return time.Time{}, errNotUnderstood
	}
	return r.Time, nil
}

// hasCompactClock reports whether text contains a standalone 3-4 digit token.
func hasCompactClock(text string) bool {
	for _, field := range strings.Fields(text) {
		field = strings.TrimFunc(field, unicode.IsPunct)
		if len(field) >= 3 && len(field) <= 4 && isDigits(field) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
