package timeparse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Completer sends a single prompt to a language model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const datePromptTemplate = `Parse this datetime expression and return only the date in YYYY-MM-DD format:
"%s"

Examples:
"next Monday" -> 2025-07-21
"Friday afternoon" -> 2025-07-25
"tomorrow morning" -> 2025-07-21
"in 2 hours" -> 2025-07-20

Return only the date in YYYY-MM-DD format, nothing else:`

// BuildDatePrompt returns the prompt sent to the model for text.
func BuildDatePrompt(text string) string {
	return fmt.Sprintf(datePromptTemplate, text)
}

// ModelResolver asks a language model for the date when every deterministic
// stage has failed. Successful answers are cached under the exact input text,
// so repeated expressions resolve identically without another model call.
type ModelResolver struct {
	completer Completer
	cache     Cache
	logger    *zap.Logger
}

// NewModelResolver creates a resolver. A nil cache gets a default LRUCache.
func NewModelResolver(completer Completer, cache Cache, logger *zap.Logger) *ModelResolver {
	if cache == nil {
		cache = NewLRUCache(DefaultCacheSize, 0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelResolver{completer: completer, cache: cache, logger: logger}
}

// Name implements DateResolver.
func (m *ModelResolver) Name() string { return "model" }

// Cache returns the resolver's cache.
func (m *ModelResolver) Cache() Cache { return m.cache }

// ResolveDate implements DateResolver. The reference instant is not sent to
// the model; its answer is taken as-is once validated.
func (m *ModelResolver) ResolveDate(ctx context.Context, text string, _ time.Time) (time.Time, bool) {
	if m == nil || m.completer == nil {
		return time.Time{}, false
	}

	if cached, ok := m.cache.Get(text); ok {
		if t, err := time.Parse(DateLayout, cached); err == nil {
			return t, true
		}
	}

	reply, err := m.completer.Complete(ctx, BuildDatePrompt(text))
	if err != nil {
		m.logger.Debug("model resolution failed", zap.String("text", text), zap.Error(err))
		return time.Time{}, false
	}

	answer := strings.TrimSpace(reply)
	t, err := time.Parse(DateLayout, answer)
	if err != nil {
		m.logger.Debug("model returned invalid date",
			zap.String("text", text),
			zap.String("reply", answer))
		return time.Time{}, false
	}

	m.cache.Add(text, answer)
	return t, true
}
