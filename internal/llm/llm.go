// Package llm provides the language-model backends used for date resolution
// fallback.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omriShneor/plancast/internal/config"
)

const (
	defaultTemperature = 0.1
	defaultTimeout     = 30 * time.Second
	defaultMaxTokens   = 64
	defaultOllamaURL   = "http://localhost:11434"
)

var (
	ErrNotConfigured = errors.New("language model not configured")
	ErrEmptyResponse = errors.New("empty model response")
	ErrModelNotFound = errors.New("model not found")
)

// Client is a configured model backend.
type Client interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
	Ping(ctx context.Context) error
}

// New builds the client selected by cfg.LLMProvider. It returns nil with no
// error when the provider is "none".
func New(cfg *config.Config) (Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderNone, "":
		return nil, nil
	case config.ProviderOllama:
		return NewOllamaClient(cfg.OllamaBaseURL, cfg.LLMModel, cfg.LLMTemperature, cfg.LLMTimeout), nil
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is empty", ErrNotConfigured)
		}
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.LLMModel, cfg.LLMTemperature, cfg.LLMTimeout), nil
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is empty", ErrNotConfigured)
		}
		// LLM_MODEL defaults to an Ollama model name; let Anthropic pick its own.
		model := cfg.LLMModel
		if model == "mistral" {
			model = ""
		}
		return NewAnthropicClient(cfg.AnthropicAPIKey, model, cfg.LLMTemperature, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLMProvider)
	}
}
