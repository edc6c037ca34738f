package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient completes prompts against any OpenAI-compatible chat API,
// including Ollama's /v1 endpoint.
type OpenAIClient struct {
	client      *openai.Client
	name        string
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIClient creates a client for the OpenAI API or a compatible server
// at baseURL.
func NewOpenAIClient(apiKey, baseURL, model string, temperature float64, timeout time.Duration) *OpenAIClient {
	return newOpenAICompatible("openai", apiKey, baseURL, model, temperature, timeout)
}

// NewOllamaClient creates a client for a local Ollama server. baseURL is the
// server root, e.g. http://localhost:11434.
func NewOllamaClient(baseURL, model string, temperature float64, timeout time.Duration) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
	// Ollama ignores the key but the client always sends one.
	return newOpenAICompatible("ollama", "ollama", baseURL, model, temperature, timeout)
}

func newOpenAICompatible(name, apiKey, baseURL, model string, temperature float64, timeout time.Duration) *OpenAIClient {
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		name:        name,
		model:       model,
		temperature: float32(temperature),
		maxTokens:   defaultMaxTokens,
	}
}

// Name reports the provider.
func (c *OpenAIClient) Name() string { return c.name }

// Complete sends prompt as a single user message and returns the reply.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", c.name, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Ping lists the server's models and checks the configured one is among them.
func (c *OpenAIClient) Ping(ctx context.Context) error {
	models, err := c.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("%s unreachable: %w", c.name, err)
	}
	for _, m := range models.Models {
		if m.ID == c.model || strings.TrimSuffix(m.ID, ":latest") == c.model {
			return nil
		}
	}
	return fmt.Errorf("%w: %s not served by %s", ErrModelNotFound, c.model, c.name)
}
