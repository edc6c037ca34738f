package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAnthropicURL   = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
	anthropicVersion      = "2023-06-01"
)

// ErrInsufficientCredits is returned when the Anthropic account has no credit left.
var ErrInsufficientCredits = errors.New("anthropic credit balance too low")

// AnthropicClient completes prompts with the Anthropic Messages API.
type AnthropicClient struct {
	apiKey      string
	model       string
	apiURL      string
	httpClient  *http.Client
	temperature float64
	maxTokens   int
}

// NewAnthropicClient creates a new Anthropic API client
func NewAnthropicClient(apiKey, model string, temperature float64, timeout time.Duration) *AnthropicClient {
	if model == "" {
		model = defaultAnthropicModel
	}
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &AnthropicClient{
		apiKey:      apiKey,
		model:       model,
		apiURL:      defaultAnthropicURL,
		temperature: temperature,
		maxTokens:   defaultMaxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithURL points the client at a different Messages endpoint.
func (c *AnthropicClient) WithURL(url string) *AnthropicClient {
	c.apiURL = url
	return c
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type anthropicErrorBody struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"request_id"`
}

// Name reports the provider.
func (c *AnthropicClient) Name() string { return "anthropic" }

// Complete sends prompt as a single user message and returns the text reply.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.send(ctx, prompt, c.maxTokens)
}

// Ping checks the API key with a one-token request.
func (c *AnthropicClient) Ping(ctx context.Context) error {
	_, err := c.send(ctx, "ping", 1)
	if errors.Is(err, ErrEmptyResponse) {
		return nil
	}
	return err
}

func (c *AnthropicClient) send(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	req := anthropicRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", formatAPIError(resp.StatusCode, body)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	var text strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}

// IsConfigured returns true if the client has an API key
func (c *AnthropicClient) IsConfigured() bool {
	return c.apiKey != ""
}

// formatAPIError turns a non-200 response into an error, keeping the
// structured error type and request id when the body has them.
func formatAPIError(status int, body []byte) error {
	var parsed anthropicErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error.Message == "" {
		return fmt.Errorf("API error (status %d): %s", status, strings.TrimSpace(string(body)))
	}

	if strings.Contains(strings.ToLower(parsed.Error.Message), "credit balance is too low") {
		return fmt.Errorf("%w: top up at https://console.anthropic.com/settings/plans (request_id=%s)",
			ErrInsufficientCredits, parsed.RequestID)
	}

	return fmt.Errorf("API error (status %d): %s - %s (request_id=%s)",
		status, parsed.Error.Type, parsed.Error.Message, parsed.RequestID)
}
