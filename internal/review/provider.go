package review

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

const requestTimeout = 60 * time.Second

// Provider identifies an external text-generation API.
type Provider string

// Supported providers. All except Anthropic speak the OpenAI chat
// completions dialect.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderMoonshot  Provider = "moonshot"
	ProviderZhipu     Provider = "zhipu"
	ProviderCustom    Provider = "custom"
)

// Config selects the provider and credentials for generation calls.
type Config struct {
	Provider Provider
	APIKey   string
	// APIURL overrides the provider's default endpoint. Required for
	// ProviderCustom, optional elsewhere (e.g. a proxy).
	APIURL string
	Model  string
}

// Generator is the external text-generation collaborator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured means no usable provider credentials are present.
var ErrNotConfigured = errors.New("no AI provider configured: set ai.provider and ai.api_key")

// TransportError wraps a network-level failure reaching the provider.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "contacting provider: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// AuthError means the provider rejected the credentials.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return "provider rejected credentials: " + e.Message }

// ProviderError is a non-2xx response that is not an auth failure.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Body)
}

// chatMessage is a single message in either API dialect.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the OpenAI-style chat completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the OpenAI-style chat completions response body.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// anthropicRequest is the Anthropic Messages API request body.
type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

// anthropicResponse is the Anthropic Messages API response body.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// providerSpec is one row of the provider strategy table: where to send the
// request, how to authenticate it, how to shape the payload, and how to pull
// the text back out.
type providerSpec struct {
	endpoint     string
	defaultModel string
	setAuth      func(h http.Header, key string)
	payload      func(model, prompt string) any
	extract      func(body []byte) (string, error)
}

func bearerAuth(h http.Header, key string) {
	h.Set("Authorization", "Bearer "+key)
}

func openAIPayload(model, prompt string) any {
	return chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	}
}

func extractChat(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("no message content in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func extractAnthropic(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding messages response: %w", err)
	}
	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no text content in response")
	}
	return strings.Join(parts, ""), nil
}

var providerSpecs = map[Provider]providerSpec{
	ProviderOpenAI: {
		endpoint:     "https://api.openai.com/v1/chat/completions",
		defaultModel: "gpt-4o-mini",
		setAuth:      bearerAuth,
		payload:      openAIPayload,
		extract:      extractChat,
	},
	ProviderAnthropic: {
		endpoint:     "https://api.anthropic.com/v1/messages",
		defaultModel: "claude-3-5-sonnet-20241022",
		setAuth: func(h http.Header, key string) {
			h.Set("x-api-key", key)
			h.Set("anthropic-version", "2023-06-01")
		},
		payload: func(model, prompt string) any {
			return anthropicRequest{
				Model:     model,
				MaxTokens: 1024,
				Messages:  []chatMessage{{Role: "user", Content: prompt}},
			}
		},
		extract: extractAnthropic,
	},
	ProviderMoonshot: {
		endpoint:     "https://api.moonshot.cn/v1/chat/completions",
		defaultModel: "moonshot-v1-8k",
		setAuth:      bearerAuth,
		payload:      openAIPayload,
		extract:      extractChat,
	},
	ProviderZhipu: {
		endpoint:     "https://open.bigmodel.cn/api/paas/v4/chat/completions",
		defaultModel: "glm-4-flash",
		setAuth:      bearerAuth,
		payload:      openAIPayload,
		extract:      extractChat,
	},
	ProviderCustom: {
		defaultModel: "",
		setAuth:      bearerAuth,
		payload:      openAIPayload,
		extract:      extractChat,
	},
}

// Client calls a text-generation provider over HTTP.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a Client for the configured provider. Leading and
// trailing whitespace in the key is a common paste accident, so it is
// trimmed here.
func NewClient(cfg Config) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: requestTimeout},
	}
}

// Generate sends the prompt to the provider and returns the raw response
// text. Failures map onto the error taxonomy: ErrNotConfigured before any
// request is made, TransportError for network failures, AuthError for
// rejected credentials, ProviderError for other non-2xx responses.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	spec, ok := providerSpecs[c.cfg.Provider]
	if !ok || c.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}

	endpoint := spec.endpoint
	if c.cfg.APIURL != "" {
		endpoint = c.cfg.APIURL
	}
	if endpoint == "" {
		return "", ErrNotConfigured
	}

	model := c.cfg.Model
	if model == "" {
		model = spec.defaultModel
	}

	body, err := json.Marshal(spec.payload(model, prompt))
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	spec.setAuth(req.Header, c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", &AuthError{Message: errorMessage(respBody, resp.Status)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &ProviderError{Status: resp.StatusCode, Body: errorMessage(respBody, resp.Status)}
	}

	return spec.extract(respBody)
}

// errorMessage pulls a human-readable message out of a provider error body,
// falling back to the raw body or HTTP status.
func errorMessage(body []byte, status string) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return status
}
