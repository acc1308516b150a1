package review

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_OpenAIDialect(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotBody = req.Messages[0].Content

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "a fine day"}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClient(Config{
		Provider: ProviderOpenAI,
		APIKey:   "  sk-test  ", // trimmed by NewClient
		APIURL:   srv.URL,
	})
	text, err := client.Generate(context.Background(), "how was my day?")
	require.NoError(t, err)
	assert.Equal(t, "a fine day", text)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "how was my day?", gotBody)
}

func TestGenerate_AnthropicDialect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-3-5-sonnet-20241022", req.Model, "default model applied")

		resp := map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "part one, "},
				{"type": "text", "text": "part two"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClient(Config{Provider: ProviderAnthropic, APIKey: "sk-ant", APIURL: srv.URL})
	text, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "part one, part two", text)
}

func TestGenerate_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{Provider: ProviderOpenAI, APIKey: "bad", APIURL: srv.URL})
	_, err := client.Generate(context.Background(), "prompt")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Message, "invalid api key")
}

func TestGenerate_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewClient(Config{Provider: ProviderMoonshot, APIKey: "k", APIURL: srv.URL})
	_, err := client.Generate(context.Background(), "prompt")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusInternalServerError, provErr.Status)
	assert.Contains(t, provErr.Body, "upstream exploded")
}

func TestGenerate_TransportError(t *testing.T) {
	// Point at a closed server to force a connection failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(Config{Provider: ProviderZhipu, APIKey: "k", APIURL: url})
	_, err := client.Generate(context.Background(), "prompt")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestGenerate_NotConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing key", Config{Provider: ProviderOpenAI}},
		{"unknown provider", Config{Provider: "psychic", APIKey: "k"}},
		{"custom without url", Config{Provider: ProviderCustom, APIKey: "k"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg).Generate(context.Background(), "prompt")
			assert.True(t, errors.Is(err, ErrNotConfigured), "got %v", err)
		})
	}
}
