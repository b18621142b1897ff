package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouterProvider_TextRequest(t *testing.T) {
	var gotPath, gotTitle, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTitle = r.Header.Get("X-Title")
		gotAuth = r.Header.Get("Authorization")
		chatCompletion("google/gemini-2.0-flash-exp", "Cite the AI tools you used.", "stop")(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.0-flash-exp",
		BaseURL: server.URL + "/api/v1",
	})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), TextRequest("Give me one tip.", 64))
	require.NoError(t, err)

	assert.Equal(t, "Cite the AI tools you used.", resp.Text())
	assert.Equal(t, "google/gemini-2.0-flash-exp", resp.Model)
	assert.Equal(t, "/api/v1/chat/completions", gotPath)
	assert.Equal(t, openRouterAppName, gotTitle)
	assert.Equal(t, "Bearer sk-or-test", gotAuth)
}

func TestOpenRouterProvider_RejectedKeyNamesOpenRouter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"No auth credentials found","code":401}}`))
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-bad", Model: "x/y", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), TextRequest("tip", 64))
	var badKey *ErrInvalidAPIKey
	require.ErrorAs(t, err, &badKey)
	assert.Equal(t, "openrouter", badKey.Provider)
}

func TestNewOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"})
	assert.Error(t, err, "API key is required")

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID(), "vendor-prefixed IDs pass through")
}
