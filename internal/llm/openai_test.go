package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestOpenAIServer serves handler under /v1 and decodes each request
// body into *sent when sent is non-nil.
func newTestOpenAIServer(t *testing.T, sent *map[string]any, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sent != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(sent))
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server.URL + "/v1"
}

func newTestOpenAIProvider(t *testing.T, sent *map[string]any, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: newTestOpenAIServer(t, sent, handler),
	})
	require.NoError(t, err)
	return p
}

func chatCompletion(model, content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func TestOpenAIProvider_TextRequest(t *testing.T) {
	reply := `Here is the quiz: [{"question":"What do plants absorb?","options":["CO2","Salt"],"correctAnswer":0}] Good luck!`
	var sent map[string]any
	p := newTestOpenAIProvider(t, &sent, chatCompletion("gpt-4o-mini-2024-07-18", reply, "stop"))

	resp, err := p.Generate(context.Background(), TextRequest("Generate 1 multiple-choice question.", 0))
	require.NoError(t, err)

	assert.Equal(t, reply, resp.Text(), "prose around the array is preserved for the quiz parser")
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)

	assert.NotContains(t, sent, "response_format")
	assert.EqualValues(t, DefaultMaxTokens, sent["max_completion_tokens"])
	msgs, _ := sent["messages"].([]any)
	assert.Len(t, msgs, 1, "no system message when System is empty")
}

func TestOpenAIProvider_SystemPrompt(t *testing.T) {
	var sent map[string]any
	p := newTestOpenAIProvider(t, &sent, chatCompletion("gpt-4o-mini", "ok", "stop"))

	req := TextRequest("tip", 64)
	req.System = "You are a patient study companion."
	_, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	msgs, _ := sent["messages"].([]any)
	require.Len(t, msgs, 2)
	first, _ := msgs[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
}

func TestOpenAIProvider_Truncation(t *testing.T) {
	t.Run("text is kept", func(t *testing.T) {
		p := newTestOpenAIProvider(t, nil, chatCompletion("gpt-4o-mini", "Step 1: re", "length"))
		resp, err := p.Generate(context.Background(), TextRequest("plan", 8))
		require.NoError(t, err)
		assert.Equal(t, "max_tokens", resp.StopReason)
		assert.Equal(t, "Step 1: re", resp.Text())
	})

	t.Run("structured output fails", func(t *testing.T) {
		var sent map[string]any
		p := newTestOpenAIProvider(t, &sent, chatCompletion("gpt-4o-mini", `{"tip": "Che`, "length"))
		req := TextRequest("tip", 8)
		req.Schema = &Schema{
			Name:       "study-tip",
			Definition: map[string]any{"type": "object", "properties": map[string]any{"tip": map[string]any{"type": "string"}}},
		}
		_, err := p.Generate(context.Background(), req)

		var maxTok *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &maxTok)
		assert.Contains(t, sent, "response_format")
	})
}

func TestOpenAIProvider_EmptyReplies(t *testing.T) {
	t.Run("blank content", func(t *testing.T) {
		p := newTestOpenAIProvider(t, nil, chatCompletion("gpt-4o-mini", "", "stop"))
		_, err := p.Generate(context.Background(), TextRequest("tip", 64))
		var inv *ErrInvalidResponse
		assert.ErrorAs(t, err, &inv)
	})

	t.Run("no choices", func(t *testing.T) {
		p := newTestOpenAIProvider(t, nil, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"x","object":"chat.completion","model":"gpt-4o-mini","choices":[]}`))
		})
		_, err := p.Generate(context.Background(), TextRequest("tip", 64))
		var inv *ErrInvalidResponse
		assert.ErrorAs(t, err, &inv)
	})
}

func TestOpenAIProvider_Errors(t *testing.T) {
	jsonError := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "error", "message": http.StatusText(status)},
			})
		}
	}
	htmlError := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(status)
			w.Write([]byte("<html>gateway error</html>"))
		}
	}

	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{"rejected key", jsonError(http.StatusUnauthorized), func(t *testing.T, err error) {
			var badKey *ErrInvalidAPIKey
			require.ErrorAs(t, err, &badKey)
			assert.Equal(t, "openai", badKey.Provider)
		}},
		{"rate limit", jsonError(http.StatusTooManyRequests), func(t *testing.T, err error) {
			var rl *ErrRateLimit
			assert.ErrorAs(t, err, &rl)
		}},
		{"server error", jsonError(http.StatusInternalServerError), func(t *testing.T, err error) {
			var unavail *ErrProviderUnavailable
			assert.ErrorAs(t, err, &unavail)
		}},
		{"non-json gateway error", htmlError(http.StatusBadGateway), func(t *testing.T, err error) {
			var unavail *ErrProviderUnavailable
			assert.ErrorAs(t, err, &unavail)
		}},
		{"non-json forbidden", htmlError(http.StatusForbidden), func(t *testing.T, err error) {
			var badKey *ErrInvalidAPIKey
			assert.ErrorAs(t, err, &badKey)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, nil, tt.handler)
			_, err := p.Generate(context.Background(), TextRequest("tip", 64))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err, "API key is required")

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}
