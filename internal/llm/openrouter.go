package llm

import "net/http"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openRouterAppName is sent as X-Title so requests are attributed to the
// app in OpenRouter's dashboard.
const openRouterAppName = "StudyBuddy"

// OpenRouterProvider targets OpenRouter through its OpenAI-compatible API.
// Model IDs are vendor-prefixed (e.g. "google/gemini-2.0-flash-exp") and
// passed through unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner, err := newOpenAICompatible("openrouter", OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Transport: titleTransport{base: http.DefaultTransport},
		},
	})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

type titleTransport struct {
	base http.RoundTripper
}

func (t titleTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", openRouterAppName)
	return t.base.RoundTrip(r)
}
