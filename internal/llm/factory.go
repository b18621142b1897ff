package llm

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/studybuddy/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	retried := WithRetry(logged, cfg.Retry, logger)

	return retried, nil
}

// ResolveConfig picks the configuration for this process. Explicit
// STUDYBUDDY_* settings win; otherwise the standard vendor key variables are
// probed. A non-empty storedKey overrides the environment key of the chosen
// provider.
func ResolveConfig(storedKey string) Config {
	var cfg Config
	switch {
	case hasExplicitEnv():
		cfg = ConfigFromEnv()
	default:
		env := ConfigFromEnv()
		discovered, ok := DiscoverConfig()
		if !ok {
			discovered = env
		}
		discovered.Retry = env.Retry
		discovered.Timeout = env.Timeout
		cfg = discovered
	}
	return cfg.WithAPIKey(storedKey)
}

// NewProviderFromEnv resolves configuration (see ResolveConfig) and builds
// the decorated provider.
func NewProviderFromEnv(ctx context.Context, storedKey string, eventRepo store.EventRepo, logger *zap.Logger) (Provider, Config, error) {
	cfg := ResolveConfig(storedKey)
	p, err := NewProvider(ctx, cfg, eventRepo, logger)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}

func hasExplicitEnv() bool {
	for _, k := range []string{
		"STUDYBUDDY_LLM_PROVIDER",
		"STUDYBUDDY_GEMINI_API_KEY",
		"STUDYBUDDY_OPENAI_API_KEY",
		"STUDYBUDDY_ANTHROPIC_API_KEY",
		"STUDYBUDDY_OPENROUTER_API_KEY",
	} {
		if os.Getenv(k) != "" {
			return true
		}
	}
	return false
}
