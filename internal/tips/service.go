package tips

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logging"
)

// BuildPrompt returns the tip prompt. An empty category lets the model pick.
func BuildPrompt(category string) string {
	focus := "Choose any relevant category"
	if category != "" {
		focus = "Focus on the category: " + category
	}
	return fmt.Sprintf(`Provide a short, insightful tip about ethical AI use in education.
%s.
Keep it concise (1-2 sentences) and practical.
Make it encouraging and actionable for students.`, focus)
}

// Config holds tip generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.9,
	}
}

// Service produces study tips.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a tip service. With a nil provider Tip falls back to
// the static bank.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	return &Service{provider: provider, cfg: cfg, logger: logging.OrNop(logger)}
}

// HasProvider reports whether tips can be generated.
func (s *Service) HasProvider() bool { return s.provider != nil }

// Tip generates a tip, optionally focused on category. Failures return
// DefaultTip. Without a provider a random bank tip is returned instead.
func (s *Service) Tip(ctx context.Context, category string) Tip {
	category = strings.TrimSpace(category)
	if s.provider == nil {
		return Random(category)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeTip)
	req := llm.TextRequest(BuildPrompt(category), s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("tip generation failed", zap.String("category", category), zap.Error(err))
		return Tip{Content: DefaultTip, Category: category}
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		s.logger.Warn("tip response empty", zap.String("category", category))
		return Tip{Content: DefaultTip, Category: category}
	}
	return Tip{Content: text, Category: category, Generated: true}
}
