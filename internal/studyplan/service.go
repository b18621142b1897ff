package studyplan

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logging"
)

// ErrMissingField is returned when the subject, style or level is blank.
var ErrMissingField = errors.New("please fill in all fields")

// Config holds study plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults. Plans are long-form, so
// the token budget is generous.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Service generates study plans.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a study plan service. A nil provider makes Generate
// return llm.ErrNoProvider.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	return &Service{provider: provider, cfg: cfg, logger: logging.OrNop(logger)}
}

// Generate asks the provider for a plan. Any provider failure, or an empty
// reply, yields Apology with Fallback set and a nil error.
func (s *Service) Generate(ctx context.Context, req Request) (Plan, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Subject == "" || req.LearningStyle == "" || req.SkillLevel == "" {
		return Plan{}, ErrMissingField
	}
	if s.provider == nil {
		return Plan{}, llm.ErrNoProvider
	}

	plan := Plan{
		Subject:       req.Subject,
		LearningStyle: req.LearningStyle,
		SkillLevel:    req.SkillLevel,
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeStudyPlan)
	llmReq := llm.TextRequest(BuildPrompt(req.Subject, req.LearningStyle, req.SkillLevel), s.cfg.MaxTokens)
	llmReq.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, llmReq)
	if err != nil {
		s.logger.Warn("study plan generation failed",
			zap.String("subject", req.Subject), zap.Error(err))
		plan.Text, plan.Fallback = Apology, true
		return plan, nil
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		s.logger.Warn("study plan response empty", zap.String("subject", req.Subject))
		plan.Text, plan.Fallback = Apology, true
		return plan, nil
	}

	plan.Text = text
	return plan, nil
}
