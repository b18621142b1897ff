package quiz

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logging"
)

// ErrMissingTopic is returned when a quiz is requested without a topic.
var ErrMissingTopic = errors.New("please fill in all fields: topic is required")

// Config controls quiz generation.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Service generates quizzes through an LLM provider and falls back to the
// sample bank when generation or parsing fails.
type Service struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// NewService creates a quiz Service. provider may be nil, in which case
// Generate reports llm.ErrNoProvider.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	return &Service{provider: provider, config: cfg, logger: logging.OrNop(logger)}
}

// Generate produces a quiz for req. Input errors and a missing provider are
// returned; every other failure yields the sample quiz with Fallback set.
func (s *Service) Generate(ctx context.Context, req Request) (Quiz, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return Quiz{}, ErrMissingTopic
	}
	if s.provider == nil {
		return Quiz{}, llm.ErrNoProvider
	}
	req = req.normalize()

	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)
	llmReq := llm.TextRequest(BuildPrompt(req.Topic, req.Difficulty, req.QuestionCount, req.OptionCount), s.config.MaxTokens)
	llmReq.Temperature = s.config.Temperature

	resp, err := s.provider.Generate(ctx, llmReq)
	if err != nil {
		s.logger.Warn("quiz generation failed, using sample questions",
			zap.String("topic", req.Topic), zap.Error(err))
		return fallbackQuiz(), nil
	}

	questions, err := ParseResponse(resp.Text())
	if err != nil {
		s.logger.Warn("quiz response unusable, using sample questions",
			zap.String("topic", req.Topic), zap.Error(err))
		return fallbackQuiz(), nil
	}

	return Quiz{Topic: req.Topic, Questions: questions}, nil
}

// fallbackQuiz is the sample quiz, filed under SampleTopic.
func fallbackQuiz() Quiz {
	return Quiz{Topic: SampleTopic, Questions: SampleQuestions(), Fallback: true}
}
