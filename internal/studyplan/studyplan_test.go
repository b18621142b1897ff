package studyplan

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/studybuddy/internal/llm"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Linear Algebra", StyleVisual, LevelBeginner)

	assert.Contains(t, p, "Create a detailed study plan for Linear Algebra at the beginner level.")
	assert.Contains(t, p, "The user prefers visual learning style.")
	for _, item := range []string{
		"1. A brief introduction to the subject",
		"2. Key concepts to focus on",
		"3. Recommended study resources",
		"4. Practice exercises or activities",
		"5. A suggested timeline",
	} {
		assert.Contains(t, p, item)
	}
	assert.Contains(t, p, "headings and bullet points")
	assert.Contains(t, p, "ethical learning practices and critical thinking")
}

func TestParseEnums(t *testing.T) {
	st, err := ParseLearningStyle(" Interactive ")
	require.NoError(t, err)
	assert.Equal(t, StyleInteractive, st)

	lv, err := ParseSkillLevel("ADVANCED")
	require.NoError(t, err)
	assert.Equal(t, LevelAdvanced, lv)

	_, err = ParseLearningStyle("auditory")
	assert.Error(t, err)
	_, err = ParseSkillLevel("expert")
	assert.Error(t, err)
}

func validRequest() Request {
	return Request{Subject: "Chemistry", LearningStyle: StyleText, SkillLevel: LevelIntermediate}
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("# Chemistry Plan\n\n- Week 1: atoms\n"),
	})
	svc := NewService(mock, DefaultConfig(), nil)

	plan, err := svc.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, plan.Fallback)
	assert.Equal(t, "# Chemistry Plan\n\n- Week 1: atoms", plan.Text)
	assert.Equal(t, "Chemistry", plan.Subject)

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, DefaultConfig().MaxTokens, mock.Calls[0].MaxTokens)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "at the intermediate level")
}

func TestGenerateFallback(t *testing.T) {
	tests := []struct {
		name   string
		resp   llm.MockResponse
		logMsg string
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrRateLimit{}}, "study plan generation failed"},
		{"empty reply", llm.MockResponse{Content: json.RawMessage(`"  "`)}, "study plan response empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			svc := NewService(llm.NewMockProvider(tt.resp), DefaultConfig(), zap.New(core))

			plan, err := svc.Generate(context.Background(), validRequest())
			require.NoError(t, err)
			assert.True(t, plan.Fallback)
			assert.Equal(t, Apology, plan.Text)
			assert.Equal(t, 1, logs.FilterMessage(tt.logMsg).Len())
		})
	}
}

func TestGenerateValidation(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig(), nil)

	for _, req := range []Request{
		{Subject: "  ", LearningStyle: StyleText, SkillLevel: LevelBeginner},
		{Subject: "Art", SkillLevel: LevelBeginner},
		{Subject: "Art", LearningStyle: StyleText},
	} {
		_, err := svc.Generate(context.Background(), req)
		assert.ErrorIs(t, err, ErrMissingField)
	}

	_, err := NewService(nil, DefaultConfig(), nil).Generate(context.Background(), validRequest())
	assert.True(t, errors.Is(err, llm.ErrNoProvider))
}

func TestPlanRecord(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rec := Plan{Subject: "Chemistry", LearningStyle: StyleText, SkillLevel: LevelIntermediate}.Record(now)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Chemistry", rec.Topic)
	assert.Equal(t, "text", rec.LearningStyle)
	assert.Equal(t, "intermediate", rec.SkillLevel)
	assert.True(t, rec.Date.Equal(now))
}
