package studyplan

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/dashboard"
)

// LearningStyle is how the learner prefers to take in material.
type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleText        LearningStyle = "text"
	StyleInteractive LearningStyle = "interactive"
)

// SkillLevel is the learner's current level in the subject.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

// ParseLearningStyle accepts a style name in any case.
func ParseLearningStyle(s string) (LearningStyle, error) {
	switch st := LearningStyle(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleVisual, StyleText, StyleInteractive:
		return st, nil
	}
	return "", fmt.Errorf("unknown learning style %q (want visual, text or interactive)", s)
}

// ParseSkillLevel accepts a level name in any case.
func ParseSkillLevel(s string) (SkillLevel, error) {
	switch lv := SkillLevel(strings.ToLower(strings.TrimSpace(s))); lv {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return lv, nil
	}
	return "", fmt.Errorf("unknown skill level %q (want beginner, intermediate or advanced)", s)
}

// Request is a study plan request. All fields are required.
type Request struct {
	Subject       string
	LearningStyle LearningStyle
	SkillLevel    SkillLevel
}

// Plan is a generated study plan. Text is free-form markdown-ish prose.
// Fallback is set when Text is the apology message.
type Plan struct {
	Subject       string
	LearningStyle LearningStyle
	SkillLevel    SkillLevel
	Text          string
	Fallback      bool
}

// Record converts the plan into a dashboard record dated now.
func (p Plan) Record(now time.Time) dashboard.StudyPlanRecord {
	return dashboard.StudyPlanRecord{
		ID:            uuid.NewString(),
		Topic:         p.Subject,
		Date:          now,
		LearningStyle: string(p.LearningStyle),
		SkillLevel:    string(p.SkillLevel),
	}
}
