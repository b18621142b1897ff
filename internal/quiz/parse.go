package quiz

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/studybuddy/internal/llm"
)

// arrayPattern grabs everything from the first '[' to the last ']'.
// extractArray narrows it when prose after the array holds brackets.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// QuestionsSchema is the JSON schema a parsed question array must satisfy.
var QuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A list of multiple-choice questions",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
				"options": map[string]any{
					"type":     "array",
					"minItems": 2,
					"items":    map[string]any{"type": "string"},
				},
				"correctAnswer": map[string]any{
					"type":    "integer",
					"minimum": 0,
				},
				"explanation": map[string]any{"type": "string"},
			},
			"required": []any{"question", "options", "correctAnswer"},
		},
	},
}

// ParseError reports that a model response held no usable question array.
// Callers substitute SampleQuestions.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse quiz response: %s: %v", e.Reason, e.Err)
	}
	return "parse quiz response: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseResponse extracts the bracketed JSON array embedded in raw model
// text and decodes it into questions.
func ParseResponse(raw string) ([]Question, error) {
	match := extractArray(raw)
	if match == "" {
		return nil, &ParseError{Reason: "no JSON array found"}
	}

	if _, err := llm.ValidateJSON(QuestionsSchema, json.RawMessage(match)); err != nil {
		return nil, &ParseError{Reason: "invalid question array", Err: err}
	}

	var questions []Question
	if err := json.Unmarshal([]byte(match), &questions); err != nil {
		return nil, &ParseError{Reason: "decode questions", Err: err}
	}

	for i, q := range questions {
		if q.CorrectAnswer >= len(q.Options) {
			return nil, &ParseError{
				Reason: fmt.Sprintf("question %d: correctAnswer %d out of range for %d options", i+1, q.CorrectAnswer, len(q.Options)),
			}
		}
	}
	return questions, nil
}

// extractArray returns the bracketed span of raw. When the greedy span is
// not valid JSON, as in `[...] See [1].`, the first complete JSON value
// starting at the first '[' is used instead.
func extractArray(raw string) string {
	match := arrayPattern.FindString(raw)
	if match == "" || json.Valid([]byte(match)) {
		return match
	}
	var first json.RawMessage
	if err := json.NewDecoder(strings.NewReader(match)).Decode(&first); err != nil {
		return match
	}
	return string(first)
}
