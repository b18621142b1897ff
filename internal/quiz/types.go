package quiz

import "fmt"

// Difficulty is the requested question difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// Bounds on what a user may request per quiz.
const (
	MinQuestions = 3
	MaxQuestions = 10
	MinOptions   = 2
	MaxOptions   = 6

	DefaultQuestions = 5
	DefaultOptions   = 4
)

// Question is one multiple-choice question. CorrectAnswer is a zero-based
// index into Options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`

	// Explanation is optional model commentary on the correct answer.
	Explanation string `json:"explanation,omitempty"`
}

// Request describes the quiz a user asked for.
type Request struct {
	Topic         string
	Difficulty    Difficulty
	QuestionCount int
	OptionCount   int
}

// normalize fills defaults and clamps counts into the allowed ranges.
func (r Request) normalize() Request {
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
	if r.QuestionCount == 0 {
		r.QuestionCount = DefaultQuestions
	}
	if r.OptionCount == 0 {
		r.OptionCount = DefaultOptions
	}
	r.QuestionCount = min(max(r.QuestionCount, MinQuestions), MaxQuestions)
	r.OptionCount = min(max(r.OptionCount, MinOptions), MaxOptions)
	return r
}

// Quiz is a generated quiz ready to administer. Fallback is set when the
// questions came from the static sample bank.
type Quiz struct {
	Topic     string
	Questions []Question
	Fallback  bool
}
