package quiz

import (
	"fmt"
	"strings"
)

// BuildPrompt returns the quiz generation prompt. The model is asked for a
// JSON array of {question, options, correctAnswer} objects.
func BuildPrompt(topic string, difficulty Difficulty, questionCount, optionCount int) string {
	return fmt.Sprintf(`Generate %d multiple-choice questions about %s at %s difficulty level.
Each question should have %d options with one correct answer.
Format the response as a JSON array with the following structure:
[
  {
    "question": "The question text",
    "options": [%s],
    "correctAnswer": 0,
    "explanation": "Why the correct answer is right"
  }
]
"correctAnswer" is the zero-based index of the correct option.

Make sure the questions test understanding rather than just memorization.
Include an explanation for why the correct answer is right.`,
		questionCount, topic, difficulty, optionCount, optionPlaceholders(optionCount))
}

func optionPlaceholders(n int) string {
	opts := make([]string, n)
	for i := range opts {
		opts[i] = fmt.Sprintf("%q", fmt.Sprintf("Option %d", i+1))
	}
	return strings.Join(opts, ", ")
}
