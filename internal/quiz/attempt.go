package quiz

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/dashboard"
)

// ErrQuizFinished is returned when answering past the last question.
var ErrQuizFinished = errors.New("quiz already finished")

// ErrInvalidChoice is returned for an option index outside the question.
var ErrInvalidChoice = errors.New("choice out of range")

// Attempt walks a learner through a quiz one question at a time.
type Attempt struct {
	quiz    Quiz
	current int
	correct int
}

// NewAttempt starts an attempt at q.
func NewAttempt(q Quiz) *Attempt {
	return &Attempt{quiz: q}
}

// Current returns the question awaiting an answer and its zero-based index.
// ok is false once every question has been answered.
func (a *Attempt) Current() (q Question, index int, ok bool) {
	if a.Done() {
		return Question{}, a.current, false
	}
	return a.quiz.Questions[a.current], a.current, true
}

// Answer records choice for the current question, advances, and reports
// whether the choice was correct.
func (a *Attempt) Answer(choice int) (bool, error) {
	q, _, ok := a.Current()
	if !ok {
		return false, ErrQuizFinished
	}
	if choice < 0 || choice >= len(q.Options) {
		return false, ErrInvalidChoice
	}

	a.current++
	correct := choice == q.CorrectAnswer
	if correct {
		a.correct++
	}
	return correct, nil
}

// Done reports whether every question has been answered.
func (a *Attempt) Done() bool {
	return a.current >= len(a.quiz.Questions)
}

// Total returns the number of questions.
func (a *Attempt) Total() int { return len(a.quiz.Questions) }

// Answered returns how many questions have been answered.
func (a *Attempt) Answered() int { return a.current }

// Result returns the tally so far.
func (a *Attempt) Result() Result {
	return Result{Topic: a.quiz.Topic, Correct: a.correct, Total: len(a.quiz.Questions)}
}

// Result is the outcome of an attempt.
type Result struct {
	Topic   string
	Correct int
	Total   int
}

// Score returns the percentage of correct answers rounded to two
// decimals, or 0 for an empty quiz.
func (r Result) Score() float64 {
	if r.Total == 0 {
		return 0
	}
	return math.Round(float64(r.Correct)/float64(r.Total)*10000) / 100
}

// Record converts the result into a dashboard quiz record dated now.
func (r Result) Record(now time.Time) dashboard.QuizRecord {
	return dashboard.QuizRecord{
		ID:            uuid.NewString(),
		Topic:         r.Topic,
		Score:         r.Score(),
		Date:          now,
		QuestionCount: r.Total,
	}
}
