package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/dashboard"
	"github.com/abhisek/studybuddy/internal/llm"
	qz "github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/summary"
	"github.com/abhisek/studybuddy/internal/tips"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

type phase int

const (
	phaseTopic phase = iota
	phaseLoading
	phaseQuestion
	phaseFeedback
	phaseRecording
	phaseError
)

var difficulties = []qz.Difficulty{qz.DifficultyEasy, qz.DifficultyMedium, qz.DifficultyHard}

// Deps are the services the quiz screen drives.
type Deps struct {
	Quizzes   *qz.Service
	Tips      *tips.Service
	Dashboard *dashboard.Aggregator
	Timeout   time.Duration
	Now       func() time.Time
}

// QuizScreen walks the learner from topic entry through every question.
type QuizScreen struct {
	deps Deps

	phase      phase
	input      components.TextInput
	difficulty int
	errMsg     string

	quiz    qz.Quiz
	attempt *qz.Attempt
	mc      components.MultiChoice

	lastCorrect bool
	lastIndex   int
	tip         *tips.Tip
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen.
func New(deps Deps) *QuizScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &QuizScreen{
		deps:       deps,
		input:      components.NewTextInput("e.g. Photosynthesis, World War II, Recursion", false, 80),
		difficulty: 1,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseTopic:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Tab", Description: "Difficulty"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "A-F", Description: "Quick answer"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
		}
	case phaseError:
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	}
	return nil
}

func (s *QuizScreen) View(width, height int) string {
	switch s.phase {
	case phaseTopic:
		return s.renderTopic(width, height)
	case phaseLoading:
		return renderLoading(width, "Loading quiz questions...")
	case phaseQuestion:
		return s.renderQuestion(width, height)
	case phaseFeedback:
		return s.renderFeedback(width, height)
	case phaseRecording:
		return renderLoading(width, "Saving your results...")
	case phaseError:
		return renderError(width, s.errMsg)
	}
	return ""
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleQuizReady(msg)

	case tipReadyMsg:
		if msg.Index == s.lastIndex {
			tip := msg.Tip
			s.tip = &tip
		}
		return s, nil

	case quizRecordedMsg:
		res := s.attempt.Result()
		next := summary.New(res, s.quiz.Fallback, msg.Data.StreakDays)
		return s, tea.Batch(
			func() tea.Msg { return screen.StreakMsg{Days: msg.Data.StreakDays} },
			func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
		)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseTopic {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "esc" && s.phase != phaseLoading && s.phase != phaseRecording {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.phase {
	case phaseTopic:
		switch msg.String() {
		case "enter":
			return s.start()
		case "tab":
			s.difficulty = (s.difficulty + 1) % len(difficulties)
			return s, nil
		case "shift+tab":
			s.difficulty = (s.difficulty + len(difficulties) - 1) % len(difficulties)
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseQuestion:
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			return s.answer(s.mc.ChosenIndex)
		}
		return s, cmd

	case phaseFeedback:
		if msg.String() != "enter" && msg.String() != "space" {
			return s, nil
		}
		if s.attempt.Done() {
			return s.finish()
		}
		s.showCurrent()
		return s, nil

	case phaseError:
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *QuizScreen) start() (screen.Screen, tea.Cmd) {
	topic := s.input.Value()
	if topic == "" {
		s.errMsg = qz.ErrMissingTopic.Error()
		return s, nil
	}
	s.errMsg = ""
	s.phase = phaseLoading

	req := qz.Request{Topic: topic, Difficulty: difficulties[s.difficulty]}
	svc := s.deps.Quizzes
	timeout := s.deps.Timeout
	return s, func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		q, err := svc.Generate(ctx, req)
		return quizReadyMsg{Quiz: q, Err: err}
	}
}

func (s *QuizScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, qz.ErrMissingTopic):
			s.phase = phaseTopic
			s.errMsg = msg.Err.Error()
		case errors.Is(msg.Err, llm.ErrNoProvider):
			s.phase = phaseError
			s.errMsg = "No API key set. Run `studybuddy key set <key>` and try again."
		default:
			s.phase = phaseError
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}

	s.quiz = msg.Quiz
	s.attempt = qz.NewAttempt(msg.Quiz)
	s.showCurrent()
	return s, nil
}

func (s *QuizScreen) showCurrent() {
	q, _, ok := s.attempt.Current()
	if !ok {
		return
	}
	s.mc = components.NewMultiChoice(q.Question, q.Options, q.CorrectAnswer)
	s.tip = nil
	s.phase = phaseQuestion
}

func (s *QuizScreen) answer(choice int) (screen.Screen, tea.Cmd) {
	_, idx, _ := s.attempt.Current()
	correct, err := s.attempt.Answer(choice)
	if err != nil {
		// The component only submits valid indexes; reset and let the
		// learner pick again.
		s.showCurrent()
		return s, nil
	}
	s.lastCorrect = correct
	s.lastIndex = idx
	s.phase = phaseFeedback

	if s.deps.Tips == nil {
		return s, nil
	}
	tipSvc := s.deps.Tips
	timeout := s.deps.Timeout
	return s, func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		return tipReadyMsg{Index: idx, Tip: tipSvc.Tip(ctx, "")}
	}
}

func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	s.phase = phaseRecording
	rec := s.attempt.Result().Record(s.deps.Now())
	agg := s.deps.Dashboard
	return s, func() tea.Msg {
		if agg == nil {
			return quizRecordedMsg{}
		}
		return quizRecordedMsg{Data: agg.RecordQuiz(context.Background(), rec)}
	}
}

func withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}
