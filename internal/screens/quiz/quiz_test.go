package quiz

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/dashboard"
	"github.com/abhisek/studybuddy/internal/llm"
	qz "github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/summary"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/tips"
)

const twoQuestions = `[
 {"question":"Which gas do plants absorb?","options":["Oxygen","Carbon dioxide","Helium"],"correctAnswer":1,
  "explanation":"Plants take in CO2 for photosynthesis."},
 {"question":"Where does photosynthesis happen?","options":["Chloroplast","Nucleus"],"correctAnswer":0}
]`

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuizScreen(t *testing.T, responses ...llm.MockResponse) (*QuizScreen, *dashboard.Aggregator) {
	t.Helper()
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	agg := dashboard.NewAggregator(store.NewMemoryKV(), dashboard.WithClock(clock), dashboard.WithLocation(time.UTC))
	s := New(Deps{
		Quizzes:   qz.NewService(llm.NewMockProvider(responses...), qz.DefaultConfig(), nil),
		Tips:      tips.NewService(nil, tips.DefaultConfig(), nil),
		Dashboard: agg,
		Now:       clock,
	})
	return s, agg
}

func typeText(s *QuizScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

// run executes cmd and feeds the resulting message back into the screen.
func run(t *testing.T, s *QuizScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())
	return next
}

func TestQuizScreen_EmptyTopic(t *testing.T) {
	s, _ := testQuizScreen(t)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, phaseTopic, s.phase)
	assert.Contains(t, s.View(80, 24), "topic is required")
}

func TestQuizScreen_DifficultyCycles(t *testing.T) {
	s, _ := testQuizScreen(t)
	assert.Equal(t, qz.DifficultyMedium, difficulties[s.difficulty])

	s.Update(specialKey(tea.KeyTab))
	assert.Equal(t, qz.DifficultyHard, difficulties[s.difficulty])
	s.Update(specialKey(tea.KeyTab))
	assert.Equal(t, qz.DifficultyEasy, difficulties[s.difficulty])
}

func TestQuizScreen_FullFlow(t *testing.T) {
	s, agg := testQuizScreen(t, llm.MockResponse{Content: json.RawMessage(twoQuestions)})

	typeText(s, "Plants")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, phaseLoading, s.phase)
	run(t, s, cmd)

	require.Equal(t, phaseQuestion, s.phase)
	assert.Contains(t, s.View(100, 30), "Which gas do plants absorb?")

	// Answer B (correct) by letter.
	_, cmd = s.Update(keyPress('b'))
	require.Equal(t, phaseFeedback, s.phase)
	assert.True(t, s.lastCorrect)
	run(t, s, cmd)
	require.NotNil(t, s.tip, "tip shown after answering")
	view := s.View(100, 30)
	assert.Contains(t, view, "Correct!")
	assert.Contains(t, view, "Plants take in CO2")

	s.Update(specialKey(tea.KeyEnter))
	require.Equal(t, phaseQuestion, s.phase)
	assert.Nil(t, s.tip)

	// Answer B (wrong) with arrow + enter.
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))
	require.Equal(t, phaseFeedback, s.phase)
	assert.False(t, s.lastCorrect)
	assert.Contains(t, s.View(100, 30), "Correct answer: A) Chloroplast")

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, phaseRecording, s.phase)
	require.NotNil(t, cmd)

	msg := cmd()
	rec, ok := msg.(quizRecordedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, rec.Data.StreakDays)

	_, cmd = s.Update(rec)
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)
	assert.Equal(t, screen.StreakMsg{Days: 1}, batch[0]())
	replace, ok := batch[1]().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &summary.SummaryScreen{}, replace.Screen)

	data := agg.Load(context.Background())
	require.Len(t, data.QuizScores, 1)
	assert.Equal(t, 50.0, data.QuizScores[0].Score)
	assert.Equal(t, "Plants", data.QuizScores[0].Topic)
	assert.Equal(t, 2, data.QuizScores[0].QuestionCount)
}

func TestQuizScreen_FallbackQuiz(t *testing.T) {
	s, _ := testQuizScreen(t, llm.MockResponse{Content: json.RawMessage(`"no quiz today"`)})

	typeText(s, "Astronomy")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(t, s, cmd)

	require.Equal(t, phaseQuestion, s.phase)
	assert.True(t, s.quiz.Fallback)
	assert.Equal(t, 3, s.attempt.Total())
	assert.True(t, strings.Contains(s.View(120, 30), "sample questions"))
}

func TestQuizScreen_NoProvider(t *testing.T) {
	s := New(Deps{Quizzes: qz.NewService(nil, qz.DefaultConfig(), nil)})

	typeText(s, "Go")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(t, s, cmd)

	assert.Equal(t, phaseError, s.phase)
	assert.Contains(t, s.View(80, 24), "No API key set")

	_, cmd = s.Update(keyPress('x'))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestQuizScreen_StaleTipIgnored(t *testing.T) {
	s, _ := testQuizScreen(t, llm.MockResponse{Content: json.RawMessage(twoQuestions)})
	typeText(s, "Plants")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(t, s, cmd)

	s.Update(keyPress('a'))
	s.Update(tipReadyMsg{Index: 5, Tip: tips.Tip{Content: "old"}})
	assert.Nil(t, s.tip)
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s, _ := testQuizScreen(t)
	assert.NotEmpty(t, s.KeyHints())
}

func TestQuizScreen_EscLeaves(t *testing.T) {
	s, _ := testQuizScreen(t, llm.MockResponse{Content: json.RawMessage(twoQuestions)})

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())

	typeText(s, "Plants")
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	_, esc := s.Update(specialKey(tea.KeyEscape))
	assert.Nil(t, esc, "esc is ignored while loading")

	run(t, s, cmd)
	_, cmd = s.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
