package history

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/dashboard"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/store"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 12, 0, 0, 0, time.UTC)
}

func TestRecent(t *testing.T) {
	records := []dashboard.QuizRecord{
		{ID: "a", Date: day(1)},
		{ID: "c", Date: day(3)},
		{ID: "b", Date: day(2)},
	}

	got := Recent(records, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "a", records[0].ID, "input is not reordered")

	assert.Len(t, Recent(records, 0), 3)
}

func TestCorrectCount(t *testing.T) {
	assert.Equal(t, 2, correctCount(dashboard.QuizRecord{Score: 66.67, QuestionCount: 3}))
	assert.Equal(t, 0, correctCount(dashboard.QuizRecord{Score: 0, QuestionCount: 5}))
	assert.Equal(t, 5, correctCount(dashboard.QuizRecord{Score: 100, QuestionCount: 5}))
}

func TestHistoryScreen(t *testing.T) {
	agg := dashboard.NewAggregator(store.NewMemoryKV(),
		dashboard.WithClock(func() time.Time { return day(3) }))
	ctx := context.Background()
	agg.RecordQuiz(ctx, dashboard.QuizRecord{ID: "1", Topic: "Algebra", Score: 40, Date: day(1), QuestionCount: 5})
	agg.RecordQuiz(ctx, dashboard.QuizRecord{ID: "2", Topic: "Biology", Score: 100, Date: day(2), QuestionCount: 4})

	s := New(agg)
	assert.Contains(t, s.View(120, 40), "Loading history")

	s.Update(s.Init()())
	require.Len(t, s.quizzes, 2)
	assert.Equal(t, "Biology", s.quizzes[0].Topic)

	view := s.View(120, 40)
	assert.Contains(t, view, "Algebra")
	assert.Contains(t, view, "100.00%")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected, "selection stops at the last row")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(120, 40), "2 of 5 correct")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(dashboard.NewAggregator(store.NewMemoryKV()))
	s.Update(s.Init()())
	assert.Contains(t, s.View(80, 24), "No quizzes yet")
}
