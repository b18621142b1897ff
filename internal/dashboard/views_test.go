package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/store"
)

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"two", []float64{80, 90}, 85},
		{"rounds to two decimals", []float64{100, 100, 0}, 66.67},
		{"single", []float64{42.5}, 42.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var recs []QuizRecord
			for _, s := range tt.scores {
				recs = append(recs, QuizRecord{Score: s})
			}
			assert.Equal(t, tt.want, AverageScore(recs))
		})
	}
}

func TestTopTopics(t *testing.T) {
	in := []TopicCount{{"A", 5}, {"B", 9}, {"C", 9}}

	assert.Equal(t, []TopicCount{{"B", 9}, {"C", 9}}, TopTopics(in, 2))
	assert.Equal(t, []TopicCount{{"B", 9}, {"C", 9}, {"A", 5}}, TopTopics(in, 10))
	assert.Equal(t, []TopicCount{{"A", 5}, {"B", 9}, {"C", 9}}, in, "input is not reordered")
	assert.Empty(t, TopTopics(nil, 3))
}

func TestTopTopicsDefaultLimit(t *testing.T) {
	in := []TopicCount{{"a", 1}, {"b", 2}, {"c", 3}, {"d", 4}, {"e", 5}, {"f", 6}}
	got := TopTopics(in, 0)
	require.Len(t, got, DefaultTopTopics)
	assert.Equal(t, "f", got[0].Name)
	assert.Equal(t, "b", got[4].Name)
}

func TestScoresByDateOneQuizToday(t *testing.T) {
	now := day(2024, 6, 15, 14)
	agg, _, _ := newTestAggregator(t, store.NewMemoryKV(), now)

	got := agg.ScoresByDate([]QuizRecord{{Score: 100, Date: now}}, 7)
	require.Len(t, got, 7)
	for i, e := range got[:6] {
		assert.Equal(t, 0.0, e.Score)
		assert.Equal(t, day(2024, 6, 9+i, 0), e.Date)
	}
	assert.Equal(t, 100.0, got[6].Score)
	assert.Equal(t, day(2024, 6, 15, 0), got[6].Date)
}

func TestScoresByDateMeansPerCalendarDay(t *testing.T) {
	now := day(2024, 3, 2, 10)
	agg, _, _ := newTestAggregator(t, store.NewMemoryKV(), now)

	scores := []QuizRecord{
		{Score: 60, Date: day(2024, 3, 1, 1)},
		{Score: 70, Date: day(2024, 3, 1, 23)},
		{Score: 90, Date: day(2024, 3, 2, 0)},
		{Score: 50, Date: day(2024, 2, 20, 12)}, // outside the window
	}
	got := agg.ScoresByDate(scores, 3)
	require.Len(t, got, 3)
	assert.Equal(t, day(2024, 2, 29, 0), got[0].Date, "leap day included")
	assert.Equal(t, 0.0, got[0].Score)
	assert.Equal(t, 65.0, got[1].Score)
	assert.Equal(t, 90.0, got[2].Score)

	assert.Empty(t, agg.ScoresByDate(scores, 0))
}

func TestStudyTimeByDate(t *testing.T) {
	agg, _, _ := newTestAggregator(t, store.NewMemoryKV(), day(2024, 1, 10, 9))

	got := agg.StudyTimeByDate(100, 7)
	require.Len(t, got, 7)
	for _, e := range got {
		assert.Equal(t, 14, e.Minutes)
	}
	assert.Equal(t, day(2024, 1, 4, 0), got[0].Date)
	assert.Equal(t, day(2024, 1, 10, 0), got[6].Date)

	assert.Equal(t, 0, agg.StudyTimeByDate(6.9, 7)[0].Minutes)
	assert.Empty(t, agg.StudyTimeByDate(100, -1))
}

func TestSummary(t *testing.T) {
	now := day(2024, 1, 10, 9)
	agg, _, _ := newTestAggregator(t, store.NewMemoryKV(), now)
	ctx := context.Background()

	agg.RecordQuiz(ctx, QuizRecord{Topic: "Go", Score: 80, Date: now})
	agg.RecordQuiz(ctx, QuizRecord{Topic: "Rust", Score: 90, Date: now})
	agg.RecordStudyPlan(ctx, StudyPlanRecord{Topic: "Go"})
	agg.RecordStudyTime(ctx, 70)

	s := agg.Summary(ctx)
	assert.Equal(t, 2, s.QuizzesCompleted)
	assert.Equal(t, 1, s.StudyPlansCreated)
	assert.Equal(t, 85.0, s.AverageScore)
	assert.Equal(t, 1, s.StreakDays)
	assert.Equal(t, []TopicCount{{"Go", 2}, {"Rust", 1}}, s.TopTopics)
	require.Len(t, s.ScoresByDate, DefaultWindowDays)
	assert.Equal(t, 85.0, s.ScoresByDate[DefaultWindowDays-1].Score)
	require.Len(t, s.StudyTimeByDate, DefaultWindowDays)
	assert.Equal(t, 10, s.StudyTimeByDate[0].Minutes)
	assert.True(t, s.LastActivity.Equal(now))
}
