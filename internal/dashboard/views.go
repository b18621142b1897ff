package dashboard

import (
	"context"
	"math"
	"slices"
	"time"
)

// AverageScore returns the mean score rounded to two decimals, or 0 when
// scores is empty.
func AverageScore(scores []QuizRecord) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s.Score
	}
	return round2(sum / float64(len(scores)))
}

// TopTopics returns up to limit topics by descending count. Ties keep their
// input order. A non-positive limit uses DefaultTopTopics.
func TopTopics(topics []TopicCount, limit int) []TopicCount {
	if limit <= 0 {
		limit = DefaultTopTopics
	}
	sorted := slices.Clone(topics)
	slices.SortStableFunc(sorted, func(a, b TopicCount) int {
		return b.Count - a.Count
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// ScoresByDate returns one entry per day for the trailing window ending
// today, oldest first. Each entry holds the mean score of quizzes taken that
// calendar day, or 0.
func (a *Aggregator) ScoresByDate(scores []QuizRecord, days int) []DailyScore {
	window := a.window(days)
	out := make([]DailyScore, len(window))
	for i, day := range window {
		var sum float64
		var n int
		for _, s := range scores {
			if sameDay(s.Date, day, a.loc) {
				sum += s.Score
				n++
			}
		}
		out[i] = DailyScore{Date: day}
		if n > 0 {
			out[i].Score = round2(sum / float64(n))
		}
	}
	return out
}

// StudyTimeByDate spreads total minutes evenly over the trailing window
// using integer division.
func (a *Aggregator) StudyTimeByDate(total float64, days int) []DailyMinutes {
	window := a.window(days)
	if len(window) == 0 {
		return []DailyMinutes{}
	}
	per := int(total) / len(window)
	out := make([]DailyMinutes, len(window))
	for i, day := range window {
		out[i] = DailyMinutes{Date: day, Minutes: per}
	}
	return out
}

// Summary loads the record and computes every dashboard view over the
// default window.
func (a *Aggregator) Summary(ctx context.Context) Summary {
	d := a.Load(ctx)
	return Summary{
		QuizzesCompleted:  d.QuizzesCompleted,
		StudyPlansCreated: d.StudyPlansCreated,
		StudyTime:         d.StudyTime,
		StreakDays:        d.StreakDays,
		LastActivity:      d.LastActivity,
		AverageScore:      AverageScore(d.QuizScores),
		TopTopics:         TopTopics(d.TopicsCovered, DefaultTopTopics),
		ScoresByDate:      a.ScoresByDate(d.QuizScores, DefaultWindowDays),
		StudyTimeByDate:   a.StudyTimeByDate(d.StudyTime, DefaultWindowDays),
	}
}

// window returns the calendar days of the trailing window, oldest first.
func (a *Aggregator) window(days int) []time.Time {
	if days <= 0 {
		return nil
	}
	today := calendarDay(a.now(), a.loc)
	y, m, d := today.Date()
	out := make([]time.Time, days)
	for i := range days {
		out[i] = time.Date(y, m, d-(days-1-i), 0, 0, 0, 0, a.loc)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
