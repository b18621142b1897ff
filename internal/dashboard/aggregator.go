// Package dashboard maintains the usage statistics record and derives the
// views shown on the dashboard.
package dashboard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/studybuddy/internal/store"
)

// Aggregator owns the Data record persisted in a key-value store.
// Record operations are serialized, so concurrent callers in one process
// never lose an update.
type Aggregator struct {
	kv     store.KV
	logger *zap.Logger
	now    func() time.Time
	loc    *time.Location

	mu sync.Mutex
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger used for storage failures.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLocation sets the location calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// NewAggregator creates an Aggregator persisting to kv.
func NewAggregator(kv store.KV, opts ...Option) *Aggregator {
	a := &Aggregator{
		kv:     kv,
		logger: zap.NewNop(),
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load returns the persisted record. A missing blob, an unreadable blob or a
// storage error yields the default record, which is not written back.
func (a *Aggregator) Load(ctx context.Context) Data {
	raw, ok, err := a.kv.Get(ctx, StorageKey)
	if err != nil {
		a.logger.Warn("load dashboard data", zap.Error(err))
		return defaultData(a.now())
	}
	if !ok {
		return defaultData(a.now())
	}

	var d Data
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		a.logger.Warn("parse dashboard data", zap.Error(err))
		return defaultData(a.now())
	}
	if d.QuizScores == nil {
		d.QuizScores = []QuizRecord{}
	}
	if d.TopicsCovered == nil {
		d.TopicsCovered = []TopicCount{}
	}
	return d
}

// Save persists d in full. Failures are logged and dropped.
// Timestamps are written in RFC 3339 with only significant fractional
// digits, so a blob stored as "2024-01-01T00:00:00.000Z" comes back as
// "2024-01-01T00:00:00Z". The values are equal; only blobs written by Save
// are byte-stable under Save(Load()).
func (a *Aggregator) Save(ctx context.Context, d Data) {
	raw, err := json.Marshal(d)
	if err != nil {
		a.logger.Error("encode dashboard data", zap.Error(err))
		return
	}
	if err := a.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		a.logger.Error("save dashboard data", zap.Error(err))
	}
}

// RecordQuiz appends a finished quiz and returns the updated record.
func (a *Aggregator) RecordQuiz(ctx context.Context, r QuizRecord) Data {
	return a.update(ctx, func(d *Data) {
		d.QuizzesCompleted++
		d.QuizScores = append(d.QuizScores, r)
		d.TopicsCovered = addTopic(d.TopicsCovered, r.Topic)
	})
}

// RecordStudyPlan counts a generated study plan and its topic.
func (a *Aggregator) RecordStudyPlan(ctx context.Context, r StudyPlanRecord) Data {
	return a.update(ctx, func(d *Data) {
		d.StudyPlansCreated++
		d.TopicsCovered = addTopic(d.TopicsCovered, r.Topic)
	})
}

// RecordStudyTime adds minutes to the cumulative study time. Negative
// values count as zero.
func (a *Aggregator) RecordStudyTime(ctx context.Context, minutes float64) Data {
	if minutes < 0 {
		minutes = 0
	}
	return a.update(ctx, func(d *Data) {
		d.StudyTime += minutes
	})
}

// Reset removes the stored record. The next Load returns defaults.
func (a *Aggregator) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.kv.Remove(ctx, StorageKey)
}

// update runs one read-modify-write cycle: mutate, bump the streak against
// the previous activity, stamp LastActivity, save.
func (a *Aggregator) update(ctx context.Context, mutate func(*Data)) Data {
	a.mu.Lock()
	defer a.mu.Unlock()

	d := a.Load(ctx)
	now := a.now()

	mutate(&d)
	d.StreakDays = nextStreak(d.StreakDays, d.LastActivity, now, a.loc)
	d.LastActivity = now

	a.Save(ctx, d)
	return d
}

func addTopic(topics []TopicCount, name string) []TopicCount {
	for i := range topics {
		if topics[i].Name == name {
			topics[i].Count++
			return topics
		}
	}
	return append(topics, TopicCount{Name: name, Count: 1})
}
