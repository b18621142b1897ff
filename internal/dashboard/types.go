package dashboard

import "time"

// StorageKey is the key-value key holding the serialized Data blob.
const StorageKey = "@dashboard_data"

const (
	// DefaultTopTopics is the number of topics TopTopics returns when no
	// limit is given.
	DefaultTopTopics = 5

	// DefaultWindowDays is the trailing window used by the per-date series.
	DefaultWindowDays = 7
)

// Data is the single per-user statistics record. It is read, mutated and
// written back in full on every record operation.
type Data struct {
	QuizzesCompleted  int          `json:"quizzesCompleted"`
	StudyPlansCreated int          `json:"studyPlansCreated"`
	QuizScores        []QuizRecord `json:"quizScores"`
	StudyTime         float64      `json:"studyTime"`
	TopicsCovered     []TopicCount `json:"topicsCovered"`
	StreakDays        int          `json:"streakDays"`
	LastActivity      time.Time    `json:"lastActivity"`
}

// QuizRecord is one finished quiz. Score is a percentage in [0, 100].
type QuizRecord struct {
	ID            string    `json:"id"`
	Topic         string    `json:"topic"`
	Score         float64   `json:"score"`
	Date          time.Time `json:"date"`
	QuestionCount int       `json:"questionCount"`
}

// StudyPlanRecord describes a generated study plan. Only its topic is kept
// in Data.
type StudyPlanRecord struct {
	ID            string    `json:"id"`
	Topic         string    `json:"topic"`
	Date          time.Time `json:"date"`
	LearningStyle string    `json:"learningStyle"`
	SkillLevel    string    `json:"skillLevel"`
}

// TopicCount counts recordings of one topic. Names match exactly.
type TopicCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DailyScore is the mean quiz score for one calendar day.
type DailyScore struct {
	Date  time.Time
	Score float64
}

// DailyMinutes is the study time attributed to one calendar day.
type DailyMinutes struct {
	Date    time.Time
	Minutes int
}

// Summary bundles the views the dashboard screen and the stats command show.
type Summary struct {
	QuizzesCompleted  int
	StudyPlansCreated int
	StudyTime         float64
	StreakDays        int
	LastActivity      time.Time
	AverageScore      float64
	TopTopics         []TopicCount
	ScoresByDate      []DailyScore
	StudyTimeByDate   []DailyMinutes
}

// defaultData returns the pristine record used when nothing is stored.
func defaultData(now time.Time) Data {
	return Data{
		QuizScores:    []QuizRecord{},
		TopicsCovered: []TopicCount{},
		LastActivity:  now,
	}
}
