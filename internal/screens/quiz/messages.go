package quiz

import (
	"github.com/abhisek/studybuddy/internal/dashboard"
	qz "github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/tips"
)

// quizReadyMsg is sent when quiz generation finishes.
type quizReadyMsg struct {
	Quiz qz.Quiz
	Err  error
}

// tipReadyMsg carries the tip fetched after answering question Index.
type tipReadyMsg struct {
	Index int
	Tip   tips.Tip
}

// quizRecordedMsg is sent once the finished quiz is stored.
type quizRecordedMsg struct {
	Data dashboard.Data
}
