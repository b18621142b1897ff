package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
)

func testResult() quiz.Result {
	return quiz.Result{Topic: "Photosynthesis", Correct: 4, Total: 5}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(), false, 3)
	if s.Title() != "Quiz Complete" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Complete")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testResult(), false, 3).View(80, 24)
	for _, want := range []string{"Great work!", "Photosynthesis", "Score: 80%", "Study streak: 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "sample questions") {
		t.Error("non-fallback quiz should not mention sample questions")
	}
}

func TestSummaryScreen_FallbackNote(t *testing.T) {
	view := New(quiz.Result{Topic: quiz.SampleTopic, Correct: 1, Total: 3}, true, 1).View(80, 24)
	if !strings.Contains(view, "sample questions") {
		t.Error("expected fallback note")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testResult(), false, 1)
		_, cmd := s.Update(tea.KeyPressMsg{Code: key})
		if cmd == nil {
			t.Fatalf("expected a command on key %d", key)
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Errorf("expected PopToRootMsg on key %d", key)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	hints := New(testResult(), false, 0).KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

func TestVerdict(t *testing.T) {
	tests := map[float64]string{100: "Outstanding!", 75: "Great work!", 50: "Good effort!", 0: "Keep practicing!"}
	for score, want := range tests {
		if got := verdict(score); got != want {
			t.Errorf("verdict(%v) = %q, want %q", score, got, want)
		}
	}
}
