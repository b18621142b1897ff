package history

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/dashboard"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Limit caps how many quizzes the screen lists.
const Limit = 50

type historyLoadedMsg struct {
	Quizzes []dashboard.QuizRecord
	Topics  map[string]int
}

// HistoryScreen lists past quizzes, newest first.
type HistoryScreen struct {
	agg      *dashboard.Aggregator
	quizzes  []dashboard.QuizRecord
	topics   map[string]int
	selected int
	expanded map[int]bool
	loaded   bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(agg *dashboard.Aggregator) *HistoryScreen {
	return &HistoryScreen{
		agg:      agg,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	agg := s.agg
	return func() tea.Msg {
		if agg == nil {
			return historyLoadedMsg{}
		}
		data := agg.Load(context.Background())
		return historyLoadedMsg{
			Quizzes: Recent(data.QuizScores, Limit),
			Topics:  topicCounts(data.TopicsCovered),
		}
	}
}

// Recent returns up to limit quiz records ordered newest first.
func Recent(records []dashboard.QuizRecord, limit int) []dashboard.QuizRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b dashboard.QuizRecord) int {
		return b.Date.Compare(a.Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func topicCounts(topics []dashboard.TopicCount) map[string]int {
	m := make(map[string]int, len(topics))
	for _, t := range topics {
		m[t.Name] = t.Count
	}
	return m
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.quizzes = msg.Quizzes
		s.topics = msg.Topics
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.quizzes)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.quizzes) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Take one from the menu!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, q := range s.quizzes {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-24s  %2d questions  ",
			prefix, q.Date.Local().Format("Jan 02, 2006"), truncate(q.Topic, 24), q.QuestionCount)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		score := lipgloss.NewStyle().Foreground(scoreColor(q.Score)).
			Render(fmt.Sprintf("%6.2f%%", q.Score))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)+score))
		b.WriteString("\n")

		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
			details := []string{
				fmt.Sprintf("    Taken %s", q.Date.Local().Format("Mon Jan 2 15:04")),
				fmt.Sprintf("    %d of %d correct", correctCount(q), q.QuestionCount),
			}
			if n := s.topics[q.Topic]; n > 0 {
				details = append(details, fmt.Sprintf("    %q studied %d time(s)", q.Topic, n))
			}
			for _, d := range details {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(d)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// correctCount recovers the number of correct answers from the rounded
// percentage.
func correctCount(q dashboard.QuizRecord) int {
	n := int(math.Round(q.Score * float64(q.QuestionCount) / 100))
	return min(max(n, 0), q.QuestionCount)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func scoreColor(score float64) color.Color {
	switch {
	case score >= 80:
		return theme.Success
	case score >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}
