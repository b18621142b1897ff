package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	result   quiz.Result
	fallback bool
	streak   int
	done     components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. fallback marks a quiz built from the sample
// questions; streak is the streak after recording the quiz.
func New(result quiz.Result, fallback bool, streak int) *SummaryScreen {
	return &SummaryScreen{
		result:   result,
		fallback: fallback,
		streak:   streak,
		done: components.NewButton("Back to menu", true, func() tea.Cmd {
			return func() tea.Msg { return router.PopToRootMsg{} }
		}),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	var cmd tea.Cmd
	s.done, cmd = s.done.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(components.Heading(verdict(r.Score()), width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Topic: %s", r.Topic)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Score: %.0f%%",
		r.Total, r.Correct, r.Score())
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(statsLine))
	b.WriteString("\n\n")

	barWidth := min(components.ContentWidth(width), 50)
	bar := components.NewProgressBar("", r.Score()/100, "", barWidth).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
	b.WriteString("\n\n")

	if s.streak > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("Study streak: %d day(s)", s.streak)))
		b.WriteString("\n")
	}
	if s.fallback {
		b.WriteString(components.Centered("These were sample questions; the quiz could not be generated.", width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.done.View()))
	return b.String()
}

func verdict(score float64) string {
	switch {
	case score >= 90:
		return "Outstanding!"
	case score >= 70:
		return "Great work!"
	case score >= 50:
		return "Good effort!"
	default:
		return "Keep practicing!"
	}
}
