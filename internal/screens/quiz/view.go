package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

func (s *QuizScreen) renderTopic(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(components.Heading("What would you like to be quizzed on?", width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(s.input.View(), cw)))
	b.WriteString("\n\n")

	var opts []string
	for i, d := range difficulties {
		label := string(d)
		if i == s.difficulty {
			opts = append(opts, theme.Selected.Render("["+label+"]"))
		} else {
			opts = append(opts, theme.Unselected.Render(" "+label+" "))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render("Difficulty: ")+strings.Join(opts, "  ")))
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}
	return b.String()
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	_, idx, _ := s.attempt.Current()
	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", idx+1, s.attempt.Total()),
		float64(idx)/float64(s.attempt.Total()),
		s.quiz.Topic,
		cw,
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, progress.View()))
	b.WriteString("\n\n")

	if s.quiz.Fallback {
		b.WriteString(components.Centered("Could not generate a quiz for that topic. Here are some sample questions instead.", width))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(s.mc.View(cw-6), cw)))
	return b.String()
}

func (s *QuizScreen) renderFeedback(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(s.mc.View(cw-6), cw)))
	b.WriteString("\n\n")

	if s.lastCorrect {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Success).Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).Bold(true).
			Render("Not quite"))
		if s.mc.CorrectIndex >= 0 && s.mc.CorrectIndex < len(s.mc.Options) {
			b.WriteString("\n")
			b.WriteString(components.Centered(fmt.Sprintf("Correct answer: %s) %s",
				components.OptionLabel(s.mc.CorrectIndex), s.mc.Options[s.mc.CorrectIndex]), width))
		}
	}
	b.WriteString("\n\n")

	if q := s.quiz.Questions[s.lastIndex]; q.Explanation != "" {
		exp := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	if s.deps.Tips != nil {
		tipText := theme.Hint.Render("Fetching a study tip...")
		if s.tip != nil {
			tipText = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Ethical AI Tip: ") +
				lipgloss.NewStyle().Foreground(theme.Text).Render(s.tip.Content)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(tipText, cw)))
		b.WriteString("\n\n")
	}

	next := "Press Enter for the next question"
	if s.attempt.Done() {
		next = "Press Enter to see your results"
	}
	b.WriteString(components.Centered(next, width))
	return b.String()
}

func renderLoading(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + text)
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
