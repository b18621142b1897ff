package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	dash "github.com/abhisek/studybuddy/internal/dashboard"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

type tab int

const (
	tabOverview tab = iota
	tabScores
	tabStudyTime
	tabTopics
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Quiz Scores", "Study Time", "Top Topics"}

type summaryLoadedMsg struct {
	Summary dash.Summary
}

type studyTimeLoggedMsg struct {
	Data dash.Data
}

// DashboardScreen shows progress statistics.
type DashboardScreen struct {
	agg     *dash.Aggregator
	summary dash.Summary
	loaded  bool
	tab     tab

	logging bool
	input   components.TextInput
	status  string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen backed by agg.
func New(agg *dash.Aggregator) *DashboardScreen {
	return &DashboardScreen{agg: agg}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return s.load()
}

func (s *DashboardScreen) load() tea.Cmd {
	if s.agg == nil {
		return nil
	}
	agg := s.agg
	return func() tea.Msg {
		return summaryLoadedMsg{Summary: agg.Summary(context.Background())}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	if s.logging {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save minutes"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch view"},
		{Key: "L", Description: "Log study time"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		s.summary = msg.Summary
		s.loaded = true
		return s, nil

	case studyTimeLoggedMsg:
		s.status = fmt.Sprintf("Logged. Total study time: %.0f minutes.", msg.Data.StudyTime)
		return s, tea.Batch(
			s.load(),
			func() tea.Msg { return screen.StreakMsg{Days: msg.Data.StreakDays} },
		)

	case tea.KeyMsg:
		if s.logging {
			return s.handleLoggingKey(msg)
		}
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right":
			s.tab = (s.tab + 1) % tabCount
		case "shift+tab", "left":
			s.tab = (s.tab + tabCount - 1) % tabCount
		case "l":
			s.logging = true
			s.status = ""
			s.input = components.NewTextInput("minutes", true, 4)
			return s, s.input.Init()
		case "r":
			return s, s.load()
		}
		return s, nil
	}

	if s.logging {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DashboardScreen) handleLoggingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.logging = false
		return s, nil
	case "enter":
	default:
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	s.logging = false
	minutes, err := s.input.NumericValue()
	if err != nil || minutes <= 0 {
		s.status = "Enter a whole number of minutes."
		return s, nil
	}
	if s.agg == nil {
		return s, nil
	}
	agg := s.agg
	return s, func() tea.Msg {
		return studyTimeLoggedMsg{Data: agg.RecordStudyTime(context.Background(), float64(minutes))}
	}
}

func (s *DashboardScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading dashboard...")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs()))
	b.WriteString("\n\n")

	var body string
	switch s.tab {
	case tabOverview:
		body = s.renderOverview()
	case tabScores:
		body = renderScores(s.summary.ScoresByDate, cw-6)
	case tabStudyTime:
		body = renderStudyTime(s.summary.StudyTimeByDate, cw-6)
	case tabTopics:
		body = renderTopics(s.summary.TopTopics, cw-6)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(body, cw)))
	b.WriteString("\n\n")

	if s.logging {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Minutes studied: ")+s.input.View()))
		b.WriteString("\n")
	}
	if s.status != "" {
		b.WriteString(components.Centered(s.status, width))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *DashboardScreen) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if tab(i) == s.tab {
			parts = append(parts, theme.Selected.Render("["+name+"]"))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+name+" "))
		}
	}
	return strings.Join(parts, "  ")
}

func (s *DashboardScreen) renderOverview() string {
	sum := s.summary
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(22)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	row := func(k, v string) string { return label.Render(k) + value.Render(v) }

	last := "never"
	if sum.StreakDays > 0 {
		last = sum.LastActivity.Local().Format("Mon Jan 2, 15:04")
	}
	lines := []string{
		row("Quizzes completed", fmt.Sprintf("%d", sum.QuizzesCompleted)),
		row("Average score", fmt.Sprintf("%.2f%%", sum.AverageScore)),
		row("Study plans created", fmt.Sprintf("%d", sum.StudyPlansCreated)),
		row("Study time", fmt.Sprintf("%.0f min", sum.StudyTime)),
		row("Current streak", fmt.Sprintf("%d day(s)", sum.StreakDays)),
		row("Last activity", last),
	}
	return strings.Join(lines, "\n")
}

func renderScores(days []dash.DailyScore, width int) string {
	lines := make([]string, 0, len(days))
	for _, d := range days {
		bar := components.NewProgressBar(d.Date.Format("Mon 01/02"), d.Score/100,
			fmt.Sprintf("%6.2f%%", d.Score), width)
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func renderStudyTime(days []dash.DailyMinutes, width int) string {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Minutes)
	}
	lines := make([]string, 0, len(days))
	for _, d := range days {
		pct := 0.0
		if peak > 0 {
			pct = float64(d.Minutes) / float64(peak)
		}
		bar := components.NewProgressBar(d.Date.Format("Mon 01/02"), pct,
			fmt.Sprintf("%4d min", d.Minutes), width)
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func renderTopics(topics []dash.TopicCount, width int) string {
	if len(topics) == 0 {
		return theme.Hint.Render("No topics yet. Take a quiz or create a study plan!")
	}
	peak := topics[0].Count
	nameWidth := 0
	for _, t := range topics {
		nameWidth = max(nameWidth, lipgloss.Width(t.Name))
	}
	nameWidth = min(nameWidth, width/3)

	lines := make([]string, 0, len(topics))
	for _, t := range topics {
		name := lipgloss.NewStyle().Width(nameWidth).MaxWidth(nameWidth).Render(t.Name)
		bar := components.NewProgressBar(name, float64(t.Count)/float64(peak),
			fmt.Sprintf("%3d", t.Count), width)
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}
