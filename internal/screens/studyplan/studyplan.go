package studyplan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/dashboard"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	sp "github.com/abhisek/studybuddy/internal/studyplan"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

type phase int

const (
	phaseForm phase = iota
	phaseLoading
	phasePlan
	phaseError
)

type field int

const (
	fieldSubject field = iota
	fieldStyle
	fieldLevel
	fieldCount
)

var (
	styles = []sp.LearningStyle{sp.StyleVisual, sp.StyleText, sp.StyleInteractive}
	levels = []sp.SkillLevel{sp.LevelBeginner, sp.LevelIntermediate, sp.LevelAdvanced}
)

type planReadyMsg struct {
	Plan sp.Plan
	Err  error
}

type planRecordedMsg struct {
	Data dashboard.Data
}

// Deps are the services the study plan screen drives.
type Deps struct {
	Plans     *sp.Service
	Dashboard *dashboard.Aggregator
	Timeout   time.Duration
	Now       func() time.Time
}

// StudyPlanScreen collects a subject, learning style and skill level and
// shows the generated plan.
type StudyPlanScreen struct {
	deps Deps

	phase  phase
	focus  field
	input  components.TextInput
	style  int
	level  int
	errMsg string

	plan   sp.Plan
	lines  []string
	scroll int
	height int
}

var _ screen.Screen = (*StudyPlanScreen)(nil)
var _ screen.KeyHintProvider = (*StudyPlanScreen)(nil)

// New creates a StudyPlanScreen.
func New(deps Deps) *StudyPlanScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &StudyPlanScreen{
		deps:  deps,
		input: components.NewTextInput("e.g. Linear algebra, Spanish, Go concurrency", false, 80),
	}
}

func (s *StudyPlanScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *StudyPlanScreen) Title() string {
	return "Study Plan"
}

func (s *StudyPlanScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseForm:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generate"},
			{Key: "Tab", Description: "Next field"},
			{Key: "←→", Description: "Change"},
			{Key: "Esc", Description: "Back"},
		}
	case phasePlan:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "N", Description: "New plan"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseError:
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	}
	return nil
}

func (s *StudyPlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		return s.handlePlanReady(msg)

	case planRecordedMsg:
		return s, func() tea.Msg { return screen.StreakMsg{Days: msg.Data.StreakDays} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseForm && s.focus == fieldSubject {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudyPlanScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch s.phase {
	case phaseForm:
		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s.generate()
		case "tab", "down":
			s.focus = (s.focus + 1) % fieldCount
			return s, nil
		case "shift+tab", "up":
			s.focus = (s.focus + fieldCount - 1) % fieldCount
			return s, nil
		}
		switch s.focus {
		case fieldStyle:
			s.style = cycle(s.style, len(styles), key)
			return s, nil
		case fieldLevel:
			s.level = cycle(s.level, len(levels), key)
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phasePlan:
		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n":
			s.phase = phaseForm
			s.focus = fieldSubject
			s.input.Reset()
			return s, s.input.Init()
		case "up", "k":
			s.scrollBy(-1)
		case "down", "j":
			s.scrollBy(1)
		case "pgup":
			s.scrollBy(-s.pageSize())
		case "pgdown", "space":
			s.scrollBy(s.pageSize())
		case "home", "g":
			s.scroll = 0
		case "end", "G":
			s.scrollBy(len(s.lines))
		}
		return s, nil

	case phaseError:
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// cycle moves idx left or right through n values, wrapping at the ends.
func cycle(idx, n int, key string) int {
	switch key {
	case "left", "h":
		return (idx + n - 1) % n
	case "right", "l", "space":
		return (idx + 1) % n
	}
	return idx
}

func (s *StudyPlanScreen) generate() (screen.Screen, tea.Cmd) {
	subject := s.input.Value()
	if subject == "" {
		s.errMsg = sp.ErrMissingField.Error()
		s.focus = fieldSubject
		return s, nil
	}
	s.errMsg = ""
	s.phase = phaseLoading

	req := sp.Request{Subject: subject, LearningStyle: styles[s.style], SkillLevel: levels[s.level]}
	svc := s.deps.Plans
	timeout := s.deps.Timeout
	return s, func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		plan, err := svc.Generate(ctx, req)
		return planReadyMsg{Plan: plan, Err: err}
	}
}

func (s *StudyPlanScreen) handlePlanReady(msg planReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, sp.ErrMissingField):
			s.phase = phaseForm
			s.errMsg = msg.Err.Error()
		case errors.Is(msg.Err, llm.ErrNoProvider):
			s.phase = phaseError
			s.errMsg = "No API key set. Run `studybuddy key set <key>` and try again."
		default:
			s.phase = phaseError
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}

	s.plan = msg.Plan
	s.lines = nil
	s.scroll = 0
	s.phase = phasePlan

	if msg.Plan.Fallback || s.deps.Dashboard == nil {
		return s, nil
	}
	rec := msg.Plan.Record(s.deps.Now())
	agg := s.deps.Dashboard
	return s, func() tea.Msg {
		return planRecordedMsg{Data: agg.RecordStudyPlan(context.Background(), rec)}
	}
}

func (s *StudyPlanScreen) pageSize() int {
	return max(s.height-1, 1)
}

func (s *StudyPlanScreen) scrollBy(n int) {
	maxScroll := max(len(s.lines)-s.height, 0)
	s.scroll = min(max(s.scroll+n, 0), maxScroll)
}

func (s *StudyPlanScreen) View(width, height int) string {
	switch s.phase {
	case phaseForm:
		return s.renderForm(width)
	case phaseLoading:
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Generating your study plan...")
	case phasePlan:
		return s.renderPlan(width, height)
	case phaseError:
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n" + s.errMsg)
	}
	return ""
}

func (s *StudyPlanScreen) renderForm(width int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(components.Heading("Create a personalized study plan", width))
	b.WriteString("\n\n")

	label := func(f field, text string) string {
		st := theme.Hint
		if s.focus == f {
			st = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		return st.Width(16).Render(text)
	}

	styleOpts := make([]string, len(styles))
	for i, v := range styles {
		styleOpts[i] = option(string(v), i == s.style, s.focus == fieldStyle)
	}
	levelOpts := make([]string, len(levels))
	for i, v := range levels {
		levelOpts[i] = option(string(v), i == s.level, s.focus == fieldLevel)
	}

	rows := []string{
		label(fieldSubject, "Subject") + s.input.View(),
		"",
		label(fieldStyle, "Learning style") + strings.Join(styleOpts, " "),
		"",
		label(fieldLevel, "Skill level") + strings.Join(levelOpts, " "),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Panel(strings.Join(rows, "\n"), cw)))
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

func option(label string, selected, focused bool) string {
	switch {
	case selected && focused:
		return theme.Selected.Render("[" + label + "]")
	case selected:
		return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("[" + label + "]")
	default:
		return theme.Unselected.Render(" " + label + " ")
	}
}

func (s *StudyPlanScreen) renderPlan(width, height int) string {
	cw := components.ContentWidth(width)
	textWidth := max(cw-6, 10)

	header := components.Heading("Study plan: "+s.plan.Subject, width)
	meta := components.Centered(string(s.plan.LearningStyle)+" learner · "+string(s.plan.SkillLevel), width)

	s.lines = strings.Split(
		lipgloss.NewStyle().Width(textWidth).Render(s.plan.Text), "\n")
	s.height = max(height-10, 3)
	s.scrollBy(0)

	end := min(s.scroll+s.height, len(s.lines))
	body := strings.Join(s.lines[s.scroll:end], "\n")
	if s.plan.Fallback {
		body = lipgloss.NewStyle().Foreground(theme.Error).Render(body)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(meta)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(body, cw)))
	if len(s.lines) > s.height {
		b.WriteString("\n")
		b.WriteString(components.Centered(scrollCaption(s.scroll, end, len(s.lines)), width))
	}
	return b.String()
}

func scrollCaption(from, to, total int) string {
	return fmt.Sprintf("lines %d-%d of %d", from+1, to, total)
}
