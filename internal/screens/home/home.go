package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/dashboard"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	dashscreen "github.com/abhisek/studybuddy/internal/screens/dashboard"
	"github.com/abhisek/studybuddy/internal/screens/history"
	"github.com/abhisek/studybuddy/internal/screens/notice"
	quizscreen "github.com/abhisek/studybuddy/internal/screens/quiz"
	planscreen "github.com/abhisek/studybuddy/internal/screens/studyplan"
	"github.com/abhisek/studybuddy/internal/studyplan"
	"github.com/abhisek/studybuddy/internal/tips"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Deps are the services reachable from the home menu.
type Deps struct {
	Quiz        quizscreen.Deps
	Plans       *studyplan.Service
	Dashboard   *dashboard.Aggregator
	HasProvider bool
	Now         func() time.Time
}

type stats struct {
	streak  int
	quizzes int
	average float64
}

// statsLoadedMsg carries freshly loaded dashboard numbers.
type statsLoadedMsg struct {
	Data dashboard.Data
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	stats  stats
	tip    tips.Tip
	mascot MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &HomeScreen{deps: deps, tip: tips.Random("")}

	needsKey := func(title string, next func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			if !deps.HasProvider {
				return push(notice.New(title,
					"An API key is needed for this.\n\nRun `studybuddy key set <key>`\nor set GEMINI_API_KEY, then restart."))
			}
			return push(next())
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "TAKE A QUIZ", Action: needsKey("Quiz", func() screen.Screen {
			return quizscreen.New(deps.Quiz)
		})},
		{Label: "STUDY PLAN", Action: needsKey("Study Plan", func() screen.Screen {
			return planscreen.New(planscreen.Deps{
				Plans:     deps.Plans,
				Dashboard: deps.Dashboard,
				Timeout:   deps.Quiz.Timeout,
				Now:       deps.Now,
			})
		})},
		{Label: "DASHBOARD", Action: func() tea.Cmd {
			return push(dashscreen.New(deps.Dashboard))
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return push(history.New(deps.Dashboard))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	h.mascot = h.pickMascot(dashboard.Data{})
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads stats when returning from another screen.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	agg := h.deps.Dashboard
	if agg == nil {
		return nil
	}
	return func() tea.Msg {
		return statsLoadedMsg{Data: agg.Load(context.Background())}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		h.stats = stats{
			streak:  m.Data.StreakDays,
			quizzes: m.Data.QuizzesCompleted,
			average: dashboard.AverageScore(m.Data.QuizScores),
		}
		h.mascot = h.pickMascot(m.Data)
		return h, func() tea.Msg { return screen.StreakMsg{Days: m.Data.StreakDays} }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) pickMascot(d dashboard.Data) MascotVariant {
	if !h.deps.HasProvider {
		return MascotAlert
	}
	now := h.deps.Now()
	y1, m1, d1 := d.LastActivity.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	if d.StreakDays >= 2 && y1 == y2 && m1 == m2 && d1 == d2 {
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if !h.deps.HasProvider {
		sections = append(sections, renderKeyBanner(cw))
	}
	if !compact {
		sections = append(sections, renderTipCard(h.tip, cw))
	}
	sections = append(sections, h.menu.View(cw, compact))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
