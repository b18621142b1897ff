package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// NoticeScreen shows a message and returns on any key.
type NoticeScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*NoticeScreen)(nil)

// New creates a NoticeScreen.
func New(title, message string) *NoticeScreen {
	return &NoticeScreen{title: title, message: message}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return n, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to go back")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(n.message + "\n\n" + hint)
}

func (n *NoticeScreen) Title() string {
	return n.title
}
