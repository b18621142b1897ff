package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// ProgressBar displays a horizontal bar with an optional label and a
// trailing value caption.
type ProgressBar struct {
	Label   string
	Percent float64
	Caption string
	Width   int
}

// NewProgressBar creates a new progress bar. percent is a fraction 0..1.
func NewProgressBar(label string, percent float64, caption string, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Caption: caption,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	captionWidth := 0
	if p.Caption != "" {
		captionWidth = lipgloss.Width(p.Caption) + 2
	}

	barWidth := p.Width - labelWidth - captionWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = min(max(filled, 0), barWidth)
	empty := barWidth - filled

	result += lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	if p.Caption != "" {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  " + p.Caption)
	}

	return result
}
