package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/tips"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const titleFull = ` ╔═╗╔╦╗╦ ╦╔╦╗╦ ╦  ╔╗ ╦ ╦╔╦╗╔╦╗╦ ╦
 ╚═╗ ║ ║ ║ ║║╚╦╝  ╠╩╗║ ║ ║║ ║║╚╦╝
 ╚═╝ ╩ ╚═╝═╩╝ ╩   ╚═╝╚═╝═╩╝═╩╝ ╩ `

const titleCompact = "S T U D Y B U D D Y"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders streak, quiz count and average score in a
// bordered box matching content width.
func renderStatsBar(s stats, cw int, compact bool) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			streakStyle.Render(fmt.Sprintf("🔥%d", s.streak)),
			quizStyle.Render(fmt.Sprintf("✎%d", s.quizzes)),
			scoreStyle.Render(fmt.Sprintf("⌀%.0f%%", s.average)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			streakStyle.Render(fmt.Sprintf("🔥 %d DAY STREAK", s.streak)),
			quizStyle.Render(fmt.Sprintf("✎ %d QUIZZES", s.quizzes)),
			scoreStyle.Render(fmt.Sprintf("⌀ %.0f%% AVG", s.average)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// renderTipCard renders the tip of the day.
func renderTipCard(tip tips.Tip, cw int) string {
	head := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Tip: " + tip.Title)
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(tip.Content)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 1).
		Render(head + "\n" + body)
}

// renderKeyBanner renders a warning when no LLM API key is configured.
func renderKeyBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an API key to generate quizzes and plans (studybuddy key set <key>)")
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
