package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is a set of named colors the styles are built from.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Highlight color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

// Standard is the default palette: calm blues and greens.
var Standard = Palette{
	Primary:   lipgloss.Color("#3B82F6"), // Blue
	Secondary: lipgloss.Color("#14B8A6"), // Teal
	Accent:    lipgloss.Color("#F59E0B"), // Amber
	Highlight: lipgloss.Color("#FACC15"), // Yellow
	Success:   lipgloss.Color("#22C55E"), // Green
	Error:     lipgloss.Color("#F43F5E"), // Rose
	Text:      lipgloss.Color("#F8FAFC"), // White
	TextDim:   lipgloss.Color("#94A3B8"), // Slate
	BgDark:    lipgloss.Color("#0F172A"), // Deep Navy
	BgCard:    lipgloss.Color("#1E293B"), // Dark Slate
	Border:    lipgloss.Color("#334155"), // Slate
}

// HighContrast trades hue for luminance: pure white on black with
// saturated signal colors.
var HighContrast = Palette{
	Primary:   lipgloss.Color("#FFFF00"),
	Secondary: lipgloss.Color("#00FFFF"),
	Accent:    lipgloss.Color("#FFFFFF"),
	Highlight: lipgloss.Color("#FFFF00"),
	Success:   lipgloss.Color("#00FF00"),
	Error:     lipgloss.Color("#FF4040"),
	Text:      lipgloss.Color("#FFFFFF"),
	TextDim:   lipgloss.Color("#E0E0E0"),
	BgDark:    lipgloss.Color("#000000"),
	BgCard:    lipgloss.Color("#000000"),
	Border:    lipgloss.Color("#FFFFFF"),
}

// Active colors. Use Apply to switch palettes.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Highlight color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

func init() {
	Apply(Standard)
}

// ForPreferences returns the palette matching the high contrast setting.
func ForPreferences(highContrast bool) Palette {
	if highContrast {
		return HighContrast
	}
	return Standard
}

// Apply makes p the active palette and rebuilds every style. Call it before
// the program starts rendering.
func Apply(p Palette) {
	Primary, Secondary, Accent, Highlight = p.Primary, p.Secondary, p.Accent, p.Highlight
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgDark, BgCard, Border = p.BgDark, p.BgCard, p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(BgDark).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
