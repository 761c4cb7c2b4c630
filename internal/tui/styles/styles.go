// Package styles defines shared lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zenithtodo/zenith/internal/prefs"
	"github.com/zenithtodo/zenith/internal/todo"
)

// Palette is the set of colours a theme is built from.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Bar       lipgloss.Color
	BarText   lipgloss.Color
}

var (
	// DarkPalette is the default muted scheme.
	DarkPalette = Palette{
		Primary:   lipgloss.Color("#5FAFAF"), // Teal accent
		Secondary: lipgloss.Color("#666666"), // Gray for secondary text
		Text:      lipgloss.Color("#E4E4E4"),
		Success:   lipgloss.Color("#87AF87"), // Muted sage
		Error:     lipgloss.Color("#AF5F5F"), // Muted terracotta
		Warning:   lipgloss.Color("#D7AF5F"),
		Bar:       lipgloss.Color("#303030"),
		BarText:   lipgloss.Color("#BCBCBC"),
	}

	LightPalette = Palette{
		Primary:   lipgloss.Color("#00787A"),
		Secondary: lipgloss.Color("#8A8A8A"),
		Text:      lipgloss.Color("#262626"),
		Success:   lipgloss.Color("#3A7D3A"),
		Error:     lipgloss.Color("#B03A2E"),
		Warning:   lipgloss.Color("#A86A00"),
		Bar:       lipgloss.Color("#E4E4E4"),
		BarText:   lipgloss.Color("#444444"),
	}
)

var (
	// TitleStyle for headers
	TitleStyle lipgloss.Style
	// SubtleStyle for hints/help text
	SubtleStyle lipgloss.Style
	// SelectedStyle for the row under the cursor
	SelectedStyle lipgloss.Style
	// SectionStyle for sidebar and form labels
	SectionStyle lipgloss.Style
	// TextStyle for regular task text
	TextStyle lipgloss.Style
	// DoneStyle for completed tasks
	DoneStyle lipgloss.Style
	// StatusBarStyle for bottom status bar
	StatusBarStyle lipgloss.Style
	// BoxStyle for panel borders
	BoxStyle lipgloss.Style
	// SuccessStyle for success messages
	SuccessStyle lipgloss.Style
	// ErrorStyle for error messages and overdue dates
	ErrorStyle lipgloss.Style
	// WarningStyle for medium priority
	WarningStyle lipgloss.Style
	// BadgeStyle for count and priority badges
	BadgeStyle lipgloss.Style
)

var current = prefs.ThemeDark

func init() {
	Use(prefs.ThemeDark)
}

// Current returns the active theme.
func Current() prefs.Theme {
	return current
}

// Use rebuilds every style for theme.
func Use(theme prefs.Theme) {
	p := DarkPalette
	if theme == prefs.ThemeLight {
		p = LightPalette
	}
	current = theme

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	SubtleStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)

	SelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	SectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Secondary)

	TextStyle = lipgloss.NewStyle().
		Foreground(p.Text)

	DoneStyle = lipgloss.NewStyle().
		Strikethrough(true).
		Foreground(p.Secondary)

	StatusBarStyle = lipgloss.NewStyle().
		Background(p.Bar).
		Foreground(p.BarText).
		Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Secondary).
		Padding(1, 2)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error)

	WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Padding(0, 1)
}

// PriorityStyle colours a priority badge.
func PriorityStyle(p todo.Priority) lipgloss.Style {
	switch p {
	case todo.PriorityHigh:
		return ErrorStyle
	case todo.PriorityMedium:
		return WarningStyle
	default:
		return SuccessStyle
	}
}
