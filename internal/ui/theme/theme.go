package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/xptrack/internal/tracker"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Gain = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Layout
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 2)

// StatColor returns the accent colour for a stat.
func StatColor(s tracker.Stat) color.Color {
	switch s {
	case tracker.StatBody:
		return lipgloss.Color("#EF4444")
	case tracker.StatMind:
		return lipgloss.Color("#3B82F6")
	case tracker.StatArt:
		return lipgloss.Color("#EC4899")
	case tracker.StatTech:
		return lipgloss.Color("#14B8A6")
	case tracker.StatHome:
		return lipgloss.Color("#F59E0B")
	case tracker.StatSpirit:
		return lipgloss.Color("#A855F7")
	default:
		return Text
	}
}
