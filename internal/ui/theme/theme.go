package theme

import (
	"charm.land/lipgloss/v2"
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
)

// Question cards
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Question = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	Option = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Answer = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Explanation = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)
)

// Badges
var (
	TypeBadge = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	DifficultyBadge = map[string]lipgloss.Style{
		"easy":   lipgloss.NewStyle().Foreground(Success),
		"medium": lipgloss.NewStyle().Foreground(Accent),
		"hard":   lipgloss.NewStyle().Foreground(Error),
	}

	Warning = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Difficulty returns the badge style for d, falling back to dim text.
func Difficulty(d string) lipgloss.Style {
	if s, ok := DifficultyBadge[d]; ok {
		return s
	}
	return Hint
}
