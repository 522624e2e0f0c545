package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptive/internal/adaptive"
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

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(12)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Strategy badges
var (
	Advance = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Practice = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Revise = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// StrategyStyle returns the badge style for s.
func StrategyStyle(s adaptive.Strategy) lipgloss.Style {
	switch s {
	case adaptive.StrategyAdvance:
		return Advance
	case adaptive.StrategyRevise:
		return Revise
	default:
		return Practice
	}
}

// DifficultyStyle colors a difficulty label from easy (green) to hard (rose).
func DifficultyStyle(d adaptive.Difficulty) lipgloss.Style {
	switch d {
	case adaptive.DifficultyEasy:
		return lipgloss.NewStyle().Foreground(Success)
	case adaptive.DifficultyHard:
		return lipgloss.NewStyle().Foreground(Error)
	default:
		return lipgloss.NewStyle().Foreground(Accent)
	}
}

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
