package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/adaptive/internal/adaptive"
	"github.com/abhisek/adaptive/internal/ui/theme"
)

// DecisionCard renders an engine decision for the terminal.
type DecisionCard struct {
	Decision adaptive.Decision

	// Subject and Attempts are shown in the header when set.
	Subject  string
	Attempts int

	// Unresolved marks an advance decision whose next topic could not be
	// found in the curriculum.
	Unresolved bool

	Width int
}

// View renders the card.
func (c DecisionCard) View() string {
	d := c.Decision
	width := c.Width
	if width <= 0 {
		width = 48
	}

	header := "Next question"
	if c.Subject != "" {
		header += " · " + c.Subject
	}

	row := func(label, value string) string {
		return theme.Label.Render(label) + value
	}

	topic := theme.Body.Render(d.NextTopic)
	if c.Unresolved {
		topic += theme.Hint.Render("  (end of curriculum)")
	}

	lines := []string{
		theme.Title.Render(header),
		"",
		row("Difficulty", theme.DifficultyStyle(d.NextDifficulty).Render(string(d.NextDifficulty))),
		row("Topic", topic),
		row("Strategy", theme.StrategyStyle(d.Strategy).Render(string(d.Strategy))),
		"",
		NewMeter("Mastery", d.Mastery, width).View(),
		NewMeter("Confidence", d.Confidence, width).View(),
		"",
		theme.Hint.Render(d.Reason),
	}
	if c.Attempts > 0 {
		lines = append(lines, theme.Hint.Render(pluralAttempts(c.Attempts)))
	}

	return theme.Card.Render(strings.Join(lines, "\n"))
}

func pluralAttempts(n int) string {
	if n == 1 {
		return "based on 1 attempt"
	}
	return fmt.Sprintf("based on %d attempts", n)
}
