package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptive/internal/ui/theme"
)

// Meter displays a labelled [0, 1] value as a horizontal bar.
type Meter struct {
	Label string
	Value float64
	Width int
}

// NewMeter creates a new meter.
func NewMeter(label string, value float64, width int) Meter {
	return Meter{Label: label, Value: value, Width: width}
}

// View renders the meter.
func (m Meter) View() string {
	label := theme.Label.Render(m.Label)
	value := fmt.Sprintf("  %.2f", m.Value)

	barWidth := m.Width - lipgloss.Width(label) - len(value)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * m.Value)
	filled = max(0, min(filled, barWidth))

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(value)
}
