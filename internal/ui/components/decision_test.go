package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/adaptive/internal/adaptive"
)

func TestDecisionCard_View(t *testing.T) {
	card := DecisionCard{
		Decision: adaptive.Decision{
			NextDifficulty: adaptive.DifficultyHard,
			NextTopic:      "fractions",
			Strategy:       adaptive.StrategyAdvance,
			Mastery:        0.8,
			Confidence:     0.75,
			Reason:         "High mastery and confidence",
		},
		Subject:  "math",
		Attempts: 5,
	}

	out := ansi.Strip(card.View())
	for _, want := range []string{
		"Next question · math",
		"hard",
		"fractions",
		"advance",
		"0.80",
		"0.75",
		"High mastery and confidence",
		"based on 5 attempts",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "end of curriculum") {
		t.Error("resolved card should not mention end of curriculum")
	}
}

func TestDecisionCard_Unresolved(t *testing.T) {
	card := DecisionCard{
		Decision: adaptive.Decision{
			NextDifficulty: adaptive.DifficultyHard,
			NextTopic:      "decimals",
			Strategy:       adaptive.StrategyAdvance,
		},
		Unresolved: true,
		Attempts:   1,
	}

	out := ansi.Strip(card.View())
	if !strings.Contains(out, "end of curriculum") {
		t.Errorf("expected end of curriculum hint:\n%s", out)
	}
	if !strings.Contains(out, "based on 1 attempt") {
		t.Errorf("expected singular attempt count:\n%s", out)
	}
}

func TestMeter_Width(t *testing.T) {
	for _, v := range []float64{-0.5, 0, 0.5, 1, 1.5} {
		out := ansi.Strip(NewMeter("Mastery", v, 40).View())
		if got := ansi.StringWidth(out); got != 40 {
			t.Errorf("value %v: width = %d, want 40", v, got)
		}
	}
}
