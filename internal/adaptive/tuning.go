package adaptive

import (
	"fmt"
	"strings"
)

// Tuning holds the constants of the state model and the decision cascade.
type Tuning struct {
	InitialMastery    float64 `yaml:"initial_mastery"`
	InitialConfidence float64 `yaml:"initial_confidence"`

	// Per-attempt adjustments. Penalties are subtracted.
	CorrectMasteryGain     float64 `yaml:"correct_mastery_gain"`
	CorrectConfidenceGain  float64 `yaml:"correct_confidence_gain"`
	WrongMasteryPenalty    float64 `yaml:"wrong_mastery_penalty"`
	WrongConfidencePenalty float64 `yaml:"wrong_confidence_penalty"`

	// StreakLength is how many trailing identical outcomes override the model.
	StreakLength int `yaml:"streak_length"`

	// Model thresholds. All comparisons are strict.
	LowMastery     float64 `yaml:"low_mastery"`
	HighMastery    float64 `yaml:"high_mastery"`
	HighConfidence float64 `yaml:"high_confidence"`
}

// DefaultTuning returns the production constants.
func DefaultTuning() Tuning {
	return Tuning{
		InitialMastery:         0.5,
		InitialConfidence:      0.5,
		CorrectMasteryGain:     0.06,
		CorrectConfidenceGain:  0.05,
		WrongMasteryPenalty:    0.08,
		WrongConfidencePenalty: 0.06,
		StreakLength:           2,
		LowMastery:             0.4,
		HighMastery:            0.75,
		HighConfidence:         0.7,
	}
}

// Validate checks that every value is in range.
func (t Tuning) Validate() error {
	var errs []string

	unit := []struct {
		name string
		v    float64
	}{
		{"initial_mastery", t.InitialMastery},
		{"initial_confidence", t.InitialConfidence},
		{"correct_mastery_gain", t.CorrectMasteryGain},
		{"correct_confidence_gain", t.CorrectConfidenceGain},
		{"wrong_mastery_penalty", t.WrongMasteryPenalty},
		{"wrong_confidence_penalty", t.WrongConfidencePenalty},
		{"low_mastery", t.LowMastery},
		{"high_mastery", t.HighMastery},
		{"high_confidence", t.HighConfidence},
	}
	for _, u := range unit {
		if u.v < 0 || u.v > 1 {
			errs = append(errs, fmt.Sprintf("%s must be in [0, 1], got %g", u.name, u.v))
		}
	}

	if t.StreakLength < 1 {
		errs = append(errs, fmt.Sprintf("streak_length must be >= 1, got %d", t.StreakLength))
	}
	if t.LowMastery > t.HighMastery {
		errs = append(errs, fmt.Sprintf("low_mastery (%g) must not exceed high_mastery (%g)", t.LowMastery, t.HighMastery))
	}

	if len(errs) > 0 {
		return fmt.Errorf("tuning validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
