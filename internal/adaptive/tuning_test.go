package adaptive

import (
	"strings"
	"testing"
)

func TestDefaultTuning_Valid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("DefaultTuning().Validate(): %v", err)
	}
}

func TestTuning_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Tuning)
		wantSub string
	}{
		{"negative gain", func(t *Tuning) { t.CorrectMasteryGain = -0.1 }, "correct_mastery_gain"},
		{"initial above one", func(t *Tuning) { t.InitialConfidence = 1.2 }, "initial_confidence"},
		{"zero streak", func(t *Tuning) { t.StreakLength = 0 }, "streak_length"},
		{"inverted thresholds", func(t *Tuning) { t.LowMastery = 0.8 }, "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := DefaultTuning()
			tt.mutate(&tn)
			err := tn.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}
