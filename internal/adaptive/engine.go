package adaptive

import (
	"fmt"
	"math"
)

// Engine evaluates attempt histories. It holds no per-learner state and is
// safe for concurrent use.
type Engine struct {
	tuning Tuning
}

// NewEngine creates an Engine with the given tuning.
func NewEngine(t Tuning) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return &Engine{tuning: t}, nil
}

// DefaultEngine returns an Engine using DefaultTuning.
func DefaultEngine() *Engine {
	return &Engine{tuning: DefaultTuning()}
}

// Evaluate validates attempts, rebuilds the learner state and decides the
// next question. Mastery and confidence are rounded to two decimals.
func (e *Engine) Evaluate(attempts []Attempt) (Decision, error) {
	if err := ValidateHistory(attempts); err != nil {
		return Decision{}, err
	}

	state := e.tuning.Accumulate(attempts)
	d := e.tuning.Decide(attempts, state)
	d.Mastery = Round2(state.Mastery)
	d.Confidence = Round2(state.Confidence)
	return d, nil
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
