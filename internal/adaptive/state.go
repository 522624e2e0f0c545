package adaptive

// StudentState is the learner model rebuilt from the attempt history on
// every request. Both fields stay within [0, 1].
type StudentState struct {
	Mastery    float64 `json:"mastery"`
	Confidence float64 `json:"confidence"`
}

// Accumulate folds attempts, oldest first, into a final state.
func Accumulate(attempts []Attempt) StudentState {
	return DefaultTuning().Accumulate(attempts)
}

// Accumulate folds attempts into a state using t's constants.
func (t Tuning) Accumulate(attempts []Attempt) StudentState {
	s := StudentState{Mastery: t.InitialMastery, Confidence: t.InitialConfidence}
	for _, a := range attempts {
		s = t.apply(s, a)
	}
	return s
}

// apply adjusts s for a single attempt and clamps immediately, so a floor
// or ceiling reached mid-history is carried forward.
func (t Tuning) apply(s StudentState, a Attempt) StudentState {
	if a.IsCorrect {
		s.Mastery += t.CorrectMasteryGain
		s.Confidence += t.CorrectConfidenceGain
	} else {
		s.Mastery -= t.WrongMasteryPenalty
		s.Confidence -= t.WrongConfidencePenalty
	}
	s.Mastery = clamp(s.Mastery)
	s.Confidence = clamp(s.Confidence)
	return s
}

func clamp(v float64) float64 {
	return max(0.0, min(1.0, v))
}
