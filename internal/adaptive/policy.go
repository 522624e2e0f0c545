package adaptive

import "fmt"

// NextTopicSentinel is emitted as the next topic when the strategy is
// advance. Resolving it to a concrete topic is the job of a curriculum map
// outside this package.
const NextTopicSentinel = "next_topic"

// Decision is the engine's recommendation for the next question.
type Decision struct {
	NextDifficulty Difficulty `json:"next_difficulty"`
	NextTopic      string     `json:"next_topic"`
	Strategy       Strategy   `json:"strategy"`
	Mastery        float64    `json:"mastery"`
	Confidence     float64    `json:"confidence"`
	Reason         string     `json:"reason"`
	Rule           Rule       `json:"rule"`
}

// NeedsNextTopic reports whether the topic must still be resolved
// against a curriculum.
func (d Decision) NeedsNextTopic() bool {
	return d.NextTopic == NextTopicSentinel
}

// Decide picks the next difficulty, strategy and topic under the default
// tuning. Mastery and Confidence are left zero; the caller attaches them.
func Decide(attempts []Attempt, state StudentState) Decision {
	return DefaultTuning().Decide(attempts, state)
}

// Decide runs the cascade: a trailing wrong streak, then a trailing
// correct streak, then the state thresholds. The first match wins.
func (t Tuning) Decide(attempts []Attempt, state StudentState) Decision {
	var d Decision

	switch {
	case hasStreak(attempts, t.StreakLength, false):
		d.NextDifficulty = attempts[len(attempts)-1].Difficulty.Decrease()
		d.Strategy = StrategyRevise
		d.Rule = RuleWrongStreak
	case hasStreak(attempts, t.StreakLength, true):
		d.NextDifficulty = attempts[len(attempts)-1].Difficulty.Increase()
		d.Strategy = StrategyAdvance
		d.Rule = RuleCorrectStreak
	default:
		d.NextDifficulty, d.Strategy, d.Rule = t.decideFromState(state)
	}

	d.Reason = d.Rule.Reason()
	d.NextTopic = DecideTopic(attempts, d.Strategy)
	return d
}

func (t Tuning) decideFromState(s StudentState) (Difficulty, Strategy, Rule) {
	if s.Mastery < t.LowMastery {
		return DifficultyEasy, StrategyRevise, RuleLowMastery
	}
	if s.Mastery > t.HighMastery && s.Confidence > t.HighConfidence {
		return DifficultyHard, StrategyAdvance, RuleHighMastery
	}
	return DifficultyMedium, StrategyPractice, RuleStable
}

// hasStreak reports whether the last n attempts all have the given outcome.
func hasStreak(attempts []Attempt, n int, correct bool) bool {
	if n < 1 || len(attempts) < n {
		return false
	}
	for _, a := range attempts[len(attempts)-n:] {
		if a.IsCorrect != correct {
			return false
		}
	}
	return true
}

// DecideTopic returns the topic to serve next: the advance sentinel, or
// the most recent attempt's topic unchanged.
func DecideTopic(attempts []Attempt, strategy Strategy) string {
	switch strategy {
	case StrategyAdvance:
		return NextTopicSentinel
	case StrategyRevise, StrategyPractice:
		if len(attempts) == 0 {
			return ""
		}
		return attempts[len(attempts)-1].Topic
	default:
		panic(fmt.Sprintf("adaptive: unhandled strategy %q", strategy))
	}
}
