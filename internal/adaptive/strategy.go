package adaptive

// Strategy is the pedagogical intent attached to a decision.
type Strategy string

const (
	StrategyRevise   Strategy = "revise"
	StrategyAdvance  Strategy = "advance"
	StrategyPractice Strategy = "practice"
)

// AllStrategies returns every strategy in display order.
func AllStrategies() []Strategy {
	return []Strategy{
		StrategyRevise,
		StrategyPractice,
		StrategyAdvance,
	}
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyRevise, StrategyAdvance, StrategyPractice:
		return true
	default:
		return false
	}
}

// Rule identifies which tier of the decision cascade produced a decision.
type Rule string

const (
	RuleWrongStreak   Rule = "wrong-streak"
	RuleCorrectStreak Rule = "correct-streak"
	RuleLowMastery    Rule = "low-mastery"
	RuleHighMastery   Rule = "high-mastery"
	RuleStable        Rule = "stable"
)

// AllRules returns every rule in cascade order.
func AllRules() []Rule {
	return []Rule{
		RuleWrongStreak,
		RuleCorrectStreak,
		RuleLowMastery,
		RuleHighMastery,
		RuleStable,
	}
}

// Reason returns the human-readable explanation for a rule.
func (r Rule) Reason() string {
	switch r {
	case RuleWrongStreak:
		return "Two consecutive wrong answers detected"
	case RuleCorrectStreak:
		return "Two consecutive correct answers detected"
	case RuleLowMastery:
		return "Low mastery detected"
	case RuleHighMastery:
		return "High mastery and confidence"
	case RuleStable:
		return "Stable learning in progress"
	default:
		return string(r)
	}
}
