package adaptive

import "strings"

// Attempt is a single answered question, immutable once recorded.
type Attempt struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	IsCorrect  bool       `json:"is_correct"`
}

// Validate checks the attempt's topic and difficulty labels.
func (a Attempt) Validate() error {
	if strings.TrimSpace(a.Topic) == "" {
		return ErrInvalidTopic
	}
	_, err := ParseDifficulty(string(a.Difficulty))
	return err
}

// ValidateHistory checks that attempts is non-empty and every attempt is
// well formed. The first failure is returned as a *HistoryError.
func ValidateHistory(attempts []Attempt) error {
	if len(attempts) == 0 {
		return ErrEmptyHistory
	}
	for i, a := range attempts {
		if err := a.Validate(); err != nil {
			return &HistoryError{Index: i, Err: err}
		}
	}
	return nil
}
