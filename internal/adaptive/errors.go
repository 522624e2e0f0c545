package adaptive

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyHistory indicates a decision was requested without attempts.
	ErrEmptyHistory = errors.New("attempt history is empty")

	// ErrInvalidDifficulty indicates a difficulty label outside easy/medium/hard.
	ErrInvalidDifficulty = errors.New("invalid difficulty label")

	// ErrInvalidTopic indicates an empty or blank topic.
	ErrInvalidTopic = errors.New("invalid topic label")
)

// HistoryError ties a validation failure to a position in the history.
type HistoryError struct {
	Index int
	Err   error
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("attempt %d: %v", e.Index, e.Err)
}

func (e *HistoryError) Unwrap() error { return e.Err }

// IsInvalidInput reports whether err is one of the precondition failures
// that a caller should surface as a client error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyHistory) ||
		errors.Is(err, ErrInvalidDifficulty) ||
		errors.Is(err, ErrInvalidTopic)
}

// ErrorKind returns a short machine-readable label for a precondition
// failure, or "internal" for anything else.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrEmptyHistory):
		return "empty_history"
	case errors.Is(err, ErrInvalidDifficulty):
		return "invalid_difficulty"
	case errors.Is(err, ErrInvalidTopic):
		return "invalid_topic"
	default:
		return "internal"
	}
}
