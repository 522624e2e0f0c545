package client

import "fmt"

// StatusError is a non-2xx response from the engine.
type StatusError struct {
	StatusCode int
	Kind       string // the "error" field of the response body, if any
	Message    string
}

func (e *StatusError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("engine returned %d (%s): %s", e.StatusCode, e.Kind, e.Message)
	}
	return fmt.Sprintf("engine returned %d", e.StatusCode)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// ErrUnavailable indicates the engine could not be reached.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("engine unavailable: %v", e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
