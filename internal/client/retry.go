package client

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// withRetry runs call until it succeeds, fails permanently, or the retry
// budget is spent.
func (c *Client) withRetry(ctx context.Context, call func() error) error {
	var lastErr error
	for attempt := range c.config.Retry.MaxAttempts {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}
		if attempt == c.config.Retry.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.config.Retry.backoff(attempt)):
		}
	}
	return lastErr
}

// backoff computes the wait duration before the given retry.
func (r RetryConfig) backoff(attempt int) time.Duration {
	wait := float64(r.InitialWait) * math.Pow(r.Multiplier, float64(attempt))
	if r.MaxWait > 0 && wait > float64(r.MaxWait) {
		wait = float64(r.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
