package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/abhisek/adaptive/internal/adaptive"
)

// FallbackTopic is returned as the next topic when the engine is
// unreachable and the history is empty.
const FallbackTopic = "same"

// RuleFallback marks decisions produced locally because the engine failed.
const RuleFallback adaptive.Rule = "fallback"

// NextRequest is the body posted to /adaptive/next.
type NextRequest struct {
	ChildID  string             `json:"child_id,omitempty"`
	Subject  string             `json:"subject,omitempty"`
	Attempts []adaptive.Attempt `json:"attempts"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client talks to the engine's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	config  Config
	logger  *slog.Logger
}

// New creates a Client for the engine at baseURL.
func New(baseURL string, cfg Config) *Client {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = def.Retry
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		config:  cfg,
		logger:  logger,
	}
}

// Next asks the engine for a decision. Transient failures are retried with
// exponential backoff; client errors are returned immediately.
func (c *Client) Next(ctx context.Context, req NextRequest) (adaptive.Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return adaptive.Decision{}, fmt.Errorf("marshal request: %w", err)
	}

	var d adaptive.Decision
	err = c.withRetry(ctx, func() error {
		var callErr error
		d, callErr = c.post(ctx, "/adaptive/next", body)
		return callErr
	})
	return d, err
}

// NextOrFallback is Next, but when the engine is down it logs a warning
// and returns Fallback(req.Attempts). Rejections such as invalid input are
// returned as errors.
func (c *Client) NextOrFallback(ctx context.Context, req NextRequest) (adaptive.Decision, error) {
	d, err := c.Next(ctx, req)
	if err == nil {
		return d, nil
	}
	if !engineDown(err) {
		return adaptive.Decision{}, err
	}
	c.logger.WarnContext(ctx, "engine request failed, using fallback decision",
		"child_id", req.ChildID,
		"attempts", len(req.Attempts),
		"error", err,
	)
	return Fallback(req.Attempts), nil
}

// Fallback is the decision used when the engine cannot answer: easy
// practice on the most recent topic.
func Fallback(attempts []adaptive.Attempt) adaptive.Decision {
	topic := FallbackTopic
	if len(attempts) > 0 {
		topic = attempts[len(attempts)-1].Topic
	}
	return adaptive.Decision{
		NextDifficulty: adaptive.DifficultyEasy,
		NextTopic:      topic,
		Strategy:       adaptive.StrategyPractice,
		Reason:         "Engine unavailable, using fallback",
		Rule:           RuleFallback,
	}
}

func (c *Client) post(ctx context.Context, path string, body []byte) (adaptive.Decision, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return adaptive.Decision{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return adaptive.Decision{}, ctx.Err()
		}
		return adaptive.Decision{}, &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return adaptive.Decision{}, &ErrUnavailable{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			se.Kind, se.Message = eb.Error, eb.Message
		}
		return adaptive.Decision{}, se
	}

	var d adaptive.Decision
	if err := json.Unmarshal(data, &d); err != nil {
		return adaptive.Decision{}, fmt.Errorf("decode decision: %w", err)
	}
	return d, nil
}

// engineDown reports whether err means the engine could not answer, as
// opposed to answering with a rejection.
func engineDown(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	var unavail *ErrUnavailable
	return errors.As(err, &unavail)
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	var unavail *ErrUnavailable
	return errors.As(err, &unavail)
}
