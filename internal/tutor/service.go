package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/adaptive/internal/adaptive"
	"github.com/abhisek/adaptive/internal/curriculum"
	"github.com/abhisek/adaptive/internal/observability"
	"github.com/abhisek/adaptive/internal/store"
)

// ErrNoHistoryStore is returned by store-backed operations when the
// service was built without repositories.
var ErrNoHistoryStore = errors.New("history store not configured")

// DefaultWindow is how many recent attempts are evaluated after an answer.
const DefaultWindow = 5

// NextRequest asks for a decision over a caller-supplied history.
type NextRequest struct {
	ChildID  string
	Subject  string
	Attempts []adaptive.Attempt
}

// AnswerRequest records one answer and asks for the next decision.
type AnswerRequest struct {
	ChildID string
	Subject string
	Attempt adaptive.Attempt
}

// Result is a decision plus how it was produced.
type Result struct {
	adaptive.Decision

	// TopicResolved is false when an advance decision could not be mapped
	// to a next topic and the learner stays on the current one.
	TopicResolved bool `json:"topic_resolved"`

	AttemptCount int    `json:"attempt_count"`
	DecisionID   string `json:"decision_id,omitempty"`
}

// Options configures a Service. Only Engine is required.
type Options struct {
	Engine     *adaptive.Engine
	Curriculum *curriculum.Map
	Attempts   store.AttemptRepo
	Decisions  store.DecisionRepo
	Metrics    *observability.Metrics
	Logger     *slog.Logger

	// Window is how many recent attempts RecordAnswer evaluates. Zero
	// evaluates the full history; negative selects DefaultWindow.
	Window int
}

// Service answers decision requests on behalf of the transport layer.
type Service struct {
	engine     *adaptive.Engine
	curriculum *curriculum.Map
	attempts   store.AttemptRepo
	decisions  store.DecisionRepo
	metrics    *observability.Metrics
	logger     *slog.Logger
	window     int
}

// NewService creates a Service from opts.
func NewService(opts Options) *Service {
	s := &Service{
		engine:     opts.Engine,
		curriculum: opts.Curriculum,
		attempts:   opts.Attempts,
		decisions:  opts.Decisions,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		window:     opts.Window,
	}
	if s.engine == nil {
		s.engine = adaptive.DefaultEngine()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.window < 0 {
		s.window = DefaultWindow
	}
	return s
}

// Next evaluates a caller-supplied history. It never reads or writes the
// history store. The advance sentinel is resolved only when a subject is
// given.
func (s *Service) Next(ctx context.Context, req NextRequest) (Result, error) {
	return s.evaluate(ctx, req.ChildID, req.Subject, req.Attempts)
}

// RecordAnswer stores an answer, then evaluates the child's recent window
// in that subject and logs the decision.
func (s *Service) RecordAnswer(ctx context.Context, req AnswerRequest) (Result, error) {
	if s.attempts == nil || s.decisions == nil {
		return Result{}, ErrNoHistoryStore
	}
	if err := req.Attempt.Validate(); err != nil {
		s.metrics.ObserveRejected(err)
		return Result{}, err
	}

	err := s.attempts.Append(ctx, &store.AttemptRecord{
		ChildID: req.ChildID,
		Subject: req.Subject,
		Attempt: req.Attempt,
	})
	if err != nil {
		return Result{}, fmt.Errorf("record attempt: %w", err)
	}

	recent, err := s.attempts.Recent(ctx, req.ChildID, req.Subject, s.window)
	if err != nil {
		return Result{}, fmt.Errorf("load recent attempts: %w", err)
	}

	res, err := s.evaluate(ctx, req.ChildID, req.Subject, store.Attempts(recent))
	if err != nil {
		return Result{}, err
	}

	rec := &store.DecisionRecord{
		ChildID:       req.ChildID,
		Subject:       req.Subject,
		Decision:      res.Decision,
		TopicResolved: res.TopicResolved,
		AttemptCount:  res.AttemptCount,
	}
	if err := s.decisions.Append(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("log decision: %w", err)
	}
	res.DecisionID = rec.ID
	return res, nil
}

// Decisions returns a child's logged decisions, newest first.
func (s *Service) Decisions(ctx context.Context, childID string, opts store.QueryOpts) ([]store.DecisionRecord, error) {
	if s.decisions == nil {
		return nil, ErrNoHistoryStore
	}
	recs, err := s.decisions.List(ctx, childID, opts)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	return recs, nil
}

func (s *Service) evaluate(ctx context.Context, childID, subject string, attempts []adaptive.Attempt) (Result, error) {
	d, err := s.engine.Evaluate(attempts)
	if err != nil {
		s.metrics.ObserveRejected(err)
		return Result{}, err
	}

	res := Result{Decision: d, TopicResolved: true, AttemptCount: len(attempts)}
	if s.curriculum != nil && subject != "" && d.NeedsNextTopic() {
		res.Decision, res.TopicResolved = s.curriculum.Resolve(subject, attempts, d)
		s.metrics.ObserveResolution(res.TopicResolved)
	}
	s.metrics.ObserveDecision(res.Decision, len(attempts))

	s.logger.DebugContext(ctx, "decision",
		"child_id", childID,
		"subject", subject,
		"attempts", len(attempts),
		"rule", res.Rule,
		"strategy", res.Strategy,
		"next_difficulty", res.NextDifficulty,
		"next_topic", res.NextTopic,
		"mastery", res.Mastery,
		"confidence", res.Confidence,
	)
	return res, nil
}
