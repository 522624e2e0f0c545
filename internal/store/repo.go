package store

import (
	"context"
	"time"

	"github.com/abhisek/adaptive/internal/adaptive"
)

// QueryOpts configures record queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Subject string    // exact subject match when set
}

// AttemptRecord is a stored answer for a child in a subject.
type AttemptRecord struct {
	Sequence  int64
	ChildID   string
	Subject   string
	Attempt   adaptive.Attempt
	Timestamp time.Time
}

// DecisionRecord is a logged engine decision.
type DecisionRecord struct {
	ID            string
	Sequence      int64
	ChildID       string
	Subject       string
	Decision      adaptive.Decision
	TopicResolved bool
	AttemptCount  int
	Timestamp     time.Time
}

// AttemptRepo stores the answer history the engine is evaluated over.
type AttemptRepo interface {
	// Append stores an attempt, assigning its sequence and timestamp when unset.
	Append(ctx context.Context, rec *AttemptRecord) error

	// Recent returns the latest limit attempts for a child in a subject,
	// oldest first. A limit of 0 returns the full history.
	Recent(ctx context.Context, childID, subject string, limit int) ([]AttemptRecord, error)
}

// DecisionRepo provides append and query access to logged decisions.
type DecisionRepo interface {
	// Append stores a decision, assigning its ID, sequence and timestamp when unset.
	Append(ctx context.Context, rec *DecisionRecord) error

	// List returns a child's decisions, newest first.
	List(ctx context.Context, childID string, opts QueryOpts) ([]DecisionRecord, error)
}
