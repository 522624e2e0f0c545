package api

import (
	"time"

	"github.com/abhisek/adaptive/internal/adaptive"
	"github.com/abhisek/adaptive/internal/store"
)

// NextRequest is the body of POST /adaptive/next.
type NextRequest struct {
	ChildID  string             `json:"child_id" binding:"max=128"`
	Subject  string             `json:"subject" binding:"max=64"`
	Attempts []adaptive.Attempt `json:"attempts" binding:"max=1000"`
}

// AttemptRequest is the body of POST /v1/children/:childId/attempts.
type AttemptRequest struct {
	Subject    string `json:"subject" binding:"required,max=64"`
	Topic      string `json:"topic" binding:"max=256"`
	Difficulty string `json:"difficulty" binding:"max=16"`
	IsCorrect  *bool  `json:"is_correct" binding:"required"`
}

// Attempt converts the request body into an engine attempt.
func (r AttemptRequest) Attempt() adaptive.Attempt {
	return adaptive.Attempt{
		Topic:      r.Topic,
		Difficulty: adaptive.Difficulty(r.Difficulty),
		IsCorrect:  r.IsCorrect != nil && *r.IsCorrect,
	}
}

// DecisionsQuery is the query string of GET /v1/children/:childId/decisions.
type DecisionsQuery struct {
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Subject string `form:"subject" binding:"max=64"`
}

// ErrorResponse is returned for every non-2xx status.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DecisionView is a logged decision as served by the API.
type DecisionView struct {
	ID       string `json:"id"`
	Sequence int64  `json:"sequence"`
	ChildID  string `json:"child_id"`
	Subject  string `json:"subject"`
	adaptive.Decision
	TopicResolved bool      `json:"topic_resolved"`
	AttemptCount  int       `json:"attempt_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// DecisionsResponse wraps a decision listing.
type DecisionsResponse struct {
	ChildID   string         `json:"child_id"`
	Decisions []DecisionView `json:"decisions"`
}

func newDecisionView(r store.DecisionRecord) DecisionView {
	return DecisionView{
		ID:            r.ID,
		Sequence:      r.Sequence,
		ChildID:       r.ChildID,
		Subject:       r.Subject,
		Decision:      r.Decision,
		TopicResolved: r.TopicResolved,
		AttemptCount:  r.AttemptCount,
		Timestamp:     r.Timestamp,
	}
}
