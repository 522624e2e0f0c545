package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/adaptive/internal/adaptive"
	"github.com/abhisek/adaptive/internal/store"
	"github.com/abhisek/adaptive/internal/tutor"
)

// RunningStatus is the body of GET /.
const RunningStatus = "Adaptive Learning Engine running"

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": RunningStatus})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleNext(c *gin.Context) {
	var req NextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	res, err := s.svc.Next(c.Request.Context(), tutor.NextRequest{
		ChildID:  req.ChildID,
		Subject:  req.Subject,
		Attempts: req.Attempts,
	})
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleRecordAttempt(c *gin.Context) {
	childID, ok := childIDParam(c)
	if !ok {
		return
	}

	var req AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	res, err := s.svc.RecordAnswer(c.Request.Context(), tutor.AnswerRequest{
		ChildID: childID,
		Subject: req.Subject,
		Attempt: req.Attempt(),
	})
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (s *Server) handleDecisions(c *gin.Context) {
	childID, ok := childIDParam(c)
	if !ok {
		return
	}

	var q DecisionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithBindError(c, err)
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultDecisionLimit
	}

	recs, err := s.svc.Decisions(c.Request.Context(), childID, store.QueryOpts{
		Limit:   q.Limit,
		Subject: q.Subject,
	})
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}

	views := make([]DecisionView, len(recs))
	for i, r := range recs {
		views[i] = newDecisionView(r)
	}
	c.JSON(http.StatusOK, DecisionsResponse{ChildID: childID, Decisions: views})
}

const defaultDecisionLimit = 50

func childIDParam(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("childId"))
	if id == "" || len(id) > 128 {
		abortWithError(c, http.StatusBadRequest, "invalid_request", "child id must be 1-128 characters")
		return "", false
	}
	return id, true
}

func (s *Server) abortWithServiceError(c *gin.Context, err error) {
	switch {
	case adaptive.IsInvalidInput(err):
		abortWithError(c, http.StatusBadRequest, adaptive.ErrorKind(err), err.Error())
	case errors.Is(err, tutor.ErrNoHistoryStore):
		abortWithError(c, http.StatusServiceUnavailable, "history_unavailable", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		abortWithError(c, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		s.logger.ErrorContext(c.Request.Context(), "request failed",
			"request_id", RequestID(c),
			"route", c.FullPath(),
			"error", err,
		)
		abortWithError(c, http.StatusInternalServerError, "internal", "internal error")
	}
}

// abortWithBindError reports a malformed body or a failed binding tag.
func abortWithBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, len(verrs))
		for i, fe := range verrs {
			msgs[i] = fieldMessage(fe)
		}
		abortWithError(c, http.StatusBadRequest, "invalid_request", strings.Join(msgs, "; "))
		return
	}
	abortWithError(c, http.StatusBadRequest, "invalid_request", "malformed request: "+err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s exceeds maximum of %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s is below minimum of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}

func abortWithError(c *gin.Context, status int, kind, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: kind, Message: msg})
}
