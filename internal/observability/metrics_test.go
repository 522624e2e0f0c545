package observability

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/adaptive/internal/adaptive"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	return NewMetrics(prometheus.NewRegistry())
}

func TestObserveDecision(t *testing.T) {
	m := newTestMetrics(t)
	d := adaptive.Decision{Strategy: adaptive.StrategyRevise, Rule: adaptive.RuleWrongStreak}

	m.ObserveDecision(d, 4)
	m.ObserveDecision(d, 2)

	got := testutil.ToFloat64(m.DecisionsTotal.WithLabelValues("revise", "wrong-streak"))
	assert.Equal(t, 2.0, got)
	assert.Equal(t, 1, testutil.CollectAndCount(m.HistoryLength))
}

func TestObserveRejected(t *testing.T) {
	m := newTestMetrics(t)
	m.ObserveRejected(adaptive.ErrEmptyHistory)
	m.ObserveRejected(&adaptive.HistoryError{Index: 1, Err: adaptive.ErrInvalidTopic})
	m.ObserveRejected(errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedTotal.WithLabelValues("empty_history")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedTotal.WithLabelValues("invalid_topic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedTotal.WithLabelValues("internal")))
}

func TestObserveResolution(t *testing.T) {
	m := newTestMetrics(t)
	m.ObserveResolution(true)
	m.ObserveResolution(true)
	m.ObserveResolution(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TopicResolutionsTotal.WithLabelValues("resolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TopicResolutionsTotal.WithLabelValues("unresolved")))
}

func TestObserveHTTP(t *testing.T) {
	m := newTestMetrics(t)
	m.ObserveHTTP("/adaptive/next", http.MethodPost, http.StatusOK, 20*time.Millisecond)

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/adaptive/next", "POST", "200"))
	assert.Equal(t, 1.0, got)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDecision(adaptive.Decision{}, 1)
		m.ObserveRejected(adaptive.ErrEmptyHistory)
		m.ObserveResolution(true)
		m.ObserveHTTP("/", "GET", 200, time.Millisecond)
	})
}
