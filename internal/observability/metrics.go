package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhisek/adaptive/internal/adaptive"
)

const metricsNamespace = "adaptive"

// Metrics holds the service's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// DecisionsTotal counts decisions by strategy and the rule that fired.
	DecisionsTotal *prometheus.CounterVec

	// RejectedTotal counts histories rejected before evaluation, by error kind.
	RejectedTotal *prometheus.CounterVec

	// TopicResolutionsTotal counts advance decisions by whether the
	// curriculum produced a next topic.
	TopicResolutionsTotal *prometheus.CounterVec

	// HistoryLength observes how many attempts each decision was based on.
	HistoryLength prometheus.Histogram

	// HTTPRequestsTotal counts requests by route, method and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration measures request latency by route and method.
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DecisionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "engine",
				Name:      "decisions_total",
				Help:      "Decisions produced, by strategy and rule",
			},
			[]string{"strategy", "rule"},
		),
		RejectedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "engine",
				Name:      "rejected_total",
				Help:      "Attempt histories rejected before evaluation, by error kind",
			},
			[]string{"kind"},
		),
		TopicResolutionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "curriculum",
				Name:      "resolutions_total",
				Help:      "Advance decisions by curriculum resolution result",
			},
			[]string{"result"},
		),
		HistoryLength: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "engine",
				Name:      "history_length",
				Help:      "Number of attempts evaluated per decision",
				Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
			},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}
}

// ObserveDecision records a successful evaluation.
func (m *Metrics) ObserveDecision(d adaptive.Decision, historyLen int) {
	if m == nil {
		return
	}
	m.DecisionsTotal.WithLabelValues(string(d.Strategy), string(d.Rule)).Inc()
	m.HistoryLength.Observe(float64(historyLen))
}

// ObserveRejected records a history that failed validation.
func (m *Metrics) ObserveRejected(err error) {
	if m == nil {
		return
	}
	m.RejectedTotal.WithLabelValues(adaptive.ErrorKind(err)).Inc()
}

// ObserveResolution records the outcome of resolving an advance topic.
func (m *Metrics) ObserveResolution(resolved bool) {
	if m == nil {
		return
	}
	result := "resolved"
	if !resolved {
		result = "unresolved"
	}
	m.TopicResolutionsTotal.WithLabelValues(result).Inc()
}

// ObserveHTTP records a finished HTTP request.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
