package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome classifies how an API call ended.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeServerError Outcome = "server_error"
	OutcomeUnreachable Outcome = "unreachable"
	OutcomeLocalError  Outcome = "local_error"
)

// ClientMetrics holds the API client metrics.
//
// A nil *ClientMetrics is valid and records nothing.
type ClientMetrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
}

// NewClientMetrics creates the metrics and registers them with a private registry.
func NewClientMetrics() *ClientMetrics {
	m := &ClientMetrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spot",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API requests issued, by HTTP method and outcome",
		}, []string{"method", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spot",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "API request latency in seconds",
			Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		}, []string{"method"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spot",
			Subsystem: "session",
			Name:      "transitions_total",
			Help:      "Session state transitions, by reason",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.transitions,
	)
	return m
}

// ObserveRequest records one finished API call.
func (m *ClientMetrics) ObserveRequest(method string, outcome Outcome, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, string(outcome)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// ObserveTransition records one session state transition.
func (m *ClientMetrics) ObserveTransition(reason string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(reason).Inc()
}

// Registry returns the underlying registry.
func (m *ClientMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes all metrics to path in text exposition format.
// The file is replaced atomically.
func (m *ClientMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
