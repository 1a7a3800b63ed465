package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's Prometheus collectors on a private registry so
// tests can build as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	SessionsCreated  prometheus.Counter
	SessionsExpired  prometheus.Counter
	AuthFailures     prometheus.Counter
	StageOutcomes    *prometheus.CounterVec
	ValidationErrors *prometheus.CounterVec
	Submissions      prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// New creates and registers all gateway metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "eri_sessions_created_total",
			Help: "Total number of sessions issued by login",
		}),
		SessionsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "eri_sessions_expired_total",
			Help: "Total number of sessions evicted on expiry detection",
		}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "eri_auth_failures_total",
			Help: "Total number of rejected login attempts",
		}),
		StageOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eri_stage_outcomes_total",
			Help: "Filing stage completions by stage and outcome",
		}, []string{"stage", "outcome"}),
		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eri_validation_errors_total",
			Help: "Rule engine findings by error code",
		}, []string{"code"}),
		Submissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "eri_submissions_total",
			Help: "Total number of returns submitted",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eri_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method", "status"}),
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// IncrementSessionsCreated records a successful login.
func (m *Metrics) IncrementSessionsCreated() {
	m.SessionsCreated.Inc()
}

// IncrementSessionsExpired records a lazily evicted session.
func (m *Metrics) IncrementSessionsExpired() {
	m.SessionsExpired.Inc()
}

// IncrementAuthFailures records a rejected login.
func (m *Metrics) IncrementAuthFailures() {
	m.AuthFailures.Inc()
}

// RecordStage records the outcome of one filing stage.
func (m *Metrics) RecordStage(stage, outcome string) {
	m.StageOutcomes.WithLabelValues(stage, outcome).Inc()
}

// RecordValidationError counts one rule engine finding.
func (m *Metrics) RecordValidationError(code string) {
	m.ValidationErrors.WithLabelValues(code).Inc()
}

// IncrementSubmissions records an accepted return.
func (m *Metrics) IncrementSubmissions() {
	m.Submissions.Inc()
}

// ObserveRequest records request latency.
// Call with time.Now() taken at the start of the request.
func (m *Metrics) ObserveRequest(route, method, status string, start time.Time) {
	m.RequestDuration.WithLabelValues(route, method, status).Observe(time.Since(start).Seconds())
}
