// Package metrics holds the Prometheus collectors for oracle calls, HTTP
// requests and live sessions.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "educareer"

// Metrics owns a private registry so tests and multiple servers never
// collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	llmRequests *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec
	llmTokens   *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	transitions *prometheus.CounterVec
	sessions    prometheus.Gauge
}

// New creates and registers every collector, plus the Go and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Generative model calls by provider, purpose and outcome.",
		}, []string{"provider", "purpose", "outcome"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Latency of a single generative model call.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"provider", "purpose"}),
		llmTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Tokens consumed by direction.",
		}, []string{"provider", "direction"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "transitions_total",
			Help:      "Session state transitions by event and target state.",
		}, []string{"event", "to"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Sessions currently held by the registry.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.llmRequests, m.llmLatency, m.llmTokens,
		m.httpRequests, m.httpLatency,
		m.transitions, m.sessions,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveLLMRequest implements llm.Recorder.
func (m *Metrics) ObserveLLMRequest(provider, purpose, outcome string, latency time.Duration, inputTokens, outputTokens int) {
	m.llmRequests.WithLabelValues(provider, purpose, outcome).Inc()
	m.llmLatency.WithLabelValues(provider, purpose).Observe(latency.Seconds())
	if inputTokens > 0 {
		m.llmTokens.WithLabelValues(provider, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		m.llmTokens.WithLabelValues(provider, "output").Add(float64(outputTokens))
	}
}

// ObserveHTTPRequest records one served request. route is the matched
// pattern, not the raw path.
func (m *Metrics) ObserveHTTPRequest(route, method string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(latency.Seconds())
}

// ObserveTransition counts a session state change.
func (m *Metrics) ObserveTransition(event, to string) {
	m.transitions.WithLabelValues(event, to).Inc()
}

// SessionOpened and SessionClosed track the registry size.
func (m *Metrics) SessionOpened(string) { m.sessions.Inc() }
func (m *Metrics) SessionClosed(string) { m.sessions.Dec() }
