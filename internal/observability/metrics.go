package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	overdueAlerts   prometheus.Gauge
	completions     *prometheus.CounterVec
	wishFallbacks   prometheus.Counter
}

// NewMetrics initializes and registers collectors.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Errors rendered by the error middleware, by code.",
		}, []string{"path", "method", "code"}),
		overdueAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_alerts",
			Help:      "Overdue milestone alerts at the last admin evaluation.",
		}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "milestone_completions_total",
			Help:      "Milestone completions by milestone and outcome.",
		}, []string{"milestone", "outcome"}),
		wishFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wish_fallbacks_total",
			Help:      "Wishes answered with a fallback template.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestCount,
		m.requestDuration,
		m.errorCount,
		m.overdueAlerts,
		m.completions,
		m.wishFallbacks,
	)
	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// SetOverdueAlerts publishes the size of the latest admin alert list.
func (m *Metrics) SetOverdueAlerts(n int) {
	if m == nil {
		return
	}
	m.overdueAlerts.Set(float64(n))
}

// RecordCompletion counts a completion outcome ("committed" or "rolled_back").
func (m *Metrics) RecordCompletion(milestone, outcome string) {
	if m == nil {
		return
	}
	m.completions.WithLabelValues(milestone, outcome).Inc()
}

// RecordWishFallback counts a wish served from a fallback template.
func (m *Metrics) RecordWishFallback() {
	if m == nil {
		return
	}
	m.wishFallbacks.Inc()
}
