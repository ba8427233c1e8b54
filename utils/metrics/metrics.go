package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "telecom_distribution"

// Metrics holds the service's collectors on a private registry.
// All Record methods are no-ops on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business metrics
	RequestsCreated    *prometheus.CounterVec
	RequestTransitions *prometheus.CounterVec
	StockResets        prometheus.Counter
	StockRecordsReset  prometheus.Counter
	StatsCacheLookups  *prometheus.CounterVec

	// Messaging metrics
	EventsPublished *prometheus.CounterVec
	EventsConsumed  *prometheus.CounterVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
}

func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	constLabels := prometheus.Labels{"service": serviceName}
	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests",
		ConstLabels: constLabels,
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Name:        "http_request_duration_seconds",
		Help:        "HTTP request duration in seconds",
		Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		ConstLabels: constLabels,
	}, []string{"method", "path"})

	m.HTTPRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "http_requests_in_flight",
		Help:        "Number of HTTP requests currently being processed",
		ConstLabels: constLabels,
	})

	m.RequestsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "product_requests_created_total",
		Help:        "Product requests created, by requester role",
		ConstLabels: constLabels,
	}, []string{"role"})

	m.RequestTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "product_request_transitions_total",
		Help:        "Product request transitions attempted, by action and outcome",
		ConstLabels: constLabels,
	}, []string{"action", "outcome"})

	m.StockResets = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "stock_resets_total",
		Help:        "Completed stock resets",
		ConstLabels: constLabels,
	})

	m.StockRecordsReset = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "stock_records_reset_total",
		Help:        "Non-zero stock records zeroed by resets",
		ConstLabels: constLabels,
	})

	m.StatsCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "stats_cache_lookups_total",
		Help:        "Dashboard stats cache lookups, by result",
		ConstLabels: constLabels,
	}, []string{"result"})

	m.EventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "events_published_total",
		Help:        "Lifecycle events published to RabbitMQ",
		ConstLabels: constLabels,
	}, []string{"event_type", "status"})

	m.EventsConsumed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "events_consumed_total",
		Help:        "Lifecycle events consumed from RabbitMQ",
		ConstLabels: constLabels,
	}, []string{"event_type", "status"})

	m.CircuitBreakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "circuit_breaker_state",
		Help:        "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		ConstLabels: constLabels,
	}, []string{"name"})

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.RequestsCreated,
		m.RequestTransitions,
		m.StockResets,
		m.StockRecordsReset,
		m.StatsCacheLookups,
		m.EventsPublished,
		m.EventsConsumed,
		m.CircuitBreakerState,
	)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement.
func (m *Metrics) TrackInFlight() func() {
	if m == nil {
		return func() {}
	}
	m.HTTPRequestsInFlight.Inc()
	return m.HTTPRequestsInFlight.Dec
}

func (m *Metrics) RecordRequestCreated(role string) {
	if m == nil {
		return
	}
	m.RequestsCreated.WithLabelValues(role).Inc()
}

// RecordTransition records an approve/fulfill/reject attempt; outcome is
// "success" or the error kind that stopped it.
func (m *Metrics) RecordTransition(action, outcome string) {
	if m == nil {
		return
	}
	m.RequestTransitions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) RecordStockReset(records int64) {
	if m == nil {
		return
	}
	m.StockResets.Inc()
	m.StockRecordsReset.Add(float64(records))
}

func (m *Metrics) RecordStatsCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.StatsCacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordEventPublished(eventType string, success bool) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(eventType, status(success)).Inc()
}

func (m *Metrics) RecordEventConsumed(eventType string, success bool) {
	if m == nil {
		return
	}
	m.EventsConsumed.WithLabelValues(eventType, status(success)).Inc()
}

// SetCircuitBreakerState sets 0 (closed), 1 (half-open) or 2 (open).
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
