// Package metrics provides Prometheus metrics for the pick'em pool service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Pool business metrics
	submissionsAccepted prometheus.Counter
	submissionsRejected *prometheus.CounterVec
	reveals             *prometheus.CounterVec
	weeksAdvanced       prometheus.Counter
	currentWeek         prometheus.Gauge
	picksSubmitted      prometheus.Gauge

	// Store health
	storeOps       *prometheus.CounterVec
	storeOpErrors  *prometheus.CounterVec
	storeOpLatency prometheus.Histogram

	// Process health
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager, applying options over defaults.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pickem",
		subsystem:        "pool",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initMetrics()
	return m
}

func (m *Manager) initMetrics() {
	factory := promauto.With(m.registry)

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.submissionsAccepted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_accepted_total",
		Help:      "Picks accepted by the submission gate.",
	})

	m.submissionsRejected = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_rejected_total",
		Help:      "Picks rejected by the submission gate, by reason.",
	}, []string{"reason"})

	m.reveals = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reveals_total",
		Help:      "Week reveal transitions, by trigger (auto, manual, advance).",
	}, []string{"trigger"})

	m.weeksAdvanced = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "weeks_advanced_total",
		Help:      "Successful week advancements.",
	})

	m.currentWeek = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "current_week",
		Help:      "The pool's current week number.",
	})

	m.picksSubmitted = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "picks_submitted",
		Help:      "Number of picks submitted for the current week.",
	})

	m.storeOps = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_ops_total",
		Help:      "Key-value store operations, by op (get, put).",
	}, []string{"op"})

	m.storeOpErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_op_errors_total",
		Help:      "Failed key-value store operations, by op.",
	}, []string{"op"})

	m.storeOpLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_op_latency_ms",
		Help:      "Key-value store operation latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap memory in bytes.",
	})

	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines.",
	})
}

// GetRegistry returns the registry backing the global manager, for promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operating on the global manager.

// RecordHTTPRequest counts a completed HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

// RecordSubmissionAccepted counts an accepted pick.
func RecordSubmissionAccepted() {
	if !globalManager.enabled {
		return
	}
	globalManager.submissionsAccepted.Inc()
}

// RecordSubmissionRejected counts a rejected pick by reason
// (roster, empty_pick, locked).
func RecordSubmissionRejected(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.submissionsRejected.WithLabelValues(reason).Inc()
}

// RecordReveal counts a reveal transition by trigger (auto, manual, advance).
func RecordReveal(trigger string) {
	if !globalManager.enabled {
		return
	}
	globalManager.reveals.WithLabelValues(trigger).Inc()
}

// RecordWeekAdvanced counts a successful advancement.
func RecordWeekAdvanced() {
	if !globalManager.enabled {
		return
	}
	globalManager.weeksAdvanced.Inc()
}

// UpdateCurrentWeek sets the current week gauge.
func UpdateCurrentWeek(week int) {
	if !globalManager.enabled {
		return
	}
	globalManager.currentWeek.Set(float64(week))
}

// UpdatePicksSubmitted sets the submitted-picks gauge for the current week.
func UpdatePicksSubmitted(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.picksSubmitted.Set(float64(count))
}

// RecordStoreOp counts a store operation and observes its latency.
func RecordStoreOp(op string, ms float64, err error) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeOps.WithLabelValues(op).Inc()
	globalManager.storeOpLatency.Observe(ms)
	if err != nil {
		globalManager.storeOpErrors.WithLabelValues(op).Inc()
	}
}

// UpdateSystemMemoryUsage sets the heap memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}
