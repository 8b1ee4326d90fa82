// Package metrics provides Prometheus metrics for the telemetry
// analysis service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  prometheus.Registerer

	// Session lifecycle
	sessionsSubmitted prometheus.Counter
	sessionsDuplicate prometheus.Counter
	sessionsCompleted prometheus.Counter
	sessionsFailed    prometheus.Counter

	// Pipeline observations
	samplesDropped   prometheus.Counter
	shiftEvents      prometheus.Counter
	accelEvents      prometheus.Counter
	pipelineDuration prometheus.Histogram

	// Queue and worker health
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueueErrs prometheus.Counter
	workerCount      prometheus.Gauge
	storedSessions   prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error accounting
	errorsByComponent *prometheus.CounterVec
}

// Custom registry so the default Go collectors do not leak into
// /healthz output.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "dfr",
		subsystem: "telemetry",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.sessionsSubmitted = factory.NewCounter(m.counterOpts("sessions_submitted_total", "Analysis sessions accepted for processing."))
	m.sessionsDuplicate = factory.NewCounter(m.counterOpts("sessions_duplicate_total", "Session submissions rejected as duplicates."))
	m.sessionsCompleted = factory.NewCounter(m.counterOpts("sessions_completed_total", "Sessions analyzed successfully."))
	m.sessionsFailed = factory.NewCounter(m.counterOpts("sessions_failed_total", "Sessions whose pipeline failed."))

	m.samplesDropped = factory.NewCounter(m.counterOpts("samples_dropped_total", "Samples dropped during normalization."))
	m.shiftEvents = factory.NewCounter(m.counterOpts("shift_events_total", "Gear-shift events detected."))
	m.accelEvents = factory.NewCounter(m.counterOpts("acceleration_events_total", "Acceleration events detected."))
	m.pipelineDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_duration_seconds",
		Help:      "Wall time of one full pipeline run.",
		Buckets:   m.buckets,
	})

	m.queueSize = factory.NewGauge(m.gaugeOpts("queue_size", "Jobs currently queued."))
	m.queueCapacity = factory.NewGauge(m.gaugeOpts("queue_capacity", "Configured queue capacity."))
	m.queueUtilization = factory.NewGauge(m.gaugeOpts("queue_utilization", "Queue fill ratio."))
	m.queueEnqueueErrs = factory.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Failed enqueue attempts."))
	m.workerCount = factory.NewGauge(m.gaugeOpts("worker_count", "Running analysis workers."))
	m.storedSessions = factory.NewGauge(m.gaugeOpts("stored_sessions", "Session results held in memory."))

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by endpoint and method.",
		Buckets:   m.buckets,
	}, []string{"endpoint", "method"})

	m.errorsByComponent = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Errors by component and reason.",
	}, []string{"component", "reason"})

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
}

// GetRegistry exposes the gatherer backing /healthz.
func GetRegistry() *prometheus.Registry { return customRegistry }

// Package-level helpers against the global manager.

func RecordSessionSubmitted() { globalManager.sessionsSubmitted.Inc() }
func RecordSessionDuplicate() { globalManager.sessionsDuplicate.Inc() }
func RecordSessionCompleted() { globalManager.sessionsCompleted.Inc() }
func RecordSessionFailed()    { globalManager.sessionsFailed.Inc() }

// AddSamplesDropped accounts normalization drops.
func AddSamplesDropped(n int) { globalManager.samplesDropped.Add(float64(n)) }

// AddShiftEvents accounts detected gear shifts.
func AddShiftEvents(n int) { globalManager.shiftEvents.Add(float64(n)) }

// AddAccelEvents accounts detected acceleration events.
func AddAccelEvents(n int) { globalManager.accelEvents.Add(float64(n)) }

// ObservePipelineDuration records one pipeline run's wall time.
func ObservePipelineDuration(seconds float64) { globalManager.pipelineDuration.Observe(seconds) }

func UpdateQueueSize(n int)            { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)        { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(r float64) { globalManager.queueUtilization.Set(r) }
func RecordQueueEnqueueError()         { globalManager.queueEnqueueErrs.Inc() }
func UpdateWorkerCount(n int)          { globalManager.workerCount.Set(float64(n)) }
func UpdateStoredSessions(n int)       { globalManager.storedSessions.Set(float64(n)) }

// RecordHTTPRequest counts one request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// ObserveHTTPRequestDuration records one request's latency.
func ObserveHTTPRequestDuration(endpoint, method string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}

// RecordErrorByComponent counts an error for a component.
func RecordErrorByComponent(component, reason string) {
	globalManager.errorsByComponent.WithLabelValues(component, reason).Inc()
}
