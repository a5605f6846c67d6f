// Package metrics provides Prometheus metrics for the Movie Monday insights service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "moviemonday"
	defaultSubsystem = "insights"
)

// Manager manages all Prometheus metrics for the insights service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Ingest
	recordsIngested prometheus.Counter
	recordsRejected prometheus.Counter
	recordsStored   prometheus.Gauge

	// Engine
	factsGenerated prometheus.Counter
	factsShown     prometheus.Counter
	engineLatency  *prometheus.HistogramVec
	queryErrors    *prometheus.CounterVec

	// Store
	storeUpdateLatency prometheus.Histogram
	storeSnapshots     prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.recordsIngested = m.counter("records_ingested_total", "Total number of weekly records accepted")
	m.recordsRejected = m.counter("records_rejected_total", "Total number of weekly records rejected at ingest")
	m.recordsStored = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_stored",
		Help:        "Number of weekly records currently held",
		ConstLabels: m.constLabels,
	})

	m.factsGenerated = m.counter("facts_generated_total", "Total number of facts produced by the rules before truncation")
	m.factsShown = m.counter("facts_shown_total", "Total number of facts returned after ranking and truncation")

	m.engineLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "engine_latency_milliseconds",
			Help:        "Engine operation latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"operation"},
	)

	m.queryErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "query_errors_total",
			Help:        "Total number of drill-down queries rejected, by requested entity type",
			ConstLabels: m.constLabels,
		},
		[]string{"entity_type"},
	)

	m.storeUpdateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_update_latency_milliseconds",
		Help:        "Record store write latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
	m.storeSnapshots = m.counter("store_snapshot_count_total", "Total number of record store snapshots published")

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_component_total",
			Help:        "Total number of errors by component",
			ConstLabels: m.constLabels,
		},
		[]string{"component", "error_type"},
	)
}

// RecordIngested counts accepted records.
func (m *Manager) RecordIngested(n int) {
	m.recordsIngested.Add(float64(n))
}

// RecordRejected counts rejected records.
func (m *Manager) RecordRejected(n int) {
	m.recordsRejected.Add(float64(n))
}

// UpdateRecordsStored sets the stored record gauge.
func (m *Manager) UpdateRecordsStored(n int) {
	m.recordsStored.Set(float64(n))
}

// RecordFacts counts generated and shown facts for one request.
func (m *Manager) RecordFacts(generated, shown int) {
	m.factsGenerated.Add(float64(generated))
	m.factsShown.Add(float64(shown))
}

// RecordEngineLatency observes one engine operation.
func (m *Manager) RecordEngineLatency(operation string, latencyMs float64) {
	m.engineLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordQueryError counts a rejected drill-down query.
func (m *Manager) RecordQueryError(entityType string) {
	m.queryErrors.WithLabelValues(entityType).Inc()
}

// RecordStoreUpdateLatency observes one store write.
func (m *Manager) RecordStoreUpdateLatency(latencyMs float64) {
	m.storeUpdateLatency.Observe(latencyMs)
}

// IncrementStoreSnapshotCount counts a published store snapshot.
func (m *Manager) IncrementStoreSnapshotCount() {
	m.storeSnapshots.Inc()
}

// RecordHTTPRequest counts an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent counts an error raised by a component.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	m.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// Package-level helpers delegate to the global manager.

// RecordIngested counts accepted records.
func RecordIngested(n int) { globalManager.RecordIngested(n) }

// RecordRejected counts rejected records.
func RecordRejected(n int) { globalManager.RecordRejected(n) }

// UpdateRecordsStored sets the stored record gauge.
func UpdateRecordsStored(n int) { globalManager.UpdateRecordsStored(n) }

// RecordFacts counts generated and shown facts.
func RecordFacts(generated, shown int) { globalManager.RecordFacts(generated, shown) }

// RecordEngineLatency observes one engine operation.
func RecordEngineLatency(operation string, latencyMs float64) {
	globalManager.RecordEngineLatency(operation, latencyMs)
}

// RecordQueryError counts a rejected drill-down query.
func RecordQueryError(entityType string) { globalManager.RecordQueryError(entityType) }

// RecordStoreUpdateLatency observes one store write.
func RecordStoreUpdateLatency(latencyMs float64) { globalManager.RecordStoreUpdateLatency(latencyMs) }

// IncrementStoreSnapshotCount counts a published store snapshot.
func IncrementStoreSnapshotCount() { globalManager.IncrementStoreSnapshotCount() }

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordErrorByComponent counts an error raised by a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// GetRegistry returns the custom registry the global manager writes to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Value reads the current value of a plain counter or gauge registered on
// g, identified by its fully-qualified name. Vectors are summed.
func Value(g prometheus.Gatherer, name string) (float64, error) {
	families, err := g.Gather()
	if err != nil {
		return 0, fmt.Errorf("gather: %w", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		var total float64
		for _, m := range f.GetMetric() {
			total += sample(m)
		}
		return total, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownMetric, name)
}

func sample(m *dto.Metric) float64 {
	switch {
	case m.GetCounter() != nil:
		return m.GetCounter().GetValue()
	case m.GetGauge() != nil:
		return m.GetGauge().GetValue()
	case m.GetHistogram() != nil:
		return float64(m.GetHistogram().GetSampleCount())
	default:
		return 0
	}
}
