package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
	nanosPerMilli          = 1e6
)

// Plan paths.
const (
	PathTargeted = "targeted"
	PathGeneric  = "generic"
)

// Manager owns every advisor metric.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Planning
	plansGenerated     *prometheus.CounterVec
	planLatency        prometheus.Histogram
	planCoverage       prometheus.Histogram
	planDiversity      prometheus.Histogram
	planItems          prometheus.Histogram
	planCache          *prometheus.CounterVec
	batchSize          prometheus.Histogram
	validationFailures prometheus.Counter
	unsafeInputs       prometheus.Counter

	// Catalog
	catalogCourses prometheus.Gauge
	catalogRoles   prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
	lastNumGC            uint32
}

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "upskill",
		subsystem:        "advisor",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.plansGenerated = auto.NewCounterVec(
		m.counterOpts("plans_generated_total", "Plans generated by path (targeted or generic)"),
		[]string{"path"},
	)
	m.planLatency = auto.NewHistogram(
		m.histogramOpts("plan_latency_milliseconds", "Time to build one plan in milliseconds", m.histogramBuckets))
	m.planCoverage = auto.NewHistogram(
		m.histogramOpts("plan_coverage_score", "Coverage score of generated plans",
			prometheus.LinearBuckets(0, 10, 11)))
	m.planDiversity = auto.NewHistogram(
		m.histogramOpts("plan_diversity_score", "Diversity score of generated plans",
			prometheus.LinearBuckets(0.1, 0.1, 10)))
	m.planItems = auto.NewHistogram(
		m.histogramOpts("plan_items", "Number of courses per plan", prometheus.LinearBuckets(0, 1, 6)))
	m.planCache = auto.NewCounterVec(
		m.counterOpts("plan_cache_requests_total", "Plan cache lookups by result"),
		[]string{"result"},
	)
	m.batchSize = auto.NewHistogram(
		m.histogramOpts("batch_size", "Profiles per batch request", prometheus.ExponentialBuckets(1, 2, 6)))
	m.validationFailures = auto.NewCounter(
		m.counterOpts("validation_failures_total", "Requests rejected by input validation"))
	m.unsafeInputs = auto.NewCounter(
		m.counterOpts("unsafe_inputs_total", "Requests rejected by the injection screen"))

	m.catalogCourses = auto.NewGauge(m.gaugeOpts("catalog_courses", "Courses in the loaded catalog"))
	m.catalogRoles = auto.NewGauge(m.gaugeOpts("catalog_roles", "Roles in the loaded catalog"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordPlan records one generated plan.
func (m *Manager) RecordPlan(path string, latency time.Duration, coverage int, diversity float64, items int) {
	if !m.enabled {
		return
	}
	m.plansGenerated.WithLabelValues(path).Inc()
	m.planLatency.Observe(float64(latency) / nanosPerMilli)
	m.planCoverage.Observe(float64(coverage))
	m.planDiversity.Observe(diversity)
	m.planItems.Observe(float64(items))
}

// RecordCacheLookup records a plan cache hit or miss.
func (m *Manager) RecordCacheLookup(hit bool) {
	if !m.enabled {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.planCache.WithLabelValues(result).Inc()
}

// CollectSystem samples memory, goroutine and GC pause figures once.
func (m *Manager) CollectSystem() {
	if !m.enabled {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.systemMemoryUsage.Set(float64(ms.Alloc))
	m.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))

	// PauseNs is a ring of the most recent pauses; GC number k sits at (k-1) mod len.
	ring := uint32(len(ms.PauseNs))
	start := m.lastNumGC
	if ms.NumGC-start > ring {
		start = ms.NumGC - ring
	}
	for n := start; n < ms.NumGC; n++ {
		m.systemGCPauseTime.Observe(float64(ms.PauseNs[n%ring]) / nanosPerMilli)
	}
	m.lastNumGC = ms.NumGC
}

// RunSystemCollector samples system gauges every refresh interval until ctx ends.
func (m *Manager) RunSystemCollector(ctx context.Context) {
	ticker := time.NewTicker(m.refreshInterval)
	defer ticker.Stop()
	m.CollectSystem()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CollectSystem()
		}
	}
}

// RecordPlan records a plan on the global manager.
func RecordPlan(path string, latency time.Duration, coverage int, diversity float64, items int) {
	globalManager.RecordPlan(path, latency, coverage, diversity, items)
}

// RecordCacheLookup records a plan cache lookup on the global manager.
func RecordCacheLookup(hit bool) {
	globalManager.RecordCacheLookup(hit)
}

// RecordBatchSize records the number of profiles in a batch request.
func RecordBatchSize(n int) {
	if globalManager.enabled {
		globalManager.batchSize.Observe(float64(n))
	}
}

// RecordValidationFailure increments the validation failure counter.
func RecordValidationFailure() {
	if globalManager.enabled {
		globalManager.validationFailures.Inc()
	}
}

// RecordUnsafeInput increments the unsafe input counter.
func RecordUnsafeInput() {
	if globalManager.enabled {
		globalManager.unsafeInputs.Inc()
	}
}

// UpdateCatalogSize sets the catalog gauges.
func UpdateCatalogSize(courses, roles int) {
	if globalManager.enabled {
		globalManager.catalogCourses.Set(float64(courses))
		globalManager.catalogRoles.Set(float64(roles))
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if globalManager.enabled {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RunSystemCollector samples system gauges on the global manager until ctx ends.
func RunSystemCollector(ctx context.Context) {
	globalManager.RunSystemCollector(ctx)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
