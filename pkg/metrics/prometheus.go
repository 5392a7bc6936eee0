// Package metrics provides Prometheus metrics for FOREL clustering runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the metric vectors of one registry.
type Manager struct {
	namespace       string
	subsystem       string
	durationBuckets []float64
	customLabels    map[string]string
	registry        *prometheus.Registry

	// Run outcome
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram

	// Algorithm behavior
	attempts         prometheus.Counter
	solverIterations prometheus.Histogram
	clusterSize      prometheus.Histogram

	// Last accepted result
	points      prometheus.Gauge
	clusters    prometheus.Gauge
	finalRadius prometheus.Gauge

	errorsByKind *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a new metrics manager on its own registry unless one is
// supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "forel",
		subsystem:       "clustering",
		durationBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000, 30000},
		customLabels:    make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Total number of clustering runs by outcome",
		ConstLabels: labels,
	}, []string{"status"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_milliseconds",
		Help:        "Wall time of a clustering run in milliseconds",
		Buckets:     m.durationBuckets,
		ConstLabels: labels,
	})

	m.attempts = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "attempts_total",
		Help:        "Total number of radius attempts, accepted or not",
		ConstLabels: labels,
	})

	m.solverIterations = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "solver_iterations",
		Help:        "Centroid recomputations needed to converge one cluster",
		Buckets:     prometheus.ExponentialBuckets(2, 2, 10),
		ConstLabels: labels,
	})

	m.clusterSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "cluster_size_points",
		Help:        "Number of points per accepted cluster",
		Buckets:     prometheus.ExponentialBuckets(1, 2, 16),
		ConstLabels: labels,
	})

	m.points = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "points",
		Help:        "Number of points in the last clustered dataset",
		ConstLabels: labels,
	})

	m.clusters = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "clusters",
		Help:        "Number of clusters in the last accepted result",
		ConstLabels: labels,
	})

	m.finalRadius = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "final_radius",
		Help:        "Normalized hypersphere radius of the last accepted attempt",
		ConstLabels: labels,
	})

	m.errorsByKind = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Total number of failed runs by component and error kind",
		ConstLabels: labels,
	}, []string{"component", "kind"})
}

// Registry returns the registry the manager's metrics live in.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every metric of the manager in the text exposition
// format, suitable for the node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// RecordRun counts a finished run with the given status.
func RecordRun(status string) {
	globalManager.runs.WithLabelValues(status).Inc()
}

// RecordRunDuration observes the wall time of a run.
func RecordRunDuration(durationMs float64) {
	globalManager.runDuration.Observe(durationMs)
}

// RecordAttempt counts one radius attempt.
func RecordAttempt() {
	globalManager.attempts.Inc()
}

// RecordSolverIterations observes the iterations of one converged search.
func RecordSolverIterations(iterations int) {
	globalManager.solverIterations.Observe(float64(iterations))
}

// RecordClusterSize observes the size of one accepted cluster.
func RecordClusterSize(size int) {
	globalManager.clusterSize.Observe(float64(size))
}

// UpdatePointCount sets the number of points of the last dataset.
func UpdatePointCount(count int) {
	globalManager.points.Set(float64(count))
}

// UpdateClusterCount sets the number of clusters of the last result.
func UpdateClusterCount(count int) {
	globalManager.clusters.Set(float64(count))
}

// UpdateFinalRadius sets the radius of the last accepted attempt.
func UpdateFinalRadius(radius float64) {
	globalManager.finalRadius.Set(radius)
}

// RecordError counts a failed run by component and error kind.
func RecordError(component, kind string) {
	globalManager.errorsByKind.WithLabelValues(component, kind).Inc()
}

// GetRegistry returns the registry used by the global metrics.
func GetRegistry() *prometheus.Registry {
	return globalManager.registry
}

// WriteTextfile exports the global metrics to path.
func WriteTextfile(path string) error {
	return globalManager.WriteTextfile(path)
}
