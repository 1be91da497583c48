package core

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder receives per-operation duration and outcome signals from the
// service layer.
type MetricsRecorder interface {
	RecordDuration(operation string, duration time.Duration)
	RecordResult(operation, status string)
}

type noopMetrics struct{}

func (noopMetrics) RecordDuration(string, time.Duration) {}
func (noopMetrics) RecordResult(string, string)          {}

var expvarSeq uint64

// ExpvarMetricsRecorder publishes aggregate timing and result counters via
// expvar, for deployments that prefer process-local metrics without external
// dependencies. Totals are kept in milliseconds per operation.
type ExpvarMetricsRecorder struct {
	name      string
	mu        sync.Mutex
	durations map[string]float64
	results   map[string]map[string]int64
}

// ExpvarMetricsSnapshot captures a read-only view of the recorded metrics.
type ExpvarMetricsSnapshot struct {
	DurationsMS map[string]float64          `json:"durations_ms_total"`
	Results     map[string]map[string]int64 `json:"results_total"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewExpvarMetricsRecorder constructs an expvar-backed recorder and publishes
// it under the supplied name. When name is empty, a unique identifier is
// generated.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("portal_service_metrics_%d", id)
	}
	rec := &ExpvarMetricsRecorder{
		name:      name,
		durations: make(map[string]float64),
		results:   make(map[string]map[string]int64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarMetricsRecorder) Name() string {
	return r.name
}

// Snapshot returns an immutable copy of the aggregated metrics.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	durations := make(map[string]float64, len(r.durations))
	for op, total := range r.durations {
		durations[op] = total
	}

	results := make(map[string]map[string]int64, len(r.results))
	for op, statusCounts := range r.results {
		cpy := make(map[string]int64, len(statusCounts))
		for status, count := range statusCounts {
			cpy[status] = count
		}
		results[op] = cpy
	}

	return ExpvarMetricsSnapshot{
		DurationsMS: durations,
		Results:     results,
		RecordedAt:  time.Now().UTC(),
	}
}

// RecordDuration accumulates the operation's elapsed time.
func (r *ExpvarMetricsRecorder) RecordDuration(operation string, duration time.Duration) {
	if operation == "" {
		return
	}
	ms := float64(duration) / float64(time.Millisecond)
	r.mu.Lock()
	r.durations[operation] += ms
	r.mu.Unlock()
}

// RecordResult increments the per-status counter for the operation.
func (r *ExpvarMetricsRecorder) RecordResult(operation, status string) {
	if operation == "" {
		return
	}
	r.mu.Lock()
	if _, ok := r.results[operation]; !ok {
		r.results[operation] = make(map[string]int64, 2)
	}
	r.results[operation][status]++
	r.mu.Unlock()
}

// PrometheusMetricsRecorder exports operation counters and duration histograms
// through a Prometheus registry.
type PrometheusMetricsRecorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPrometheusMetricsRecorder registers the portal collectors with reg.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) *PrometheusMetricsRecorder {
	m := &PrometheusMetricsRecorder{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffportal_operations_total",
				Help: "Total count of service operations by outcome.",
			},
			[]string{"operation", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "staffportal_operation_duration_seconds",
				Help:    "Histogram of service operation durations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(m.operations, m.duration)
	return m
}

// RecordDuration observes the operation's elapsed time.
func (m *PrometheusMetricsRecorder) RecordDuration(operation string, duration time.Duration) {
	if operation == "" {
		return
	}
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordResult increments the outcome counter for the operation.
func (m *PrometheusMetricsRecorder) RecordResult(operation, status string) {
	if operation == "" {
		return
	}
	m.operations.WithLabelValues(operation, status).Inc()
}

var (
	_ MetricsRecorder = (*ExpvarMetricsRecorder)(nil)
	_ MetricsRecorder = (*PrometheusMetricsRecorder)(nil)
)
