package core

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var expvarSeq uint64

// ExpvarMetricsRecorder publishes aggregate dispatch timing and result
// counters via expvar for deployments that prefer process-local metrics.
// Totals are kept in milliseconds per action alongside success/error counts.
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

// NewExpvarMetricsRecorder constructs an expvar-backed recorder published
// under the supplied name. When name is empty a unique one is generated.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("dentsync_dispatch_metrics_%d", id)
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
	for action, total := range r.durations {
		durations[action] = total
	}
	results := make(map[string]map[string]int64, len(r.results))
	for action, statusCounts := range r.results {
		cpy := make(map[string]int64, len(statusCounts))
		for status, count := range statusCounts {
			cpy[status] = count
		}
		results[action] = cpy
	}
	return ExpvarMetricsSnapshot{
		DurationsMS: durations,
		Results:     results,
		RecordedAt:  time.Now().UTC(),
	}
}

// Observe records a dispatch outcome.
func (r *ExpvarMetricsRecorder) Observe(action string, success bool, duration time.Duration) {
	if action == "" {
		return
	}
	ms := float64(duration) / float64(time.Millisecond)
	status := "error"
	if success {
		status = "success"
	}

	r.mu.Lock()
	r.durations[action] += ms
	if _, ok := r.results[action]; !ok {
		r.results[action] = make(map[string]int64, 2)
	}
	r.results[action][status]++
	r.mu.Unlock()
}

// PrometheusMetricsRecorder exports dispatch counters and latency histograms
// through a prometheus registry.
type PrometheusMetricsRecorder struct {
	dispatches *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewPrometheusMetricsRecorder registers the dispatch collectors with reg.
// Pass prometheus.DefaultRegisterer for the process-default registry.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	rec := &PrometheusMetricsRecorder{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dentsync_dispatch_total",
			Help: "Dispatched actions by action type and outcome.",
		}, []string{"action", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dentsync_dispatch_duration_seconds",
			Help:    "Dispatch latency by action type, including persistence.",
			Buckets: prometheus.DefBuckets,
		}, []string{"action"}),
	}
	if err := reg.Register(rec.dispatches); err != nil {
		return nil, err
	}
	if err := reg.Register(rec.durations); err != nil {
		return nil, err
	}
	return rec, nil
}

// Observe records a dispatch outcome.
func (r *PrometheusMetricsRecorder) Observe(action string, success bool, duration time.Duration) {
	if action == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.dispatches.WithLabelValues(action, status).Inc()
	r.durations.WithLabelValues(action).Observe(duration.Seconds())
}
