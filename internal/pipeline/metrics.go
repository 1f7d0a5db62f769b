package pipeline

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *PipelineMetrics
	metricsOnce   sync.Once
)

// PipelineMetrics holds Prometheus metrics for pipeline execution.
type PipelineMetrics struct {
	// Per-stage latency (extract, detect_*, triage).
	StageDuration *prometheus.HistogramVec

	// Completed turns by final triage level.
	TurnsTotal *prometheus.CounterVec

	// Whole-turn latency.
	TurnDuration prometheus.Histogram
}

// Metrics returns the process-wide pipeline metrics, registering them on
// first use. sync.Once guards against duplicate collector registration
// when multiple pipelines are constructed.
func Metrics() *PipelineMetrics {
	metricsOnce.Do(func() {
		globalMetrics = &PipelineMetrics{
			StageDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "triage_stage_duration_seconds",
					Help:    "Duration of individual pipeline stages",
					Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~400ms
				},
				[]string{"stage"},
			),
			TurnsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "triage_turns_total",
					Help: "Total pipeline turns by final triage level",
				},
				[]string{"level"},
			),
			TurnDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "triage_turn_duration_seconds",
					Help:    "End-to-end pipeline turn duration",
					Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
				},
			),
		}
	})
	return globalMetrics
}

// ObserveStage records one stage execution.
func (m *PipelineMetrics) ObserveStage(stage string, took time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(took.Seconds())
}

// ObserveTurn records one completed turn.
func (m *PipelineMetrics) ObserveTurn(level string, took time.Duration) {
	m.TurnsTotal.WithLabelValues(level).Inc()
	m.TurnDuration.Observe(took.Seconds())
}
