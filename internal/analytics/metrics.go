package analytics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromMetrics exposes feedback volume to the ops surface.
type PromMetrics struct {
	QueriesRecorded  *prometheus.CounterVec
	FeedbackReceived *prometheus.CounterVec
}

var (
	promOnce sync.Once
	prom     *PromMetrics
)

// Prom returns the process-wide analytics metrics, registering them on
// first use.
func Prom() *PromMetrics {
	promOnce.Do(func() {
		prom = &PromMetrics{
			QueriesRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "triaged_analytics_queries_total",
				Help: "Queries recorded by the analytics service.",
			}, []string{"query_type", "urgency"}),
			FeedbackReceived: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "triaged_analytics_feedback_total",
				Help: "Feedback submissions recorded by the analytics service.",
			}, []string{"query_type", "successful"}),
		}
	})
	return prom
}
