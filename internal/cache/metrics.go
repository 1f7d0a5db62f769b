package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CacheMetrics tracks hit rates and eviction pressure.
type CacheMetrics struct {
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Evictions prometheus.Counter
	Expired   prometheus.Counter
	Entries   prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metrics     *CacheMetrics
)

// Metrics returns the process-wide cache metrics, registering them on
// first use.
func Metrics() *CacheMetrics {
	metricsOnce.Do(func() {
		metrics = &CacheMetrics{
			Hits: promauto.NewCounter(prometheus.CounterOpts{
				Name: "triaged_cache_hits_total",
				Help: "Cache lookups that returned a live entry.",
			}),
			Misses: promauto.NewCounter(prometheus.CounterOpts{
				Name: "triaged_cache_misses_total",
				Help: "Cache lookups that found nothing or only an expired entry.",
			}),
			Evictions: promauto.NewCounter(prometheus.CounterOpts{
				Name: "triaged_cache_evictions_total",
				Help: "Entries removed by capacity pressure.",
			}),
			Expired: promauto.NewCounter(prometheus.CounterOpts{
				Name: "triaged_cache_expired_total",
				Help: "Entries removed after their TTL elapsed.",
			}),
			Entries: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "triaged_cache_entries",
				Help: "Current number of live cache entries.",
			}),
		}
	})
	return metrics
}
