package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "sunfutures_"

var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "forecast_cache_hits_total",
		Help: "Forecast cache hits",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "forecast_cache_misses_total",
		Help: "Forecast cache misses",
	})
	upstreamFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricPrefix + "upstream_failures_total",
		Help: "Weather source fetches that failed after all retries",
	}, []string{"source"})
	pipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    metricPrefix + "pipeline_duration_seconds",
		Help:    "End-to-end forecast pipeline duration",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses, upstreamFailures, pipelineDuration)
}

// CacheHit records a forecast served from the cache.
func CacheHit() { cacheHits.Inc() }

// CacheMiss records a forecast that required a pipeline run.
func CacheMiss() { cacheMisses.Inc() }

// UpstreamFailure records an exhausted fetch for the named source.
func UpstreamFailure(source string) { upstreamFailures.WithLabelValues(source).Inc() }

// ObservePipeline records one pipeline run's wall time.
func ObservePipeline(d time.Duration) { pipelineDuration.Observe(d.Seconds()) }
