// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dashboard",
		Name:      "upstream_requests_total",
		Help:      "Outbound requests to market data providers by source and outcome.",
	}, []string{"source", "outcome"})

	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dashboard",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of outbound requests to market data providers.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dashboard",
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by cache name and result (hit|miss).",
	}, []string{"cache", "result"})

	RefreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dashboard",
		Name:      "refresh_runs_total",
		Help:      "Background market refresh runs by outcome.",
	}, []string{"outcome"})

	HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dashboard",
		Name:      "http_request_duration_seconds",
		Help:      "Latency of API requests by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

// ObserveUpstream records one outbound request.
func ObserveUpstream(source string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(source, outcome).Inc()
	UpstreamLatency.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

// CacheResult records a cache hit or miss.
func CacheResult(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}
