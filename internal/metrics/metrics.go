// Package metrics registers the Prometheus collectors for pipeline runs
// and translates a finished run's diagnostics into counter increments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pathforge/roadmap/internal/types/roadmap"
)

var (
	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roadmap_run_duration_seconds",
			Help:    "Duration of roadmap pipeline runs in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadmap_runs_total",
			Help: "Total pipeline runs, labeled by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	ResourcesAssigned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roadmap_resources_assigned_total",
			Help: "Total resources assigned across all runs.",
		},
	)
	ZeroResourceModules = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roadmap_zero_resource_modules_total",
			Help: "Modules that shipped without any resources.",
		},
	)
	SearchErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roadmap_search_errors_total",
			Help: "Search provider calls that degraded to an empty result.",
		},
	)
	SearchCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roadmap_search_cache_hits_total",
			Help: "Search calls served from cache.",
		},
	)
	SearchCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roadmap_search_cache_misses_total",
			Help: "Search calls that missed the cache.",
		},
	)
)

func init() {
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(RunsTotal)
	prometheus.MustRegister(ResourcesAssigned)
	prometheus.MustRegister(ZeroResourceModules)
	prometheus.MustRegister(SearchErrors)
	prometheus.MustRegister(SearchCacheHits)
	prometheus.MustRegister(SearchCacheMisses)
}

// ObserveRun records one finished run's diagnostics.
func ObserveRun(operation string, diag roadmap.Diagnostics) {
	RunsTotal.WithLabelValues(operation, "ok").Inc()
	ResourcesAssigned.Add(float64(diag.ResourcesAssigned))
	ZeroResourceModules.Add(float64(len(diag.ZeroResourceModules)))
	SearchErrors.Add(float64(diag.SearchErrors))
	SearchCacheHits.Add(float64(diag.CacheHits))
	SearchCacheMisses.Add(float64(diag.CacheMisses))
}
