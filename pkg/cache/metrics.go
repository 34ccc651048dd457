package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend labels.
const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

var (
	// CacheHits tracks fallback lookups that found an entry, by backend
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghsummary_cache_hits_total",
			Help: "Total number of summary cache hits",
		},
		[]string{"backend"},
	)

	// CacheMisses tracks fallback lookups that found nothing, by backend
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghsummary_cache_misses_total",
			Help: "Total number of summary cache misses",
		},
		[]string{"backend"},
	)

	// CacheWrites tracks stored summaries, by backend
	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghsummary_cache_writes_total",
			Help: "Total number of summaries written to the cache",
		},
		[]string{"backend"},
	)

	// CacheErrors tracks backend operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghsummary_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"backend", "operation"}, // "lookup", "store"
	)
)
