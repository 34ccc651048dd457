// Package metrics provides the Prometheus registry and scrape handler for the
// summary service. All metrics are defined in their respective packages
// (github, cache, service, pagination, ratelimit) to keep those packages
// independent of each other.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the Prometheus registerer used by the service.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the source scraped by Handler.
var Gatherer = prometheus.DefaultGatherer

// Handler returns the HTTP handler exposing all registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Upstream Metrics (pkg/github):
//   - ghsummary_upstream_requests_total{endpoint, status} (Counter): Requests by endpoint (user, repos) and HTTP status
//   - ghsummary_upstream_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - ghsummary_upstream_errors_total{class} (Counter): Failures by class (not_found, client, server, network)
//
// Rate Limit Metrics (pkg/ratelimit):
//   - ghsummary_upstream_ratelimit_remaining (Gauge): Last observed X-RateLimit-Remaining
//
// Pagination Metrics (pkg/pagination):
//   - ghsummary_pagination_pages_fetched (Histogram): Pages fetched per completed walk
//
// Cache Metrics (pkg/cache):
//   - ghsummary_cache_hits_total{backend} (Counter): Fallback lookups served from the cache
//   - ghsummary_cache_misses_total{backend} (Counter): Fallback lookups with no entry
//   - ghsummary_cache_writes_total{backend} (Counter): Summaries written after a fresh fetch
//   - ghsummary_cache_errors_total{backend, operation} (Counter): Backend errors by operation
//
// Summary Metrics (pkg/service):
//   - ghsummary_summary_requests_total{outcome} (Counter): Requests by outcome (fresh, fallback, not_found, upstream_error)
//
// Example Prometheus Queries:
//
//   # Share of requests answered from the fallback cache
//   sum(rate(ghsummary_summary_requests_total{outcome="fallback"}[5m])) /
//   sum(rate(ghsummary_summary_requests_total[5m]))
//
//   # Upstream budget running out
//   ghsummary_upstream_ratelimit_remaining < 10
//
//   # P95 upstream latency
//   histogram_quantile(0.95, rate(ghsummary_upstream_request_duration_seconds_bucket[5m]))
//
//   # Users with many repository pages
//   histogram_quantile(0.99, rate(ghsummary_pagination_pages_fetched_bucket[1h]))
