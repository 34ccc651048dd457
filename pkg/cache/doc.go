// Package cache provides the fallback store for user summaries.
//
// The store is consulted only after a live upstream fetch fails (cache-aside
// fallback); it is never a primary read path and never populates itself on a
// read. Writes are explicit upserts performed after a successful aggregation.
//
// Two backends implement [Store]:
//
//   - [Memory]: process-wide LRU with expire-after-write (default)
//   - [Redis]: shared store for multi-instance deployments
//
// Both enforce a maximum entry count and a fixed time-to-live measured from the
// last write.
//
// # Basic Usage
//
//	store := cache.NewMemory(cache.DefaultConfig())
//
//	if err := store.Store(ctx, "octocat", summary); err != nil {
//		// log and continue, the fresh summary is still returned
//	}
//
//	cached, err := store.Lookup(ctx, "OctoCat")
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// nothing to fall back to
//	}
//
// # Metrics
//
//   - ghsummary_cache_hits_total{backend} - Fallback lookups served
//   - ghsummary_cache_misses_total{backend} - Fallback lookups with no entry
//   - ghsummary_cache_writes_total{backend} - Summaries stored
//   - ghsummary_cache_errors_total{backend,operation} - Backend failures
package cache
