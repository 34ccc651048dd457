package cache

import "github.com/Sternrassler/github-user-summary/pkg/summary"

// redisKeyPrefix namespaces summary entries in a shared Redis.
const redisKeyPrefix = "ghsummary:summary:"

// redisIndexKey is the sorted set of entry keys scored by write time.
const redisIndexKey = "ghsummary:summary-index"

// Key returns the normalized cache key for a login.
// Keys are always lowercase regardless of the caller's casing.
func Key(login string) string {
	return summary.NormalizeLogin(login)
}

// redisKey generates the Redis key for a login.
//
// Example:
//
//	ghsummary:summary:octocat
func redisKey(login string) string {
	return redisKeyPrefix + Key(login)
}
