package cache

import (
	"time"

	"github.com/Sternrassler/github-user-summary/pkg/summary"
)

// Entry is the serialized form of a cached summary in shared backends.
type Entry struct {
	// Summary is the cached value.
	Summary *summary.UserSummary `json:"summary"`

	// CachedAt is when the summary was written.
	CachedAt time.Time `json:"cached_at"`

	// ExpiresAt is CachedAt plus the configured time-to-live.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.ExpiresAt)
	if ttl < 0 {
		return 0
	}
	return ttl
}
