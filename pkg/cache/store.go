package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Sternrassler/github-user-summary/pkg/summary"
)

var (
	// ErrCacheMiss indicates the requested key was not found or has expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates a stored entry could not be decoded.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Store is a bounded, time-expiring login -> summary store.
type Store interface {
	// Lookup returns the summary stored under key or ErrCacheMiss.
	// It never populates the store.
	Lookup(ctx context.Context, key string) (*summary.UserSummary, error)

	// Store upserts the summary under key and restarts its expiration clock.
	Store(ctx context.Context, key string, s *summary.UserSummary) error
}

// Config holds the size and expiration policy shared by all backends.
type Config struct {
	// MaxSize is the maximum number of entries kept.
	MaxSize int

	// ExpireAfterWrite is the time-to-live of an entry from its last write.
	ExpireAfterWrite time.Duration
}

// DefaultConfig returns 1000 entries with a 60 minute time-to-live.
func DefaultConfig() Config {
	return Config{
		MaxSize:          1000,
		ExpireAfterWrite: 60 * time.Minute,
	}
}
