package cache

import (
	"context"

	"github.com/Sternrassler/github-user-summary/pkg/summary"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is an in-process LRU store with expire-after-write semantics.
// It is safe for concurrent use. Entries are copied on the way in and out,
// so callers never share memory with the cache.
type Memory struct {
	lru *expirable.LRU[string, *summary.UserSummary]
}

// NewMemory creates an in-memory store. MaxSize <= 0 falls back to the default.
func NewMemory(cfg Config) *Memory {
	def := DefaultConfig()
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = def.MaxSize
	}
	if cfg.ExpireAfterWrite <= 0 {
		cfg.ExpireAfterWrite = def.ExpireAfterWrite
	}
	return &Memory{
		lru: expirable.NewLRU[string, *summary.UserSummary](cfg.MaxSize, nil, cfg.ExpireAfterWrite),
	}
}

// Lookup implements Store.
func (m *Memory) Lookup(_ context.Context, key string) (*summary.UserSummary, error) {
	s, ok := m.lru.Get(Key(key))
	if !ok {
		CacheMisses.WithLabelValues(backendMemory).Inc()
		return nil, ErrCacheMiss
	}
	CacheHits.WithLabelValues(backendMemory).Inc()
	return s.Clone(), nil
}

// Store implements Store.
func (m *Memory) Store(_ context.Context, key string, s *summary.UserSummary) error {
	if s == nil {
		return ErrInvalidEntry
	}
	m.lru.Add(Key(key), s.Clone())
	CacheWrites.WithLabelValues(backendMemory).Inc()
	return nil
}

// Len returns the number of entries currently held, expired ones awaiting cleanup included.
func (m *Memory) Len() int {
	return m.lru.Len()
}
