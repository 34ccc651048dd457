package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Sternrassler/github-user-summary/pkg/summary"
	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by Redis.
//
// Each entry is a JSON document written with SET ... EX ttl. A sorted set
// indexes keys by write time so the store can trim itself to MaxSize, oldest
// writes first.
type Redis struct {
	redis  *redis.Client
	config Config
}

// NewRedis creates a Redis-backed store.
func NewRedis(redisClient *redis.Client, cfg Config) *Redis {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	def := DefaultConfig()
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = def.MaxSize
	}
	if cfg.ExpireAfterWrite <= 0 {
		cfg.ExpireAfterWrite = def.ExpireAfterWrite
	}
	return &Redis{
		redis:  redisClient,
		config: cfg,
	}
}

// Lookup implements Store.
func (r *Redis) Lookup(ctx context.Context, key string) (*summary.UserSummary, error) {
	data, err := r.redis.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			CacheMisses.WithLabelValues(backendRedis).Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues(backendRedis, "lookup").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Summary == nil {
		CacheErrors.WithLabelValues(backendRedis, "lookup").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	// Redis expiry is authoritative; this guards against clock skew between writers.
	if entry.IsExpired() {
		CacheMisses.WithLabelValues(backendRedis).Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues(backendRedis).Inc()
	return entry.Summary, nil
}

// Store implements Store.
func (r *Redis) Store(ctx context.Context, key string, s *summary.UserSummary) error {
	if s == nil {
		return ErrInvalidEntry
	}

	now := time.Now()
	entry := Entry{
		Summary:   s,
		CachedAt:  now,
		ExpiresAt: now.Add(r.config.ExpireAfterWrite),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues(backendRedis, "store").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	k := redisKey(key)
	expiredBefore := now.Add(-r.config.ExpireAfterWrite).UnixNano()

	var card *redis.IntCmd
	_, err = r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, k, data, r.config.ExpireAfterWrite)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(now.UnixNano()), Member: k})
		pipe.ZRemRangeByScore(ctx, redisIndexKey, "-inf", "("+strconv.FormatInt(expiredBefore, 10))
		card = pipe.ZCard(ctx, redisIndexKey)
		return nil
	})
	if err != nil {
		CacheErrors.WithLabelValues(backendRedis, "store").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	CacheWrites.WithLabelValues(backendRedis).Inc()

	if excess := card.Val() - int64(r.config.MaxSize); excess > 0 {
		if err := r.evictOldest(ctx, excess); err != nil {
			CacheErrors.WithLabelValues(backendRedis, "evict").Inc()
			return err
		}
	}

	return nil
}

// evictOldest removes the n least recently written entries.
func (r *Redis) evictOldest(ctx context.Context, n int64) error {
	popped, err := r.redis.ZPopMin(ctx, redisIndexKey, n).Result()
	if err != nil {
		return fmt.Errorf("redis zpopmin: %w", err)
	}
	if len(popped) == 0 {
		return nil
	}

	keys := make([]string, 0, len(popped))
	for _, z := range popped {
		if member, ok := z.Member.(string); ok {
			keys = append(keys, member)
		}
	}
	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Delete removes an entry.
func (r *Redis) Delete(ctx context.Context, key string) error {
	k := redisKey(key)

	pipe := r.redis.TxPipeline()
	pipe.Del(ctx, k)
	pipe.ZRem(ctx, redisIndexKey, k)
	if _, err := pipe.Exec(ctx); err != nil {
		CacheErrors.WithLabelValues(backendRedis, "delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Len returns the number of indexed entries.
func (r *Redis) Len(ctx context.Context) (int64, error) {
	return r.redis.ZCard(ctx, redisIndexKey).Result()
}
