// Package service orchestrates a user summary request: a live GitHub fetch,
// a cache write on success and a cache-aside fallback on transient failure.
package service

import (
	"context"
	"errors"

	"github.com/Sternrassler/github-user-summary/pkg/cache"
	"github.com/Sternrassler/github-user-summary/pkg/github"
	"github.com/Sternrassler/github-user-summary/pkg/logging"
	"github.com/Sternrassler/github-user-summary/pkg/summary"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Outcome labels for summary requests.
const (
	outcomeFresh         = "fresh"
	outcomeFallback      = "fallback"
	outcomeNotFound      = "not_found"
	outcomeUpstreamError = "upstream_error"
)

var summaryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ghsummary_summary_requests_total",
	Help: "Total user summary requests by outcome",
}, []string{"outcome"})

// Upstream is the subset of the GitHub client the service depends on.
type Upstream interface {
	FetchProfile(ctx context.Context, login string) (*github.UserProfile, error)
	FetchAllRepositories(ctx context.Context, login string) ([]github.RepositoryRef, error)
}

// Service builds user summaries.
type Service struct {
	upstream Upstream
	cache    cache.Store
	logger   zerolog.Logger
}

// New creates a Service. Both collaborators are required.
func New(upstream Upstream, store cache.Store) *Service {
	if upstream == nil {
		panic("upstream cannot be nil")
	}
	if store == nil {
		panic("cache store cannot be nil")
	}
	return &Service{
		upstream: upstream,
		cache:    store,
		logger:   logging.NewLogger("summary-service"),
	}
}

// GetUserSummary returns the summary for rawUsername.
//
// A profile 404 yields *NotFoundError without consulting the cache. Any other
// upstream failure falls back to the cached summary; without one it yields
// *UpstreamError wrapping the original failure.
func (s *Service) GetUserSummary(ctx context.Context, rawUsername string) (*summary.UserSummary, error) {
	login := summary.NormalizeLogin(rawUsername)

	profile, err := s.upstream.FetchProfile(ctx, login)
	if err != nil {
		if github.IsNotFound(err) {
			summaryRequestsTotal.WithLabelValues(outcomeNotFound).Inc()
			s.logger.Debug().Str("user", login).Msg("User not found")
			return nil, &NotFoundError{UserName: login}
		}
		return s.fallback(ctx, login, err)
	}

	repos, err := s.upstream.FetchAllRepositories(ctx, login)
	if err != nil {
		return s.fallback(ctx, login, err)
	}

	result := summary.Build(profile, repos)

	if err := s.cache.Store(ctx, login, result); err != nil {
		s.logger.Warn().Err(err).Str("user", login).Msg("Failed to cache summary")
	}

	summaryRequestsTotal.WithLabelValues(outcomeFresh).Inc()
	return result, nil
}

// fallback serves a cached summary after an upstream failure.
func (s *Service) fallback(ctx context.Context, login string, cause error) (*summary.UserSummary, error) {
	s.logger.Warn().Err(cause).Str("user", login).Msg("Upstream failed, trying cached summary")

	cached, err := s.cache.Lookup(ctx, login)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("user", login).Msg("Cache lookup failed, treating as miss")
		}
		s.logger.Warn().Str("user", login).Msg("No cached summary available")
		summaryRequestsTotal.WithLabelValues(outcomeUpstreamError).Inc()
		return nil, &UpstreamError{UserName: login, Cause: cause}
	}

	s.logger.Warn().Str("user", login).Msg("Serving cached summary")
	summaryRequestsTotal.WithLabelValues(outcomeFallback).Inc()
	return cached, nil
}
