package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// ErrPageLimitExceeded is returned when upstream keeps advertising a next page
// beyond the configured ceiling.
var ErrPageLimitExceeded = errors.New("page limit exceeded")

var pagesFetched = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "ghsummary_pagination_pages_fetched",
	Help:    "Number of pages fetched per completed pagination walk",
	Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
})

// Config holds walker configuration.
type Config struct {
	// MaxPages caps the number of pages requested. 0 means unlimited.
	MaxPages int
}

// DefaultConfig returns the default configuration: no page ceiling.
func DefaultConfig() Config {
	return Config{MaxPages: 0}
}

// PageFunc fetches a single 1-based page and reports whether another page follows.
type PageFunc[T any] func(ctx context.Context, page int) (items []T, hasNext bool, err error)

// Walk fetches pages sequentially until fetch reports no next page.
// Items are returned in page order. Any page error aborts the walk.
func Walk[T any](ctx context.Context, cfg Config, fetch PageFunc[T]) ([]T, error) {
	start := time.Now()
	var all []T

	for page := 1; ; page++ {
		if cfg.MaxPages > 0 && page > cfg.MaxPages {
			return nil, fmt.Errorf("%w: more than %d pages", ErrPageLimitExceeded, cfg.MaxPages)
		}

		items, hasNext, err := fetch(ctx, page)
		if err != nil {
			log.Debug().
				Err(err).
				Int("page", page).
				Msg("Page fetch failed, aborting walk")
			return nil, err
		}
		all = append(all, items...)

		if !hasNext {
			pagesFetched.Observe(float64(page))
			log.Debug().
				Int("pages", page).
				Int("items", len(all)).
				Dur("duration", time.Since(start)).
				Msg("Pagination walk complete")
			if all == nil {
				all = []T{}
			}
			return all, nil
		}
	}
}
