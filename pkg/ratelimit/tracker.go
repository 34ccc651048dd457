package ratelimit

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var upstreamRemaining = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "ghsummary_upstream_ratelimit_remaining",
	Help: "Requests remaining in the current upstream rate limit window",
})

// Tracker records the most recent upstream rate limit state.
// It is safe for concurrent use.
type Tracker struct {
	mu     sync.RWMutex
	state  *State
	logger zerolog.Logger
}

// NewTracker creates a new rate limit tracker.
func NewTracker(logger zerolog.Logger) *Tracker {
	return &Tracker{logger: logger}
}

// State returns a copy of the last observed state, or nil if none was seen yet.
func (t *Tracker) State() *State {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.state == nil {
		return nil
	}
	s := *t.state
	return &s
}

// UpdateFromHeaders parses the rate limit headers of an upstream response.
// Responses without X-RateLimit-Remaining are ignored.
func (t *Tracker) UpdateFromHeaders(headers http.Header) error {
	remainStr := headers.Get(HeaderRemaining)
	if remainStr == "" {
		return nil
	}

	remain, err := strconv.Atoi(remainStr)
	if err != nil {
		return fmt.Errorf("parse %s header: %w", HeaderRemaining, err)
	}

	state := &State{
		Remaining:  remain,
		LastUpdate: time.Now(),
	}

	if limitStr := headers.Get(HeaderLimit); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return fmt.Errorf("parse %s header: %w", HeaderLimit, err)
		}
		state.Limit = limit
	}

	if resetStr := headers.Get(HeaderReset); resetStr != "" {
		resetEpoch, err := strconv.ParseInt(resetStr, 10, 64)
		if err != nil {
			return fmt.Errorf("parse %s header: %w", HeaderReset, err)
		}
		state.ResetAt = time.Unix(resetEpoch, 0)
	}

	t.mu.Lock()
	t.state = state
	t.mu.Unlock()

	upstreamRemaining.Set(float64(remain))

	if state.IsLow() {
		t.logger.Warn().
			Int("remaining", remain).
			Time("reset_at", state.ResetAt).
			Msg("Upstream rate limit nearly exhausted")
	} else {
		t.logger.Debug().
			Int("remaining", remain).
			Msg("Upstream rate limit state updated")
	}

	return nil
}
