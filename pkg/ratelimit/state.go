// Package ratelimit observes GitHub's rate limit headers.
// It monitors X-RateLimit-Remaining and X-RateLimit-Reset for visibility only;
// requests are never gated or delayed based on this state.
package ratelimit

import (
	"time"
)

// Upstream header names.
const (
	HeaderLimit     = "X-RateLimit-Limit"
	HeaderRemaining = "X-RateLimit-Remaining"
	HeaderReset     = "X-RateLimit-Reset"
)

// RemainingThresholdLow triggers a warning log when fewer requests remain.
const RemainingThresholdLow = 10

// State represents the last observed upstream rate limit window.
type State struct {
	// Limit is the request quota of the current window (X-RateLimit-Limit).
	Limit int `json:"limit"`

	// Remaining is the number of requests left (X-RateLimit-Remaining).
	Remaining int `json:"remaining"`

	// ResetAt is when the window resets (X-RateLimit-Reset, epoch seconds).
	ResetAt time.Time `json:"reset_at"`

	// LastUpdate is when this state was observed.
	LastUpdate time.Time `json:"last_update"`
}

// IsLow returns true if the remaining quota is below RemainingThresholdLow.
func (s *State) IsLow() bool {
	return s.Remaining < RemainingThresholdLow
}

// TimeUntilReset returns the duration until the window resets.
// Returns 0 if the reset time has already passed.
func (s *State) TimeUntilReset() time.Duration {
	duration := time.Until(s.ResetAt)
	if duration < 0 {
		return 0
	}
	return duration
}
