package ratelimit

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestTracker_UpdateFromHeaders(t *testing.T) {
	tracker := NewTracker(zerolog.Nop())

	reset := time.Now().Add(30 * time.Minute).Unix()
	headers := http.Header{}
	headers.Set(HeaderLimit, "60")
	headers.Set(HeaderRemaining, "42")
	headers.Set(HeaderReset, strconv.FormatInt(reset, 10))

	if err := tracker.UpdateFromHeaders(headers); err != nil {
		t.Fatalf("UpdateFromHeaders failed: %v", err)
	}

	state := tracker.State()
	if state == nil {
		t.Fatal("State() returned nil after update")
	}
	if state.Limit != 60 {
		t.Errorf("Limit = %d, want 60", state.Limit)
	}
	if state.Remaining != 42 {
		t.Errorf("Remaining = %d, want 42", state.Remaining)
	}
	if state.ResetAt.Unix() != reset {
		t.Errorf("ResetAt = %d, want %d", state.ResetAt.Unix(), reset)
	}
}

func TestTracker_UpdateFromHeaders_Missing(t *testing.T) {
	tracker := NewTracker(zerolog.Nop())

	if err := tracker.UpdateFromHeaders(http.Header{}); err != nil {
		t.Fatalf("UpdateFromHeaders failed: %v", err)
	}
	if tracker.State() != nil {
		t.Error("State() should stay nil without rate limit headers")
	}
}

func TestTracker_UpdateFromHeaders_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"bad remaining", map[string]string{HeaderRemaining: "lots"}},
		{"bad limit", map[string]string{HeaderRemaining: "1", HeaderLimit: "x"}},
		{"bad reset", map[string]string{HeaderRemaining: "1", HeaderReset: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker(zerolog.Nop())
			headers := http.Header{}
			for k, v := range tt.headers {
				headers.Set(k, v)
			}
			if err := tracker.UpdateFromHeaders(headers); err == nil {
				t.Error("Expected error for malformed header")
			}
		})
	}
}
