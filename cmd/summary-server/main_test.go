package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sternrassler/github-user-summary/internal/config"
)

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	err := run(context.Background())

	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("run() = %v, want *config.ConfigError", err)
	}
	if cfgErr.Field != "CACHE_BACKEND" {
		t.Errorf("Field = %q, want CACHE_BACKEND", cfgErr.Field)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	t.Setenv("HTTP_HOST", "127.0.0.1")
	t.Setenv("HTTP_PORT", "0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
