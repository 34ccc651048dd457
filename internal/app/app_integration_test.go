//go:build integration

package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Sternrassler/github-user-summary/internal/config"
	"github.com/Sternrassler/github-user-summary/internal/testutil"
	"github.com/Sternrassler/github-user-summary/pkg/cache"
)

// setupRedis starts a Redis container and returns its address.
func setupRedis(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	return host + ":" + port.Port()
}

// TestRedisFallbackAcrossInstances checks that a summary cached by one
// instance is served by another when GitHub fails.
func TestRedisFallbackAcrossInstances(t *testing.T) {
	addr := setupRedis(t)

	mock := testutil.NewMockGitHub()
	defer mock.Close()
	mock.SetUser("octocat", testutil.NewJSONResponse(testutil.UserJSON("octocat", "The Octocat")))
	mock.SetRepositoryPages("octocat", "["+testutil.RepoJSON("octocat", "hello-world")+"]")

	newInstance := func() *App {
		cfg := testConfig(mock.URL())
		cfg.Cache.Backend = config.BackendRedis
		cfg.Redis.Addr = addr

		a, err := New(context.Background(), cfg)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		t.Cleanup(func() { a.Close() })
		if _, ok := a.Cache.(*cache.Redis); !ok {
			t.Fatalf("Cache = %T, want *cache.Redis", a.Cache)
		}
		return a
	}

	first := newInstance()
	w, _ := get(t, first, "/userSummary/v1/octocat")
	if w.Code != http.StatusOK {
		t.Fatalf("fresh status = %d, want 200", w.Code)
	}
	fresh := w.Body.String()

	mock.SetUser("octocat", testutil.NewServerErrorResponse())

	second := newInstance()
	w, body := get(t, second, "/userSummary/v1/OCTOCAT")
	if w.Code != http.StatusOK {
		t.Fatalf("fallback status = %d, want 200", w.Code)
	}
	if body["displayName"] != "The Octocat" {
		t.Errorf("displayName = %v, want The Octocat", body["displayName"])
	}
	if w.Body.String() != fresh {
		t.Errorf("fallback body = %s, want %s", w.Body.String(), fresh)
	}
}
