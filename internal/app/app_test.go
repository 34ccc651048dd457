package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sternrassler/github-user-summary/internal/config"
	"github.com/Sternrassler/github-user-summary/internal/testutil"
	"github.com/Sternrassler/github-user-summary/pkg/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		GitHub: config.GitHubConfig{
			APIURL:    apiURL,
			UserAgent: "summary-test/1.0",
			Timeout:   5 * time.Second,
		},
		Cache: config.CacheConfig{
			Backend:          config.BackendMemory,
			MaxSize:          100,
			ExpireAfterWrite: time.Hour,
		},
		HTTP: config.HTTPConfig{Host: "127.0.0.1", Port: 8080},
		Log:  config.LogConfig{Level: "info"},
	}
}

func get(t *testing.T, a *App, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s: %v (body %s)", path, err, w.Body.String())
	}
	return w, body
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig("not a url")

	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("New should reject an invalid configuration")
	}
}

func TestNew_MemoryBackend(t *testing.T) {
	a, err := New(context.Background(), testConfig("https://api.github.com"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if _, ok := a.Cache.(*cache.Memory); !ok {
		t.Errorf("Cache = %T, want *cache.Memory", a.Cache)
	}
}

func TestNewCore_NoRouter(t *testing.T) {
	a, err := NewCore(context.Background(), testConfig("https://api.github.com"))
	if err != nil {
		t.Fatalf("NewCore failed: %v", err)
	}
	defer a.Close()

	if a.Router != nil {
		t.Error("NewCore should not build the HTTP router")
	}
	if a.Service == nil || a.Cache == nil || a.GitHub == nil {
		t.Errorf("NewCore left components unset: %+v", a)
	}
}

func TestNew_RedisUnavailable(t *testing.T) {
	cfg := testConfig("https://api.github.com")
	cfg.Cache.Backend = config.BackendRedis
	cfg.Redis.Addr = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := New(ctx, cfg); err == nil {
		t.Error("New should fail when Redis is unreachable")
	}
}

// TestFullRequestFlow covers fresh fetch, cache write, fallback and error mapping end to end.
func TestFullRequestFlow(t *testing.T) {
	mock := testutil.NewMockGitHub()
	defer mock.Close()

	mock.SetUser("octocat", testutil.NewJSONResponse(testutil.UserJSON("octocat", "The Octocat")))
	mock.SetRepositoryPages("octocat",
		"["+testutil.RepoJSON("octocat", "hello-world")+","+testutil.RepoJSON("octocat", "linguist")+"]",
		"["+testutil.RepoJSON("octocat", "spoon-knife")+"]",
	)

	a, err := New(context.Background(), testConfig(mock.URL()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// 1. Fresh fetch walks both pages and populates the cache
	w, body := get(t, a, "/userSummary/v1/OctoCat")
	if w.Code != http.StatusOK {
		t.Fatalf("fresh status = %d, want 200", w.Code)
	}
	if body["userName"] != "octocat" {
		t.Errorf("userName = %v, want octocat", body["userName"])
	}
	repos, _ := body["repos"].([]any)
	if len(repos) != 3 {
		t.Fatalf("len(repos) = %d, want 3", len(repos))
	}
	if got := repos[2].(map[string]any)["name"]; got != "spoon-knife" {
		t.Errorf("repos[2].name = %v, want spoon-knife", got)
	}
	if n := len(mock.Requests("/users/octocat/repos")); n != 2 {
		t.Errorf("repository requests = %d, want 2", n)
	}
	fresh := w.Body.String()

	// 2. Upstream failure falls back to the cached summary
	mock.SetUser("octocat", testutil.NewServerErrorResponse())
	w, _ = get(t, a, "/userSummary/v1/octocat")
	if w.Code != http.StatusOK {
		t.Fatalf("fallback status = %d, want 200", w.Code)
	}
	if w.Body.String() != fresh {
		t.Errorf("fallback body = %s, want %s", w.Body.String(), fresh)
	}

	// 3. Unknown users are reported as not found
	w, body = get(t, a, "/userSummary/v1/ghost")
	if w.Code != http.StatusNotFound {
		t.Fatalf("ghost status = %d, want 404", w.Code)
	}
	if body["userName"] != "ghost" {
		t.Errorf("userName = %v, want ghost", body["userName"])
	}

	// 4. Failure without a cached summary surfaces as an upstream error
	mock.SetUser("flaky", testutil.NewServerErrorResponse())
	w, body = get(t, a, "/userSummary/v1/flaky")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("flaky status = %d, want 500", w.Code)
	}
	if body["title"] != "Error accessing GitHub API" {
		t.Errorf("title = %v", body["title"])
	}
}

func TestRun_Shutdown(t *testing.T) {
	cfg := testConfig("https://api.github.com")
	cfg.HTTP.Port = 0

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil after shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
