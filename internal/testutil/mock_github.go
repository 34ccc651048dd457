// Package testutil provides testing utilities for the GitHub user summary service.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock upstream endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockGitHub is a configurable mock GitHub API server for testing.
type MockGitHub struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	requestCount int
	requests     map[string][]string // path -> raw queries, in arrival order
	lastHeader   http.Header
}

// NewMockGitHub creates a new mock GitHub server. Unknown paths answer 404.
func NewMockGitHub() *MockGitHub {
	mock := &MockGitHub{
		handlers: make(map[string]http.HandlerFunc),
		requests: make(map[string][]string),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.requests[r.URL.Path] = append(mock.requests[r.URL.Path], r.URL.RawQuery)
		mock.lastHeader = r.Header.Clone()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockGitHub) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockGitHub) Close() {
	m.server.Close()
}

// Reset clears all tracking counters. Handlers are kept.
func (m *MockGitHub) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.requests = make(map[string][]string)
	m.lastHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockGitHub) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockGitHub) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, resp)
	})
}

// SetUser configures GET /users/{login}.
func (m *MockGitHub) SetUser(login string, resp MockResponse) {
	m.SetResponse("/users/"+login, resp)
}

// SetRepositoryPages configures GET /users/{login}/repos. Each body is served
// for its 1-based page; every page except the last carries a rel="next" link.
// Pages beyond the configured ones answer an empty array.
func (m *MockGitHub) SetRepositoryPages(login string, bodies ...string) {
	path := "/users/" + login + "/repos"
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		resp := NewJSONResponse("[]")
		if page <= len(bodies) {
			resp = NewJSONResponse(bodies[page-1])
		}
		if link := linkHeader(m.URL()+path, page, len(bodies)); link != "" {
			resp.Headers["Link"] = link
		}
		writeResponse(w, resp)
	})
}

// RequestCount returns the number of requests made to the server.
func (m *MockGitHub) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// Requests returns the raw queries received for path, in arrival order.
func (m *MockGitHub) Requests(path string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.requests[path]...)
}

// LastRequestHeader returns the headers of the most recent request.
func (m *MockGitHub) LastRequestHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHeader
}

// NewJSONResponse creates a 200 OK JSON response with rate limit headers.
func NewJSONResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type":          "application/json; charset=utf-8",
			"X-RateLimit-Limit":     "60",
			"X-RateLimit-Remaining": "59",
			"X-RateLimit-Reset":     strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10),
		},
	}
}

// NewNotFoundResponse creates a GitHub-style 404 response.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"message":"Not Found","documentation_url":"https://docs.github.com/rest"}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"message":"Server Error"}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// NewRateLimitResponse creates a 403 rate limit exceeded response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusForbidden,
		Body:       `{"message":"API rate limit exceeded"}`,
		Headers: map[string]string{
			"Content-Type":          "application/json; charset=utf-8",
			"X-RateLimit-Limit":     "60",
			"X-RateLimit-Remaining": "0",
			"X-RateLimit-Reset":     strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10),
		},
	}
}

// UserJSON renders a minimal GitHub user payload.
func UserJSON(login, name string) string {
	return fmt.Sprintf(`{
		"login": %q,
		"id": 583231,
		"name": %q,
		"email": null,
		"location": "San Francisco",
		"avatar_url": "https://avatars.githubusercontent.com/u/583231?v=4",
		"url": "https://api.github.com/users/%s",
		"created_at": "2011-01-25T18:44:36Z",
		"public_repos": 8
	}`, login, name, login)
}

// RepoJSON renders a minimal GitHub repository payload element.
func RepoJSON(owner, name string) string {
	return fmt.Sprintf(`{"name": %q, "full_name": "%s/%s", "url": "https://api.github.com/repos/%s/%s", "private": false}`,
		name, owner, name, owner, name)
}

func writeResponse(w http.ResponseWriter, resp MockResponse) {
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}

// linkHeader builds a GitHub-style Link header for page out of total.
func linkHeader(base string, page, total int) string {
	if total <= 1 {
		return ""
	}
	link := func(p int, rel string) string {
		return fmt.Sprintf(`<%s?sort=name&page=%d>; rel="%s"`, base, p, rel)
	}

	var parts []string
	if page > 1 {
		parts = append(parts, link(page-1, "prev"))
	}
	if page < total {
		parts = append(parts, link(page+1, "next"))
	}
	parts = append(parts, link(1, "first"), link(total, "last"))

	header := parts[0]
	for _, p := range parts[1:] {
		header += ", " + p
	}
	return header
}
