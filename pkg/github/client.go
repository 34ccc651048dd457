// Package github provides the upstream GitHub REST client used to build user
// summaries: one call for the user profile and link-paginated calls for the
// user's repositories, with failures classified into *AccessError.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/github-user-summary/pkg/logging"
	"github.com/Sternrassler/github-user-summary/pkg/pagination"
	"github.com/Sternrassler/github-user-summary/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// maxErrorBody bounds how much of an error response is kept in AccessError.Message.
const maxErrorBody = 512

// Prometheus metrics for upstream operations.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ghsummary_upstream_requests_total",
		Help: "Total upstream requests by endpoint and status",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ghsummary_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ghsummary_upstream_errors_total",
		Help: "Total upstream errors by class",
	}, []string{"class"})
)

// Endpoint labels used for metrics and logs.
const (
	endpointUser  = "user"
	endpointRepos = "repos"
)

// Client is the GitHub REST client.
type Client struct {
	httpClient  *http.Client
	baseURL     *url.URL
	rateLimiter *ratelimit.Tracker
	config      Config
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the GitHub API (default https://api.github.com).
	BaseURL string

	// UserAgent header (GitHub rejects requests without one).
	UserAgent string

	// Token is an optional bearer token for upstream calls.
	Token string

	// Timeout bounds each upstream HTTP call.
	Timeout time.Duration

	// Pagination controls the repository page walk.
	Pagination pagination.Config
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		UserAgent:  "github-user-summary/0.1.0",
		Timeout:    30 * time.Second,
		Pagination: pagination.DefaultConfig(),
	}
}

// New creates a new GitHub client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https (got %q)", cfg.BaseURL)
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.Pagination.MaxPages < 0 {
		return nil, fmt.Errorf("max_pages must be >= 0 (got %d)", cfg.Pagination.MaxPages)
	}

	logger := logging.NewLogger("github-client")

	httpClient := &http.Client{}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		rateLimiter: ratelimit.NewTracker(logger),
		config:      cfg,
		logger:      logger,
	}, nil
}

// FetchProfile retrieves GET /users/{login}.
func (c *Client) FetchProfile(ctx context.Context, login string) (*UserProfile, error) {
	u := c.baseURL.JoinPath("users", login)

	var profile UserProfile
	if _, err := c.get(ctx, endpointUser, login, u, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FetchRepositoryPage retrieves one page of GET /users/{login}/repos sorted by name.
// hasNextPage reflects a "next" relation in the response's Link header.
func (c *Client) FetchRepositoryPage(ctx context.Context, login string, page int) ([]RepositoryRef, bool, error) {
	u := c.baseURL.JoinPath("users", login, "repos")
	q := u.Query()
	q.Set("sort", "name")
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	var repos []RepositoryRef
	headers, err := c.get(ctx, endpointRepos, login, u, &repos)
	if err != nil {
		return nil, false, err
	}
	if repos == nil {
		repos = []RepositoryRef{}
	}
	return repos, hasNextLink(headers.Get("Link")), nil
}

// FetchAllRepositories walks every repository page for login, in upstream order.
func (c *Client) FetchAllRepositories(ctx context.Context, login string) ([]RepositoryRef, error) {
	return pagination.Walk(ctx, c.config.Pagination, func(ctx context.Context, page int) ([]RepositoryRef, bool, error) {
		return c.FetchRepositoryPage(ctx, login, page)
	})
}

// RateLimit returns the last observed upstream rate limit state (nil if unknown).
func (c *Client) RateLimit() *ratelimit.State {
	return c.rateLimiter.State()
}

// get performs a GET and decodes a 2xx JSON body into v.
// Every failure is returned as *AccessError.
func (c *Client) get(ctx context.Context, endpoint, login string, u *url.URL, v any) (http.Header, error) {
	startTime := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, c.networkError(endpoint, login, 0, "create request", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("url", u.String()).
		Msg("Executing upstream request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Str("user", login).Msg("HTTP request failed")
		upstreamRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, c.networkError(endpoint, login, 0, "request failed", err)
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if err := c.rateLimiter.UpdateFromHeaders(resp.Header); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to update rate limit from headers")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errClass := classifyStatus(resp.StatusCode)
		upstreamErrorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Str("user", login).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Upstream request error")

		return nil, &AccessError{
			UserName:   login,
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    errorMessage(resp),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return nil, c.networkError(endpoint, login, resp.StatusCode, "decode response", err)
	}

	return resp.Header, nil
}

func (c *Client) networkError(endpoint, login string, status int, msg string, err error) *AccessError {
	upstreamErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
	return &AccessError{
		UserName:   login,
		StatusCode: status,
		ErrorClass: ErrorClassNetwork,
		Message:    endpoint + ": " + msg,
		Err:        err,
	}
}

// errorMessage renders "404 Not Found: {body}" with the body truncated.
func errorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	text := strings.TrimSpace(string(body))
	if text == "" {
		return resp.Status
	}
	return resp.Status + ": " + text
}
