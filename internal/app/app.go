// Package app wires configuration into a running summary service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/github-user-summary/internal/api"
	"github.com/Sternrassler/github-user-summary/internal/config"
	"github.com/Sternrassler/github-user-summary/pkg/cache"
	"github.com/Sternrassler/github-user-summary/pkg/github"
	"github.com/Sternrassler/github-user-summary/pkg/logging"
	"github.com/Sternrassler/github-user-summary/pkg/pagination"
	"github.com/Sternrassler/github-user-summary/pkg/service"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// App holds the wired components.
type App struct {
	Config  *config.Config
	GitHub  *github.Client
	Cache   cache.Store
	Service *service.Service
	// Router is nil for apps built with NewCore.
	Router *gin.Engine

	redis  *redis.Client
	logger zerolog.Logger
}

// SetupLogging configures the global logger from cfg.
func SetupLogging(cfg *config.Config) zerolog.Logger {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	return logging.Setup(logging.Config{
		Level:  level,
		Pretty: cfg.Log.Pretty,
		Output: os.Stderr,
	})
}

// New builds the GitHub client, the cache backend, the service and the router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a, err := NewCore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Router = api.SetupRoutes(api.NewHandler(a.Service))
	return a, nil
}

// NewCore builds everything New does except the HTTP router, for one-shot callers like the CLI.
func NewCore(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewLogger("app")

	gh, err := NewGitHubClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create github client: %w", err)
	}

	a := &App{
		Config: cfg,
		GitHub: gh,
		logger: logger,
	}

	switch cfg.Cache.Backend {
	case config.BackendRedis:
		rdb, err := NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		a.Cache = cache.NewRedis(rdb, cacheConfig(cfg))
	default:
		a.Cache = cache.NewMemory(cacheConfig(cfg))
	}
	logger.Info().
		Str("backend", cfg.Cache.Backend).
		Int("max_size", cfg.Cache.MaxSize).
		Dur("expire_after_write", cfg.Cache.ExpireAfterWrite).
		Msg("Summary cache ready")

	a.Service = service.New(gh, a.Cache)
	return a, nil
}

// NewGitHubClient creates the upstream client from cfg.
func NewGitHubClient(cfg *config.Config) (*github.Client, error) {
	return github.New(github.Config{
		BaseURL:    cfg.GitHub.APIURL,
		UserAgent:  cfg.GitHub.UserAgent,
		Token:      cfg.GitHub.Token,
		Timeout:    cfg.GitHub.Timeout,
		Pagination: pagination.Config{MaxPages: cfg.GitHub.MaxPages},
	})
}

// NewRedisClient connects to the configured Redis and verifies it answers.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.URL != "" {
		parsed, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, &config.ConfigError{Field: "REDIS_URL", Message: err.Error()}
		}
		opts = parsed
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

func cacheConfig(cfg *config.Config) cache.Config {
	return cache.Config{
		MaxSize:          cfg.Cache.MaxSize,
		ExpireAfterWrite: cfg.Cache.ExpireAfterWrite,
	}
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", srv.Addr).Msg("Starting summary server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info().Msg("Shutting down summary server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Close releases backend connections.
func (a *App) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}
