// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/Sternrassler/github-user-summary/pkg/logging"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds the application configuration.
type Config struct {
	GitHub GitHubConfig
	Cache  CacheConfig
	Redis  RedisConfig
	HTTP   HTTPConfig
	Log    LogConfig
}

// GitHubConfig configures the upstream client.
type GitHubConfig struct {
	APIURL    string        `env:"GITHUB_API_URL" env-default:"https://api.github.com"`
	Token     string        `env:"GITHUB_TOKEN"`
	UserAgent string        `env:"GITHUB_USER_AGENT" env-default:"github-user-summary/0.1.0"`
	Timeout   time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"30s"`
	// MaxPages caps the repository walk; 0 means unlimited.
	MaxPages int `env:"MAX_PAGES" env-default:"0"`
}

// CacheConfig configures the fallback cache.
type CacheConfig struct {
	Backend          string        `env:"CACHE_BACKEND" env-default:"memory"`
	MaxSize          int           `env:"CACHE_MAX_SIZE" env-default:"1000"`
	ExpireAfterWrite time.Duration `env:"CACHE_EXPIRE_AFTER_WRITE" env-default:"60m"`
}

// RedisConfig is used when CACHE_BACKEND=redis.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	// URL overrides Addr, Password and DB when set, e.g. redis://:secret@host:6379/2.
	URL string `env:"REDIS_URL"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Host string `env:"HTTP_HOST" env-default:"0.0.0.0"`
	// Port 0 picks a free port.
	Port int    `env:"HTTP_PORT" env-default:"8080"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Pretty bool   `env:"LOG_PRETTY" env-default:"false"`
}

// Load reads an optional .env file (or the given files) and then the
// environment. Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.HTTP.Host, strconv.Itoa(c.HTTP.Port))
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.GitHub.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: "GITHUB_API_URL", Message: "must be an absolute http(s) URL"}
	}
	if c.GitHub.UserAgent == "" {
		return &ConfigError{Field: "GITHUB_USER_AGENT", Message: "must not be empty"}
	}
	if c.GitHub.Timeout <= 0 {
		return &ConfigError{Field: "UPSTREAM_TIMEOUT", Message: "must be positive"}
	}
	if c.GitHub.MaxPages < 0 {
		return &ConfigError{Field: "MAX_PAGES", Message: "must be >= 0"}
	}
	if c.Cache.Backend != BackendMemory && c.Cache.Backend != BackendRedis {
		return &ConfigError{Field: "CACHE_BACKEND", Message: "must be 'memory' or 'redis'"}
	}
	if c.Cache.MaxSize <= 0 {
		return &ConfigError{Field: "CACHE_MAX_SIZE", Message: "must be positive"}
	}
	if c.Cache.ExpireAfterWrite <= 0 {
		return &ConfigError{Field: "CACHE_EXPIRE_AFTER_WRITE", Message: "must be positive"}
	}
	if c.Cache.Backend == BackendRedis && c.Redis.Addr == "" && c.Redis.URL == "" {
		return &ConfigError{Field: "REDIS_ADDR", Message: "REDIS_ADDR or REDIS_URL is required when CACHE_BACKEND is 'redis'"}
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return &ConfigError{Field: "HTTP_PORT", Message: "must be between 0 and 65535"}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return &ConfigError{Field: "LOG_LEVEL", Message: err.Error()}
	}
	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
