// Package logging provides structured logging configuration using zerolog.
// Setup is called once at startup; components derive their logger with NewLogger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	// Set global log level
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	// Configure output
	var output io.Writer = cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: cfg.Output}
	}

	// Create logger with timestamp
	logger := zerolog.New(output).With().Timestamp().Logger()

	// Set as global logger
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// ParseLevel validates a level name from configuration.
func ParseLevel(s string) (LogLevel, error) {
	switch LogLevel(strings.ToLower(s)) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo, "":
		return LevelInfo, nil
	case LevelWarn, "warning":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Upstream requests (endpoint, page, status, duration)
//   - Pagination progress
//   - Not-found answers
//
// Info: Normal operation events
//   - Server startup/shutdown
//   - Cache backend selection
//   - Access log lines for successful HTTP requests
//
// Warn: Warning conditions that don't prevent operation
//   - Non-2xx upstream responses
//   - Every cache fallback attempt and its outcome
//   - Cache write or lookup errors
//   - Upstream rate limit running low
//
// Error: Error conditions requiring attention
//   - Requests failing with no cached summary
//   - Recovered panics
//   - Configuration errors
//
// Context Fields:
//   - component: emitting component (github-client, summary-service, api)
//   - user: normalized login
//   - endpoint: upstream endpoint label (user, repos)
//   - page: repository page number
//   - status_code: HTTP status code
//   - error_class: not_found, client, server, network
//   - request_id: X-Request-ID of the inbound request
//   - duration: request duration
