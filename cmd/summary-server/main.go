// Command summary-server serves GitHub user summaries over HTTP.
// All settings come from the environment or an optional .env file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/github-user-summary/internal/app"
	"github.com/Sternrassler/github-user-summary/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := app.SetupLogging(cfg)
	logger.Info().
		Str("github_api", cfg.GitHub.APIURL).
		Str("user_agent", cfg.GitHub.UserAgent).
		Bool("token", cfg.GitHub.Token != "").
		Int("max_pages", cfg.GitHub.MaxPages).
		Msg("Configuration loaded")

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}
