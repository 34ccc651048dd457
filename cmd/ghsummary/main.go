// Command ghsummary fetches GitHub user summaries from the command line or
// serves them over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/github-user-summary/internal/app"
	"github.com/Sternrassler/github-user-summary/internal/config"
	"github.com/Sternrassler/github-user-summary/pkg/summary"
)

var errInvalidUsername = errors.New("invalid GitHub username")

type options struct {
	envFile    string
	outputJSON bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "ghsummary",
		Short: "GitHub user summary tool",
		Long: `Fetches a GitHub user's profile and public repositories as one summary.

When GitHub cannot be reached the last summary cached for the user is returned
instead. Configuration is read from the environment or a .env file.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "env file to load (default is .env)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL")

	getCmd := &cobra.Command{
		Use:   "get [username]",
		Short: "Show the summary for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, opts, args[0])
		},
	}
	getCmd.Flags().BoolVar(&opts.outputJSON, "json", false, "output in JSON format")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(serveCmd)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(opts *options) (*config.Config, error) {
	var files []string
	if opts.envFile != "" {
		files = append(files, opts.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	app.SetupLogging(cfg)
	return cfg, nil
}

func runGet(cmd *cobra.Command, opts *options, username string) error {
	if !summary.ValidLogin(username) {
		return fmt.Errorf("%w: %q", errInvalidUsername, username)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	a, err := app.NewCore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Service.GetUserSummary(cmd.Context(), username)
	if err != nil {
		return err
	}

	if opts.outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	renderSummary(cmd.OutOrStdout(), result)
	return nil
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(cmd.Context())
}

func renderSummary(w io.Writer, s *summary.UserSummary) {
	fmt.Fprintf(w, "\nUser Summary: %s\n\n", s.UserName)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"Display Name", s.DisplayName})
	table.Append([]string{"Location", deref(s.GeoLocation)})
	table.Append([]string{"Email", deref(s.Email)})
	table.Append([]string{"Avatar", s.Avatar})
	table.Append([]string{"Profile", s.URL})
	if !s.CreatedAt.IsZero() {
		table.Append([]string{"Created", s.CreatedAt.UTC().Format("2006-01-02")})
	}
	table.Append([]string{"Repositories", fmt.Sprintf("%d", len(s.Repos))})
	table.Render()

	if len(s.Repos) == 0 {
		return
	}

	fmt.Fprintln(w)
	repos := tablewriter.NewWriter(w)
	repos.SetHeader([]string{"Repository", "URL"})
	for _, r := range s.Repos {
		repos.Append([]string{r.Name, r.URL})
	}
	repos.Render()
}

func deref(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return *s
}
