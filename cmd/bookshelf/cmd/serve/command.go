// Package serve provides the HTTP server command for the bookshelf CLI.
package serve

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/cmd/application"
	"github.com/agentstation/bookshelf/internal/server"
	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	host, port := app.ServerAddress()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "management",
		Short:   "Start the REST API server with WebSocket updates",
		Long: `Start a REST API server for the library catalog.

Features:
  - Endpoints for books, users, borrowing and returning
  - WebSocket feed of library changes (` + constants.APIPrefix + `/updates/ws)
  - Cached list responses, flushed on every change
  - CORS support for web applications
  - Request logging and panic recovery
  - Graceful shutdown with connection draining`,
		Example: `  # Start on the configured address
  bookshelf serve

  # Start on a custom port against a postgres store
  bookshelf serve --port 3000 --store postgres://localhost/library

  # Enable CORS for specific origins
  bookshelf serve --cors-origins "https://example.com,https://app.example.com"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, app)
		},
	}

	cmd.Flags().String("host", host, "Bind address")
	cmd.Flags().Int("port", port, "Server port")
	cmd.Flags().String("prefix", constants.APIPrefix, "API path prefix")

	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	cmd.Flags().Duration("cache-ttl", time.Minute, "List response cache TTL")
	cmd.Flags().Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", 10*time.Second, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", 120*time.Second, "HTTP idle timeout")

	return cmd
}

// runServer starts the API server and blocks until the command context ends.
func runServer(cmd *cobra.Command, app application.Application) error {
	cfg, err := parseConfig(cmd)
	if err != nil {
		return err
	}
	logger := app.Logger()

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting API server")

	srv, err := server.New(app, cfg)
	if err != nil {
		return errors.WrapResource("create", "server", "", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "API server listening on %s (Ctrl+C to stop)\n", cfg.Addr())

	// cmd.Context() carries the signal handling set up in main.
	return srv.ListenAndServe(cmd.Context())
}

// parseConfig parses command flags into server configuration.
func parseConfig(cmd *cobra.Command) (server.Config, error) {
	cfg := server.DefaultConfig()

	var err error
	if cfg.Host, err = cmd.Flags().GetString("host"); err != nil {
		return cfg, err
	}
	if cfg.Port, err = cmd.Flags().GetInt("port"); err != nil {
		return cfg, err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return cfg, errors.NewValidationError("port", cfg.Port, "must be between 1 and 65535")
	}
	if cfg.PathPrefix, err = cmd.Flags().GetString("prefix"); err != nil {
		return cfg, err
	}
	if cfg.CORSEnabled, err = cmd.Flags().GetBool("cors"); err != nil {
		return cfg, err
	}
	if cfg.CORSOrigins, err = cmd.Flags().GetStringSlice("cors-origins"); err != nil {
		return cfg, err
	}
	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}
	if cfg.CacheTTL, err = cmd.Flags().GetDuration("cache-ttl"); err != nil {
		return cfg, err
	}
	if cfg.ReadTimeout, err = cmd.Flags().GetDuration("read-timeout"); err != nil {
		return cfg, err
	}
	if cfg.WriteTimeout, err = cmd.Flags().GetDuration("write-timeout"); err != nil {
		return cfg, err
	}
	if cfg.IdleTimeout, err = cmd.Flags().GetDuration("idle-timeout"); err != nil {
		return cfg, err
	}
	return cfg, nil
}
