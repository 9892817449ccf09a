package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfview/internal/server"
	"github.com/matzehuels/shelfview/pkg/pipeline"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)
	defaults := pipeline.Options{Leaning: true, Scale: pipeline.DefaultScale, Seed: pipeline.DefaultSeed}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer over HTTP",
		Long: `Start an HTTP server that renders libraries on request.

Endpoints:
  POST /render?format=svg   body: {"library": {...}, "options": {...}}
  GET  /healthz

Flags set the defaults for options a request leaves out.`,
		Example: `  # Start on the default address
  shelfview serve

  # Share a Redis artifact cache between instances
  shelfview serve --addr :9000 --redis redis://localhost:6379/0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := defaults.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, redisURL, noCache, defaults)
		},
	}

	addRenderFlags(cmd, &defaults)
	cmd.Flags().StringVar(&addr, "addr", envOr(envAddr, defaultAddr), "listen address (default $"+envAddr+")")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis cache url (default $"+envRedisURL+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe runs the server until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool, defaults pipeline.Options) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache, redisURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, logger, server.WithDefaults(defaults)).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}
