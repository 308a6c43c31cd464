package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/neurocontainers/recipekit"
	"github.com/neurocontainers/recipekit/internal/cli"
	"github.com/neurocontainers/recipekit/internal/metrics"
	"github.com/neurocontainers/recipekit/internal/presentation/tui"
	httpAdapter "github.com/neurocontainers/recipekit/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the directive registry and the expansion engine as a JSON API over HTTP.
Prometheus metrics are exposed on /metrics and expansion events on /events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := metrics.New()
		streams := httpAdapter.NewStreamManager()

		env, err := newEnv(cmd, rec.Hooks(), streams.Hooks())
		if err != nil {
			return err
		}

		addr := env.Config.Server.Addr
		if cmd.Flags().Changed("port") {
			port, _ := cmd.Flags().GetString("port")
			addr = ":" + strings.TrimPrefix(port, ":")
		}

		handler := httpAdapter.NewHandler(env.Kit,
			httpAdapter.WithMetrics(rec.Handler()),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithCORSOrigin(env.Config.Server.CORSOrigin),
			httpAdapter.WithLogger(env.Logger),
		)

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout(), recipekit.Version)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			env.Logger.Info("Starting HTTP server", "addr", srv.Addr, "directives", env.Kit.Registry().Len())
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			env.Logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				env.Logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			env.Logger.Info("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on (default from config)")
}
