package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/meridian"
	"github.com/aretw0/meridian/internal/cli"
	"github.com/aretw0/meridian/internal/presentation/tui"
	httpAdapter "github.com/aretw0/meridian/pkg/adapters/http"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Serves the world as a read-only JSON API with Prometheus metrics on /metrics.
With --watch, a directory world is re-read whenever its documents change and
clients subscribed to /events are notified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()

			rt, cfg, logger, err := openRuntime(cmd, cli.WithMetrics())
			if err != nil {
				return err
			}
			defer rt.Close()

			port, _ := cmd.Flags().GetInt("port")
			if port == 0 {
				port = cfg.HTTP.Port
			}

			errOut := cmd.ErrOrStderr()
			tui.PrintBanner(errOut, meridian.Version)

			handler := httpAdapter.NewHandler(rt.Engine,
				httpAdapter.WithMetrics(rt.Metrics),
				httpAdapter.WithLogger(logger),
				httpAdapter.WithVersion(meridian.Version),
			)
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", port),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			if watch, _ := cmd.Flags().GetBool("watch"); watch {
				go func() {
					if err := cli.WatchAndReload(sigCtx, rt.Engine, logger, errOut, nil); err != nil {
						logger.Warn("hot reload disabled", "err", err)
					}
				}()
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("Starting Meridian Server", "addr", srv.Addr, "world", cfg.World)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)

			case <-sigCtx.Done():
				logger.Info("Start shutdown", "signal", sigCtx.Signal())

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
					if err := srv.Close(); err != nil {
						return fmt.Errorf("error killing server: %w", err)
					}
				}
				logger.Info("Meridian Server stopped gracefully")
				return nil
			}
		},
	}
	cmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config, 8080)")
	cmd.Flags().Bool("watch", false, "Reload the world when its files change")
	return cmd
}
