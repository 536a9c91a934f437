package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jaskrrish/qirt-go/internal/config"
	"github.com/jaskrrish/qirt-go/internal/handlers"
	"github.com/jaskrrish/qirt-go/internal/qirt"
	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the state API under /api/v1/qirt. States live in memory until their TTL
runs out. With --watch the notation file is reloaded whenever it changes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			return Serve(cmd.Context(), app)
		},
	}

	cmd.Flags().IntP("port", "p", 0, "Port to listen on")
	cmd.Flags().Bool("watch", false, "Reload the notation file when it changes")
	return cmd
}

// Serve runs the HTTP server, the expiry sweeper and, when enabled, the notation
// watcher until ctx is cancelled or one of them fails.
func Serve(ctx context.Context, app *App) error {
	cfg := app.Config
	logger := app.Logger

	sm := qirt.NewStateManager(app.Simulator, logger.WithPrefix("qirt/states"), cfg.StateTTL)
	router := handlers.NewRouter(handlers.NewQIRTHandler(sm, logger), logger.WithPrefix("qirt/http"))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	eg.Go(func() error {
		logger.Info("server starting", "addr", srv.Addr, "max_qubits", app.Simulator.MaxQubits())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Sweep expired states
	eg.Go(func() error {
		return cleanupLoop(egctx, sm, cfg.CleanupInterval, logger)
	})

	if cfg.WatchNotation && cfg.NotationFile != "" {
		eg.Go(func() error {
			return watchNotation(egctx, cfg, logger)
		})
	}

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func cleanupLoop(ctx context.Context, sm *qirt.StateManager, interval time.Duration, logger *log.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := sm.CleanupExpiredStates(); removed > 0 {
				logger.Debug("expired states removed", "count", removed, "remaining", sm.Count())
			}
		}
	}
}

func watchNotation(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	logger.Info("watching notation file", "file", cfg.NotationFile)
	return notation.Watch(ctx, cfg.NotationFile, func(t *notation.Table, err error) {
		if err != nil {
			logger.Warn("notation reload failed, keeping current table", "file", cfg.NotationFile, "err", err)
			return
		}
		s := t.Symbols()
		logger.Info("notation reloaded", "z", s.Z0+s.Z1, "x", s.X0+s.X1, "y", s.Y0+s.Y1)
	})
}
