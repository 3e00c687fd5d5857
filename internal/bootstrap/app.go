package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/moodsip/internal/domain/risk"
	"github.com/yanqian/moodsip/internal/infra/config"
)

// App encapsulates the HTTP server lifecycle and the optional risk scheduler.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	scheduler *risk.Scheduler
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, scheduler *risk.Scheduler) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, scheduler: scheduler}
}

// Run starts the HTTP server (and the risk scheduler when enabled) and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	schedulerDone := make(chan struct{})
	if a.cfg.Risk.Enabled && a.scheduler != nil {
		a.logger.Info("risk scheduler starting", "interval", a.cfg.Risk.Interval)
		go func() {
			defer close(schedulerDone)
			a.scheduler.Start(ctx)
		}()
	} else {
		close(schedulerDone)
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		select {
		case <-schedulerDone:
		case <-shutdownCtx.Done():
			a.logger.Warn("risk scheduler did not stop before shutdown timeout")
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
