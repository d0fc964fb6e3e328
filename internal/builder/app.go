package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// App is the HTTP server together with the components it owns
type App struct {
	server  *http.Server
	cleanup func()
	logger  *zap.Logger
}

// Run serves until SIGINT/SIGTERM or a listener error
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.serve(ctx)
}

// serve blocks until ctx is done, then drains in-flight requests.
func (a *App) serve(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.release()
		return err
	case <-ctx.Done():
		a.logger.Info("Shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	if err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
	}

	a.release()
	a.logger.Info("Application stopped")
	return err
}

func (a *App) release() {
	if a.cleanup != nil {
		a.cleanup()
	}
}
