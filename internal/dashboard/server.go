package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Serve runs the dashboard HTTP server until the context is cancelled.
func Serve(ctx context.Context, addr string, cfg Config) error {
	if ctx == nil {
		return errors.New("dashboard: context is nil")
	}
	if addr == "" {
		return errors.New("dashboard: addr is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
