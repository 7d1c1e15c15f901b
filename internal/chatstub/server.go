package chatstub

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Serve runs the chat stub HTTP server until the context is cancelled.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("chatstub: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("chatstub: addr is required")
	}
	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: NewHandler(cfg),
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
