package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Run serves until ctx is cancelled, then drains in-flight requests.
func (srv *HTTPServer) Run(ctx context.Context) error {
	s := &http.Server{
		Addr:              fmt.Sprintf(":%d", srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.l.Infof(ctx, "HTTP server listening on %s", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	srv.l.Info(context.Background(), "Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return <-errCh
}
