package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// newStdServer returns a net/http server with the timeouts shared by the API and
// metrics listeners. The handler is attached by the caller.
func newStdServer(host string, port int) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// listen blocks serving srv until it is shut down. A graceful shutdown is not an error.
func listen(srv *http.Server, name string, logger *slog.Logger) error {
	logger.Info("starting "+name, slog.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}
