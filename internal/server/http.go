package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/myeasyserver/myeasyserver/internal/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type httpServer struct {
	server *http.Server
	listen ListenConfig

	logger *logger.Logger
}

func newHTTPServer(router http.Handler, listen ListenConfig, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		listen: listen,
		logger: logger,
	}
}

// Listen opens the configured socket. A stale unix socket file left by a
// previous run is removed first.
func (h *httpServer) Listen() (net.Listener, error) {
	if h.listen.Network == networkUnix {
		if err := os.Remove(h.listen.Address); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error removing stale socket: %w", err)
		}
	}

	ln, err := net.Listen(h.listen.Network, h.listen.Address)
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", h.listen, err)
	}
	return ln, nil
}

// Serve blocks until the server is shut down. A graceful shutdown is not an
// error.
func (h *httpServer) Serve(ln net.Listener) error {
	h.logger.Info().Str("address", ln.Addr().String()).Msg("HTTP server listening")
	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server Serve: %w", err)
	}
	return nil
}

func (h *httpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("HTTP server Shutdown")
	}
}
