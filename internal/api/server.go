package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/config"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/logger"
)

// Server wraps the HTTP server lifecycle around the router.
type Server struct {
	cfg    config.ServerConfig
	server *http.Server
}

// NewServer creates the API server.
func NewServer(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		server: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 5 * time.Minute, // synchronous dispatch can run long
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	logger.Info("http server listening", "addr", s.cfg.Addr())
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
