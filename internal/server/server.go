// Package server owns the HTTP listener lifecycle: start, graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xandys/eccbc-mcp/internal/api"
	"github.com/xandys/eccbc-mcp/internal/infra/catalog"
)

// Config holds HTTP listener configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns the default HTTP listener configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server wraps the HTTP listener around the API router.
type Server struct {
	config Config
	http   *http.Server
}

// NewServer builds the router on top of the given upstream client and wires
// it into an HTTP server.
func NewServer(client *catalog.Client, config Config) *Server {
	router := api.NewRouter(client)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config: config,
		http:   httpServer,
	}
}

// Start runs the listener and blocks until it stops. http.ErrServerClosed
// after a graceful shutdown is not reported as a failure.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("starting HTTP server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight requests
// up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down HTTP server")
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}
