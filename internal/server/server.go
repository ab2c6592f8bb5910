// HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default HTTP server configuration. The write timeout
// leaves headroom over the 60s generation timeout of the model backend.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server wraps the HTTP server and an optional close hook for the log sink.
type Server struct {
	config    Config
	http      *http.Server
	closeSink func() error
}

// NewServer creates a new HTTP server serving handler. closeSink releases the
// interaction-log backend on shutdown; pass nil when there is nothing to close.
func NewServer(handler http.Handler, config Config, closeSink func() error) *Server {
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:    config,
		http:      httpServer,
		closeSink: closeSink,
	}
}

// Addr returns the address the server will listen on.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	log.WithField("addr", s.http.Addr).Info("starting HTTP server")
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server and closes the log sink.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if s.closeSink != nil {
		if err := s.closeSink(); err != nil {
			return fmt.Errorf("log sink close error: %w", err)
		}
	}

	log.Info("server shutdown complete")
	return nil
}
