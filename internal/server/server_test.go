package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "0.0.0.0" {
		t.Fatalf("Host = %q; want %q", cfg.Host, "0.0.0.0")
	}
	if cfg.Port != 8080 {
		t.Fatalf("Port = %d; want %d", cfg.Port, 8080)
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Fatalf("ReadTimeout = %v; want %v", cfg.ReadTimeout, 15*time.Second)
	}
	if cfg.WriteTimeout != 90*time.Second {
		t.Fatalf("WriteTimeout = %v; want %v", cfg.WriteTimeout, 90*time.Second)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("IdleTimeout = %v; want %v", cfg.IdleTimeout, 60*time.Second)
	}
}

func TestNewServer_ConfiguresAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 9191

	srv := NewServer(http.NewServeMux(), cfg, nil)
	if srv.Addr() != "127.0.0.1:9191" {
		t.Fatalf("Addr() = %q; want 127.0.0.1:9191", srv.Addr())
	}
}

func TestShutdown_ClosesSink(t *testing.T) {
	closed := false
	srv := NewServer(http.NewServeMux(), DefaultConfig(), func() error {
		closed = true
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !closed {
		t.Error("Shutdown must close the log sink")
	}
}

func TestShutdown_SinkErrorSurfaces(t *testing.T) {
	srv := NewServer(http.NewServeMux(), DefaultConfig(), func() error {
		return errors.New("already closed")
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err == nil {
		t.Fatal("expected sink close error to surface")
	}
}
