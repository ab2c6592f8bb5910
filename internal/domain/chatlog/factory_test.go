package chatlog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/unhbank/banking-assistant/internal/infra/config"
)

func TestNewLogger_JSONL(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		LogBackend: config.LogBackendJSONL,
		LogFile:    filepath.Join(t.TempDir(), "interactions.jsonl"),
	}

	logger, closeFn, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer func() {
		_ = closeFn() //nolint:errcheck
	}()

	if _, ok := logger.(*JSONLLogger); !ok {
		t.Fatalf("logger = %T; want *JSONLLogger", logger)
	}
	if err := logger.Log(context.Background(), sampleRecord("a")); err != nil {
		t.Errorf("Log() error = %v", err)
	}
}

func TestNewLogger_SQLite(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		LogBackend: config.LogBackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "log.db"),
	}

	logger, closeFn, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer func() {
		_ = closeFn() //nolint:errcheck
	}()

	sink, ok := logger.(*SQLiteLogger)
	if !ok {
		t.Fatalf("logger = %T; want *SQLiteLogger", logger)
	}
	if err := sink.Log(context.Background(), sampleRecord("a")); err != nil {
		t.Errorf("Log() error = %v", err)
	}

	records, err := sink.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d; want 1 (schema must be migrated)", len(records))
	}
}

func TestNewLogger_UnknownBackend(t *testing.T) {
	t.Parallel()

	if _, _, err := NewLogger(config.Config{LogBackend: "etcd"}); err == nil {
		t.Fatal("expected error for unknown backend, got nil")
	}
}
