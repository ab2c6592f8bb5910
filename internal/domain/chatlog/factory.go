package chatlog

import (
	"fmt"

	"github.com/unhbank/banking-assistant/internal/infra/config"
	"github.com/unhbank/banking-assistant/internal/infra/sqlite"
)

// NewLogger builds the sink selected by LOG_BACKEND. The returned close func
// releases the underlying database for the sqlite backend and is a no-op for
// jsonl.
func NewLogger(cfg config.Config) (Logger, func() error, error) {
	switch cfg.LogBackend {
	case config.LogBackendJSONL:
		return NewJSONLLogger(cfg.LogFile), func() error { return nil }, nil

	case config.LogBackendSQLite:
		db, err := sqlite.NewDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("chatlog: open sqlite backend: %w", err)
		}
		if err := sqlite.MigrateUp(db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("chatlog: migrate sqlite backend: %w", err)
		}
		return NewSQLiteLogger(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("chatlog: unknown log backend %q", cfg.LogBackend)
	}
}
