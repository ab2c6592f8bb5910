package chatlog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// JSONLLogger appends one JSON object per line to a file. Writes are
// serialized with a mutex; the file is opened with O_APPEND so concurrent
// processes interleave whole lines, never partial ones.
type JSONLLogger struct {
	mu   sync.Mutex
	path string
}

// NewJSONLLogger returns a logger that appends to path. The file is created
// lazily on the first Log call.
func NewJSONLLogger(path string) *JSONLLogger {
	return &JSONLLogger{path: path}
}

// Log appends rec as a single JSON line. A zero Timestamp is stamped with the
// current UTC time. A nil RetrievedDocIDs is written as an empty array so
// every line carries the same shape.
func (l *JSONLLogger) Log(_ context.Context, rec InteractionRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	if rec.RetrievedDocIDs == nil {
		rec.RetrievedDocIDs = []string{}
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("chatlog: marshal record %s: %w", rec.ID, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("chatlog: open %s: %w", l.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("chatlog: append to %s: %w", l.path, err)
	}
	return nil
}

// ReadJSONL reads a log file and returns the records passing the filter, in
// file order. Malformed lines are skipped with their count returned so the
// inspection tool can report them.
func ReadJSONL(path string, f Filter) ([]InteractionRecord, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("chatlog: open %s: %w", path, err)
	}
	defer file.Close()

	var (
		records   []InteractionRecord
		malformed int
	)

	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec InteractionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			malformed++
			continue
		}
		if !f.Matches(rec) {
			continue
		}

		records = append(records, rec)
		if f.Limit > 0 && len(records) >= f.Limit {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, malformed, fmt.Errorf("chatlog: scan %s: %w", path, err)
	}

	return records, malformed, nil
}
