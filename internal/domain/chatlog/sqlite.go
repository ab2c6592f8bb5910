package chatlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLiteLogger writes interaction records to the interaction_log table.
// Append-only: no update or delete paths exist.
type SQLiteLogger struct {
	db *sql.DB
}

// NewSQLiteLogger wraps an already-opened and migrated database handle.
func NewSQLiteLogger(db *sql.DB) *SQLiteLogger {
	return &SQLiteLogger{db: db}
}

// Log inserts rec as a new row. Slice and map fields are stored as JSON text.
func (s *SQLiteLogger) Log(ctx context.Context, rec InteractionRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	if rec.RetrievedDocIDs == nil {
		rec.RetrievedDocIDs = []string{}
	}

	docIDs, err := json.Marshal(rec.RetrievedDocIDs)
	if err != nil {
		return fmt.Errorf("chatlog: marshal doc ids for %s: %w", rec.ID, err)
	}

	var extra any
	if len(rec.Extra) > 0 {
		b, mErr := json.Marshal(rec.Extra)
		if mErr != nil {
			return fmt.Errorf("chatlog: marshal extra for %s: %w", rec.ID, mErr)
		}
		extra = string(b)
	}

	var guardrail any
	if rec.GuardrailTriggered != "" {
		guardrail = rec.GuardrailTriggered
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO interaction_log (
			id, timestamp, user_msg, intent, response, model, latency_ms,
			risk_flag, sensitive_flag, retrieved_doc_ids, guardrail_triggered, extra
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		rec.UserMsg,
		rec.Intent,
		rec.Response,
		rec.Model,
		rec.LatencyMS,
		boolToInt(rec.RiskFlag),
		boolToInt(rec.SensitiveFlag),
		string(docIDs),
		guardrail,
		extra,
	)
	if err != nil {
		return fmt.Errorf("chatlog: insert record %s: %w", rec.ID, err)
	}
	return nil
}

// List returns records passing the filter, oldest first.
func (s *SQLiteLogger) List(ctx context.Context, f Filter) ([]InteractionRecord, error) {
	query := `
		SELECT id, timestamp, user_msg, intent, response, model, latency_ms,
		       risk_flag, sensitive_flag, retrieved_doc_ids, guardrail_triggered, extra
		FROM interaction_log`
	var (
		conds []string
		args  []any
	)
	if f.Intent != "" {
		conds = append(conds, "intent = ?")
		args = append(args, f.Intent)
	}
	if f.GuardrailOnly {
		conds = append(conds, "guardrail_triggered IS NOT NULL")
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY timestamp ASC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("chatlog: list records: %w", err)
	}
	defer rows.Close()

	var records []InteractionRecord
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chatlog: iterate records: %w", err)
	}

	return records, nil
}

func scanRecord(rows *sql.Rows) (InteractionRecord, error) {
	var (
		rec       InteractionRecord
		ts        string
		riskFlag  int
		sensFlag  int
		docIDs    string
		guardrail sql.NullString
		extra     sql.NullString
	)
	if err := rows.Scan(
		&rec.ID, &ts, &rec.UserMsg, &rec.Intent, &rec.Response, &rec.Model,
		&rec.LatencyMS, &riskFlag, &sensFlag, &docIDs, &guardrail, &extra,
	); err != nil {
		return rec, fmt.Errorf("chatlog: scan record: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return rec, fmt.Errorf("chatlog: parse timestamp %q: %w", ts, err)
	}
	rec.Timestamp = parsed
	rec.RiskFlag = riskFlag != 0
	rec.SensitiveFlag = sensFlag != 0

	if err := json.Unmarshal([]byte(docIDs), &rec.RetrievedDocIDs); err != nil {
		return rec, fmt.Errorf("chatlog: parse doc ids for %s: %w", rec.ID, err)
	}
	if guardrail.Valid {
		rec.GuardrailTriggered = guardrail.String
	}
	if extra.Valid && extra.String != "" {
		if err := json.Unmarshal([]byte(extra.String), &rec.Extra); err != nil {
			return rec, fmt.Errorf("chatlog: parse extra for %s: %w", rec.ID, err)
		}
	}

	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
