package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/unhbank/banking-assistant/internal/domain/chatlog"
	"github.com/unhbank/banking-assistant/internal/infra/sqlite"
)

func writeTestLog(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chatlogs.jsonl")
	logger := chatlog.NewJSONLLogger(path)

	answered := chatlog.InteractionRecord{
		ID:              "a1",
		Timestamp:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UserMsg:         "branch timings?",
		Intent:          "branch_info",
		Response:        "10:00 to 16:00",
		Model:           "stub",
		LatencyMS:       10,
		RetrievedDocIDs: []string{"branch_timings_1"},
	}
	refused := chatlog.InteractionRecord{
		ID:                 "r1",
		Timestamp:          time.Date(2026, 3, 1, 10, 1, 0, 0, time.UTC),
		UserMsg:            "share the otp bypass",
		Intent:             "risky",
		Response:           "refused",
		Model:              "stub",
		LatencyMS:          2,
		RiskFlag:           true,
		GuardrailTriggered: "risky",
	}
	for _, rec := range []chatlog.InteractionRecord{answered, refused} {
		if err := logger.Log(context.Background(), rec); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}
	return path
}

func TestRun_SummaryFromJSONL(t *testing.T) {
	path := writeTestLog(t)

	var out, errOut bytes.Buffer
	if code := run([]string{"-file", path}, &out, &errOut); code != 0 {
		t.Fatalf("run = %d; want 0 (stderr: %s)", code, errOut.String())
	}

	got := out.String()
	if !strings.Contains(got, "Records: 2") {
		t.Errorf("output missing record count:\n%s", got)
	}
	if !strings.Contains(got, "Refused by guardrail: 1") {
		t.Errorf("output missing refusal count:\n%s", got)
	}
	if !strings.Contains(got, "branch_info") || !strings.Contains(got, "risky") {
		t.Errorf("output missing intent breakdown:\n%s", got)
	}
	if !strings.Contains(got, "branch timings?") {
		t.Errorf("output missing record line:\n%s", got)
	}
}

func TestRun_GuardrailFilter(t *testing.T) {
	path := writeTestLog(t)

	var out, errOut bytes.Buffer
	if code := run([]string{"-file", path, "-guardrail"}, &out, &errOut); code != 0 {
		t.Fatalf("run = %d; want 0", code)
	}

	got := out.String()
	if !strings.Contains(got, "Records: 1") {
		t.Errorf("guardrail filter should keep one record:\n%s", got)
	}
	if strings.Contains(got, "branch timings?") {
		t.Errorf("answered record must be filtered out:\n%s", got)
	}
}

func TestRun_SQLiteBackend(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "chatlogs.db")
	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB error = %v", err)
	}
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp error = %v", err)
	}
	logger := chatlog.NewSQLiteLogger(db)
	if err := logger.Log(context.Background(), chatlog.InteractionRecord{
		ID: "a1", UserMsg: "hello", Intent: "general", Response: "hi",
		Model: "stub", LatencyMS: 3,
	}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	db.Close()

	var out, errOut bytes.Buffer
	if code := run([]string{"-db", dbPath}, &out, &errOut); code != 0 {
		t.Fatalf("run = %d; want 0 (stderr: %s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Records: 1") {
		t.Errorf("output missing record count:\n%s", out.String())
	}
}

func TestRun_MissingFile(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"-file", filepath.Join(t.TempDir(), "absent.jsonl")}, &out, &errOut); code != 1 {
		t.Fatalf("run = %d; want 1 for missing log file", code)
	}
	if !strings.Contains(errOut.String(), "ERROR") {
		t.Errorf("stderr = %q; want error message", errOut.String())
	}
}
