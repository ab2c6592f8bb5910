// Interaction log inspection tool.
// Reads the JSONL or SQLite log written by bankbot and prints matching
// records plus a summary of intents, refusals, and latency.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/unhbank/banking-assistant/internal/domain/chatlog"
	"github.com/unhbank/banking-assistant/internal/infra/sqlite"
	"github.com/unhbank/banking-assistant/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("chatlog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	file := fs.String("file", "chatlogs.jsonl", "Path to the JSONL interaction log")
	dbPath := fs.String("db", "", "Read from this SQLite log instead of the JSONL file")
	intentFilter := fs.String("intent", "", "Only show records with this intent label")
	guardrailOnly := fs.Bool("guardrail", false, "Only show refused turns")
	limit := fs.Int("limit", 0, "Stop after this many records (0 = all)")
	quiet := fs.Bool("quiet", false, "Print the summary only")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(errOut, "usage: chatlog [-file path | -db path] [-intent label] [-guardrail] [-limit n] [-quiet]") //nolint:errcheck
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	filter := chatlog.Filter{
		Intent:        *intentFilter,
		GuardrailOnly: *guardrailOnly,
		Limit:         *limit,
	}

	records, malformed, err := loadRecords(*file, *dbPath, filter)
	if err != nil {
		fmt.Fprintf(errOut, "ERROR: %v\n", err) //nolint:errcheck
		return 1
	}

	if !*quiet {
		printRecords(out, records)
	}
	printSummary(out, records, malformed)
	return 0
}

func loadRecords(file, dbPath string, filter chatlog.Filter) ([]chatlog.InteractionRecord, int, error) {
	if dbPath == "" {
		return chatlog.ReadJSONL(file, filter)
	}

	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return nil, 0, fmt.Errorf("open sqlite log: %w", err)
	}
	defer db.Close()

	records, err := chatlog.NewSQLiteLogger(db).List(context.Background(), filter)
	if err != nil {
		return nil, 0, err
	}
	return records, 0, nil
}

func printRecords(out io.Writer, records []chatlog.InteractionRecord) {
	for _, rec := range records {
		marker := " "
		if rec.GuardrailTriggered != "" {
			marker = "!"
		}
		fmt.Fprintf(out, "%s %s  %-12s %5dms  %s\n", //nolint:errcheck
			marker,
			rec.Timestamp.UTC().Format(time.RFC3339),
			rec.Intent,
			rec.LatencyMS,
			rec.UserMsg,
		)
	}
}

func printSummary(out io.Writer, records []chatlog.InteractionRecord, malformed int) {
	refused := 0
	var totalLatency int64
	byIntent := make(map[string]int)
	for _, rec := range records {
		byIntent[rec.Intent]++
		totalLatency += rec.LatencyMS
		if rec.GuardrailTriggered != "" {
			refused++
		}
	}

	fmt.Fprintf(out, "\n=== Interaction Log Summary ===\n") //nolint:errcheck
	fmt.Fprintf(out, "Records: %d\n", len(records))        //nolint:errcheck
	fmt.Fprintf(out, "Refused by guardrail: %d\n", refused) //nolint:errcheck
	if malformed > 0 {
		fmt.Fprintf(out, "Malformed lines skipped: %d\n", malformed) //nolint:errcheck
	}
	if len(records) > 0 {
		fmt.Fprintf(out, "Average latency: %dms\n", totalLatency/int64(len(records))) //nolint:errcheck
	}

	intents := make([]string, 0, len(byIntent))
	for label := range byIntent {
		intents = append(intents, label)
	}
	sort.Strings(intents)
	for _, label := range intents {
		fmt.Fprintf(out, "  %-12s %d\n", label, byIntent[label]) //nolint:errcheck
	}
}
