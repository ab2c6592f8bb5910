// UNH Banking Assistant - chat service entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/unhbank/banking-assistant/internal/api"
	"github.com/unhbank/banking-assistant/internal/domain/chat"
	"github.com/unhbank/banking-assistant/internal/domain/chatlog"
	"github.com/unhbank/banking-assistant/internal/domain/intent"
	"github.com/unhbank/banking-assistant/internal/domain/rag"
	"github.com/unhbank/banking-assistant/internal/domain/safety"
	"github.com/unhbank/banking-assistant/internal/infra/config"
	"github.com/unhbank/banking-assistant/internal/infra/eventbus"
	"github.com/unhbank/banking-assistant/internal/infra/llm"
	"github.com/unhbank/banking-assistant/internal/server"
	"github.com/unhbank/banking-assistant/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("bankbot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	host := fs.String("host", "", "Listen host (overrides default 0.0.0.0)")
	port := fs.Int("port", 0, "Listen port (overrides default 8080)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}
	if *showHelp {
		printHelp(out)
		return 0
	}

	cfg := config.Load()
	configureLogging(cfg.LogLevel)

	srvConfig := server.DefaultConfig()
	if *host != "" {
		srvConfig.Host = *host
	}
	if *port != 0 {
		srvConfig.Port = *port
	}

	if err := serve(cfg, srvConfig); err != nil {
		log.WithError(err).Error("service failed")
		return 1
	}
	return 0
}

// serve composes the pipeline and blocks until SIGINT/SIGTERM.
func serve(cfg config.Config, srvConfig server.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy := config.DefaultPolicy()
	if cfg.PolicyFile != "" {
		loaded, err := config.LoadPolicy(cfg.PolicyFile)
		if err != nil {
			return fmt.Errorf("load policy file: %w", err)
		}
		policy = loaded
	}

	generator, err := llm.NewGenerator(cfg)
	if err != nil {
		return fmt.Errorf("build generator: %w", err)
	}
	embedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("build embedder: %w", err)
	}

	index, err := rag.NewIndex(ctx, cfg.PolicyDir, policy.DefaultSnippets, embedder)
	if err != nil {
		return fmt.Errorf("build snippet index: %w", err)
	}
	log.WithField("snippets", index.Size()).Info("snippet index ready")

	if cfg.WatchCorpus {
		bus := eventbus.New()
		go index.Start(ctx, bus)

		watcher, watchErr := rag.NewWatcher()
		if watchErr != nil {
			return fmt.Errorf("create corpus watcher: %w", watchErr)
		}
		defer watcher.Close() //nolint:errcheck
		if wErr := watcher.Watch(ctx, cfg.PolicyDir, bus); wErr != nil {
			// Missing corpus dir is fine; the builtin snippets still serve.
			log.WithError(wErr).Warn("corpus watching disabled")
		}
	}

	sink, closeSink, err := chatlog.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("build interaction log: %w", err)
	}

	orchestrator := chat.NewOrchestrator(
		safety.NewFilter(policy),
		intent.NewClassifier(policy),
		index,
		generator,
		sink,
		policy.SystemPrompt,
	)

	router := api.NewRouter(orchestrator, generator, index)
	srv := server.NewServer(router, srvConfig, closeSink)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func configureLogging(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func printHelp(out io.Writer) {
	helpText := `UNH Banking Assistant - guardrailed banking chat service

Usage:
  bankbot [options]

Options:
  --version    Show version information
  --help       Show this help message
  --host       Listen host (default 0.0.0.0)
  --port       Listen port (default 8080)

Environment:
  GEN_PROVIDER    "stub" or "ollama" (default stub)
  OLLAMA_URL      Ollama base URL (default http://localhost:11434)
  OLLAMA_MODEL    Generation model (default llama3.2:3b)
  EMBED_PROVIDER  "stub" or "ollama" (default stub)
  EMBED_MODEL     Embedding model (default nomic-embed-text)
  LOG_BACKEND     "jsonl" or "sqlite" (default jsonl)
  LOG_FILE        JSONL log path (default chatlogs.jsonl)
  SQLITE_PATH     SQLite log path (default chatlogs.db)
  POLICY_DIR      Snippet corpus directory (default data/policies)
  POLICY_FILE     Optional YAML overriding the built-in policy tables
  WATCH_CORPUS    "false" disables corpus hot reload (default true)
  LOG_LEVEL       debug|info|warn|error (default info)

Examples:
  bankbot --version
  bankbot --port 9090
  GEN_PROVIDER=ollama bankbot`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
