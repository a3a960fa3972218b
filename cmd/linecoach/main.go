// Command linecoach is the line-rehearsal accuracy server. It matches live
// speech-recognition transcripts against scripted lines and tells the actor,
// word by word, how the delivery went.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/offstage/linecoach/internal/config"
	"github.com/offstage/linecoach/internal/observe"
	"github.com/offstage/linecoach/internal/server"
	"github.com/offstage/linecoach/internal/session"
)

// version is stamped by the build; "dev" for local builds.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "linecoach: config file %q not found; copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "linecoach: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logLevel := new(slog.LevelVar)
	logLevel.Set(slogLevel(cfg.Server.LogLevel))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("linecoach starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Observability ─────────────────────────────────────────────────────────
	shutdownObs, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "linecoach",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise observability", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownObs(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", "err", err)
		}
	}()

	// ── Session manager + server ──────────────────────────────────────────────
	metrics := observe.DefaultMetrics()
	mgr := session.NewManager(session.ManagerConfig{
		Matching:   cfg.Matching,
		KnownNames: cfg.Practice.KnownNames,
		Metrics:    metrics,
	})
	srv := server.New(cfg.Server, mgr, metrics)

	// ── Config hot reload ─────────────────────────────────────────────────────
	watcher, err := config.NewWatcher(*configPath, func(old, new *config.Config) {
		applyConfigChange(config.Diff(old, new), logLevel, mgr)
	})
	if err != nil {
		slog.Error("failed to start config watcher", "err", err)
		return 1
	}
	defer watcher.Stop()

	printStartupSummary(cfg)
	slog.Info("server ready, press Ctrl+C to shut down")

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}

	slog.Info("goodbye")
	return 0
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config) {
	strategy := cfg.Matching.Strategy
	if strategy == "" {
		strategy = config.StrategyLocked
	}
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║        linecoach  startup summary     ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	fmt.Printf("║  Strategy        : %-18s ║\n", strategy)
	fmt.Printf("║  Strict mode     : %-18t ║\n", cfg.Matching.Strict)
	fmt.Printf("║  Error recovery  : %-18t ║\n", cfg.Matching.ErrorRecovery)
	fmt.Printf("║  Known names     : %-18d ║\n", len(cfg.Practice.KnownNames))
	if cfg.Server.ListenAddr != "" {
		fmt.Printf("║  Listen addr     : %-18s ║\n", cfg.Server.ListenAddr)
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

// ── Config reload ──────────────────────────────────────────────────────────────

// applyConfigChange applies the hot-reloadable parts of a config diff and
// warns about the parts that need a restart.
func applyConfigChange(d config.ConfigDiff, logLevel *slog.LevelVar, mgr *session.Manager) {
	if d.Empty() {
		return
	}
	if d.LogLevelChanged {
		logLevel.Set(slogLevel(d.NewLogLevel))
		slog.Info("log level changed", "level", d.NewLogLevel)
	}
	if d.KnownNamesChanged {
		mgr.SetKnownNames(d.NewKnownNames)
		slog.Info("known names reloaded", "count", len(d.NewKnownNames))
	}
	if d.MatchingChanged {
		slog.Warn("matching settings changed on disk; restart to apply")
	}
	if d.ServerChanged {
		slog.Warn("server settings changed on disk; restart to apply")
	}
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
