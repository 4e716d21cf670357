package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/statfx/internal/config"
)

const DefaultConfigPath = "config/effectsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config first to determine log level
	cfgPath := DefaultConfigPath
	if p := os.Getenv("STATFX_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadEngine(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("effectsim starting",
		"log_level", cfg.LogLevel,
		"rounds", cfg.Rounds,
		"presentation_delay", cfg.PresentationDelay)

	enc := newEncounter(cfg)
	result, err := enc.Play(ctx)
	if err != nil {
		return fmt.Errorf("playing encounter: %w", err)
	}

	slog.Info("encounter finished",
		"rounds", result.Rounds,
		"winner", result.Winner,
		enc.hero.Name()+"_hp", enc.hero.HP(),
		enc.enemy.Name()+"_hp", enc.enemy.HP())
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
