// Command oreworks runs the incremental mining simulation headless: a
// fixed-cadence frame loop drives the engine, a SQLite database holds the
// save, and an HTTP API stands in for the rendering layer.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/talgya/oreworks/internal/api"
	"github.com/talgya/oreworks/internal/engine"
	"github.com/talgya/oreworks/internal/entropy"
	"github.com/talgya/oreworks/internal/persistence"
	"github.com/talgya/oreworks/internal/tuning"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfgPath := "tuning.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := tuning.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load tuning", "path", cfgPath, "error", err)
		os.Exit(1)
	}
	slog.Info("tuning loaded",
		"ticks_per_second", cfg.TicksPerSecond,
		"catchup_limit", cfg.CatchUpLimit,
		"frame_ms", cfg.FrameMs,
	)

	seed := cfg.Seed
	if seed == 0 {
		seed = entropy.Seed()
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Load or create game state ─────────────────────────────────────
	// The clock anchors at now either way: a loaded game resumes without a
	// catch-up burst for the time the process was down.
	game := engine.NewState(time.Now(), cfg.TicksPerSecond, cfg.CatchUpLimit, seed)
	if db.HasState() {
		if err := db.LoadState(game); err != nil {
			slog.Warn("saved state unreadable, starting fresh", "error", err)
			game = engine.NewState(time.Now(), cfg.TicksPerSecond, cfg.CatchUpLimit, seed)
		}
	} else {
		slog.Info("no saved game, starting fresh")
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	var mu sync.Mutex
	server := &api.Server{
		Game:     game,
		Mu:       &mu,
		DB:       db,
		Addr:     cfg.ListenAddr,
		AdminKey: cfg.AdminKey,
	}
	server.Start()

	// ── Frame loop ────────────────────────────────────────────────────
	frames := time.NewTicker(time.Duration(cfg.FrameMs) * time.Millisecond)
	defer frames.Stop()
	autosave := time.NewTicker(time.Duration(cfg.AutosaveSeconds) * time.Second)
	defer autosave.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	slog.Info("simulation running", "tick", game.TickCount)
	for {
		select {
		case now := <-frames.C:
			mu.Lock()
			game.Update(now)
			mu.Unlock()

		case <-autosave.C:
			mu.Lock()
			err := db.SaveState(game)
			mu.Unlock()
			if err != nil {
				slog.Error("autosave failed", "error", err)
			}

		case <-sig:
			slog.Info("shutting down")
			mu.Lock()
			err := db.SaveState(game)
			mu.Unlock()
			if err != nil {
				slog.Error("final save failed", "error", err)
				os.Exit(1)
			}
			return
		}
	}
}
