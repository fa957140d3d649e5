// Command destiny runs the galactic civilisation simulation.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/destiny/internal/api"
	"github.com/talgya/destiny/internal/config"
	"github.com/talgya/destiny/internal/engine"
	"github.com/talgya/destiny/internal/export"
	"github.com/talgya/destiny/internal/galaxy"
	"github.com/talgya/destiny/internal/persistence"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// run owns every deferred cleanup, so exiting here never skips one.
	if err := run(cfg); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.Galaxy.Seed == 0 {
		cfg.Galaxy.Seed = seed
	}

	// ── History ───────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.HistoryDB != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.HistoryDB), 0o755); err != nil {
			return fmt.Errorf("create history dir for %s: %w", cfg.HistoryDB, err)
		}
		var err error
		db, err = persistence.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("open history %s: %w", cfg.HistoryDB, err)
		}
		defer db.Close()
		if err := db.SaveRun(seed, cfg.Years, cfg.TargetSize); err != nil {
			slog.Error("failed to record run", "error", err)
		}
	}

	// ── Galaxy ────────────────────────────────────────────────────────
	g := galaxy.Generate(cfg.Galaxy)
	slog.Info("galaxy generated",
		"seed", seed,
		"stars", len(g.Stars),
		"habitable_systems", g.HabitableStars(),
	)

	// ── Simulation ────────────────────────────────────────────────────
	ctx := engine.NewContext(rand.New(rand.NewSource(seed)), cfg.TargetSize)
	sim := engine.NewSimulation(ctx, g, cfg.HomeWorld, cfg.Multiplier)
	slog.Info("home world seeded",
		"population", humanize.Comma(int64(sim.Total())),
		"states", len(sim.Colonies[0].Settlements),
	)

	var transits []engine.Transit
	eng := engine.NewEngine(sim, cfg.Years)
	eng.SetInterval(cfg.YearInterval)
	eng.OnYear = func(r engine.YearReport) {
		transits = append(transits, r.Transits...)
		if db != nil {
			if err := db.RecordYear(sim, r); err != nil {
				slog.Error("history write failed", "year", r.Year, "error", err)
			}
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.APIPort > 0 {
		if cfg.AdminKey == "" {
			slog.Warn("DESTINY_ADMIN_KEY not set, pace control disabled")
		}
		apiServer := &api.Server{Eng: eng, DB: db, Port: cfg.APIPort, AdminKey: cfg.AdminKey}
		apiServer.Start()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, stopping", "signal", sig)
		eng.Stop()
	}()

	eng.Run()

	// ── Export ────────────────────────────────────────────────────────
	if cfg.ExportPath != "" {
		if err := export.Write(cfg.ExportPath, export.Build(sim, seed, transits)); err != nil {
			return fmt.Errorf("export %s: %w", cfg.ExportPath, err)
		}
		slog.Info("starmap written", "path", cfg.ExportPath)
	}

	fmt.Printf("\n%d years: %s people on %d worlds, %d ships in flight.\n",
		sim.Year, humanize.Comma(int64(sim.Total())), len(sim.Colonies), len(sim.InFlight))
	return nil
}
