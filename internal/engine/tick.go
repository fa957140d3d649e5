package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Engine drives a Simulation forward year by year. Readers on other
// goroutines go through View so they never observe a year half done.
type Engine struct {
	Sim   *Simulation
	Years int // years to run; 0 runs until Stop

	// OnYear is called after every simulated year, before readers see it.
	OnYear func(report YearReport)

	mu       sync.RWMutex
	interval atomic.Int64 // minimum wall time per year in ns; 0 runs flat out
	running  atomic.Bool
}

// NewEngine creates an engine for sim with no pacing.
func NewEngine(sim *Simulation, years int) *Engine {
	return &Engine{Sim: sim, Years: years}
}

// Interval is the minimum wall time spent on each year.
func (e *Engine) Interval() time.Duration { return time.Duration(e.interval.Load()) }

// SetInterval changes the pacing; it takes effect from the next year.
func (e *Engine) SetInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	e.interval.Store(int64(d))
}

// Run advances the simulation until Years have passed or Stop is called.
func (e *Engine) Run() {
	e.running.Store(true)
	slog.Info("simulation engine started", "year", e.Sim.Year, "years", e.Years)

	for e.running.Load() && (e.Years == 0 || e.Sim.Year < e.Years) {
		start := time.Now()

		e.mu.Lock()
		report := e.Sim.Step()
		if e.OnYear != nil {
			e.OnYear(report)
		}
		e.mu.Unlock()

		if elapsed, pace := time.Since(start), e.Interval(); elapsed < pace {
			time.Sleep(pace - elapsed)
		}
	}

	e.running.Store(false)
	slog.Info("simulation engine stopped", "year", e.Sim.Year)
}

// View runs fn with the simulation held still.
func (e *Engine) View(fn func(sim *Simulation)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(e.Sim)
}

// Stop halts the loop after the year in progress.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Running reports whether Run is in progress.
func (e *Engine) Running() bool {
	return e.running.Load()
}
