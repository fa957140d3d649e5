// Package api serves a read-only HTTP view of a running simulation.
// GET endpoints are public. POST /api/v1/pace requires the admin bearer token.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/destiny/internal/engine"
	"github.com/talgya/destiny/internal/government"
	"github.com/talgya/destiny/internal/persistence"
	"github.com/talgya/destiny/internal/population"
)

const (
	defaultEvents = 50
	maxEvents     = 5000 // beyond the in-memory log; older events come from history
)

// Server serves the simulation state over HTTP.
type Server struct {
	Eng      *engine.Engine
	DB       *persistence.DB // nil disables the history endpoints
	Port     int
	AdminKey string // bearer token for POST endpoints; empty disables them
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	historyLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/colonies", s.handleColonies)
	mux.HandleFunc("GET /api/v1/colony/{name}", s.handleColonyDetail)
	mux.HandleFunc("GET /api/v1/factions", s.handleFactions)
	mux.HandleFunc("GET /api/v1/events", s.handleEvents)

	// History is read from the database, so it is rate limited.
	mux.HandleFunc("GET /api/v1/stats/history", RateLimitMiddleware(historyLimiter, s.handleHistory))
	mux.HandleFunc("GET /api/v1/routes", RateLimitMiddleware(historyLimiter, s.handleRoutes))
	mux.HandleFunc("GET /api/v1/colony/{name}/history", RateLimitMiddleware(historyLimiter, s.handleColonyHistory))

	mux.HandleFunc("GET /api/v1/pace", s.handlePace)
	mux.HandleFunc("POST /api/v1/pace", s.adminOnly(s.handlePace))
	return mux
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "", "history", s.DB != nil)

	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no DESTINY_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var status map[string]any
	s.Eng.View(func(sim *engine.Simulation) {
		settlements := 0
		for _, c := range sim.Colonies {
			settlements += len(c.Settlements)
		}
		status = map[string]any{
			"year":        sim.Year,
			"running":     s.Eng.Running(),
			"population":  sim.Total(),
			"colonies":    len(sim.Colonies),
			"settlements": settlements,
			"in_flight":   len(sim.InFlight),
			"factions":    len(sim.Ctx.Factions),
		}
	})
	if s.DB != nil {
		if seed, err := s.DB.GetMeta("seed"); err == nil {
			status["seed"] = seed
		}
	}
	writeJSON(w, status)
}

type colonySummary struct {
	Name         string `json:"name"`
	Planet       string `json:"planet"`
	Founded      int    `json:"founded"`
	Population   int    `json:"population"`
	States       int    `json:"states"`
	ScienceLevel int    `json:"science_level"`
	Ships        int    `json:"ships"`
	Faction      string `json:"faction,omitempty"`
}

func summarise(c *engine.InhabitedPlanet) colonySummary {
	cs := colonySummary{
		Name:         c.Name,
		Planet:       c.Planet.Label(),
		Founded:      c.FoundingYear,
		Population:   c.Population(),
		States:       len(c.Settlements),
		ScienceLevel: c.ScienceLevel,
		Ships:        len(c.Ships),
	}
	if c.Faction != nil {
		cs.Faction = c.Faction.Name
	}
	return cs
}

func (s *Server) handleColonies(w http.ResponseWriter, r *http.Request) {
	var result []colonySummary
	s.Eng.View(func(sim *engine.Simulation) {
		result = make([]colonySummary, 0, len(sim.Colonies))
		for _, c := range sim.Colonies {
			result = append(result, summarise(c))
		}
	})
	writeJSON(w, result)
}

type stateDetail struct {
	Name       string             `json:"name"`
	Founded    int                `json:"founded"`
	Population int                `json:"population"`
	Government string             `json:"government"`
	Philosophy string             `json:"philosophy"`
	Support    float64            `json:"support"`
	Ancestries []population.Share `json:"ancestries"`
}

func (s *Server) handleColonyDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var (
		found  bool
		detail struct {
			colonySummary
			PopulationByYear []int         `json:"population_by_year"`
			States           []stateDetail `json:"states"`
		}
	)
	s.Eng.View(func(sim *engine.Simulation) {
		for _, c := range sim.Colonies {
			if !strings.EqualFold(c.Name, name) {
				continue
			}
			found = true
			detail.colonySummary = summarise(c)
			detail.PopulationByYear = append([]int(nil), c.PopulationByYear...)
			for _, st := range c.Settlements {
				detail.States = append(detail.States, stateDetail{
					Name:       st.Name(),
					Founded:    st.FoundingYear,
					Population: st.Population(),
					Government: st.Government.Kind().String(),
					Philosophy: government.Philosophy(st.Government),
					Support:    st.GovernmentSupport(),
					Ancestries: st.Ancestries(),
				})
			}
			return
		}
	})
	if !found {
		http.Error(w, "colony not found", http.StatusNotFound)
		return
	}
	writeJSON(w, detail)
}

func (s *Server) handleFactions(w http.ResponseWriter, r *http.Request) {
	type factionSummary struct {
		Name    string   `json:"name"`
		Founded int      `json:"founded"`
		Members []string `json:"members"`
	}
	var result []factionSummary
	s.Eng.View(func(sim *engine.Simulation) {
		result = make([]factionSummary, 0, len(sim.Ctx.Factions))
		for _, f := range sim.Ctx.Factions {
			fs := factionSummary{Name: f.Name, Founded: f.Founded}
			for _, c := range f.Members {
				fs.Members = append(fs.Members, c.Name)
			}
			result = append(result, fs)
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	n := defaultEvents
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			http.Error(w, "n must be a positive integer", http.StatusBadRequest)
			return
		}
		n = min(parsed, maxEvents)
	}

	var events []engine.Event
	s.Eng.View(func(sim *engine.Simulation) {
		events = sim.Ctx.Events.Recent()
	})
	if len(events) < n && s.DB != nil {
		stored, err := s.DB.RecentEvents(n)
		if err != nil {
			slog.Error("events query failed", "error", err)
		} else if len(stored) > len(events) {
			slices.Reverse(stored)
			events = stored
		}
	}
	if len(events) > n {
		events = events[len(events)-n:]
	}
	writeJSON(w, events)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	rows, err := s.DB.Years()
	if err != nil {
		slog.Error("history query failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []persistence.YearRow{}
	}
	writeJSON(w, rows)
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	routes, err := s.DB.Routes()
	if err != nil {
		slog.Error("routes query failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if routes == nil {
		routes = []persistence.Route{}
	}
	writeJSON(w, routes)
}

// handleColonyHistory serves a colony's recorded population, one entry per
// year since its founding.
func (s *Server) handleColonyHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	name := r.PathValue("name")
	var canonical string
	s.Eng.View(func(sim *engine.Simulation) {
		for _, c := range sim.Colonies {
			if strings.EqualFold(c.Name, name) {
				canonical = c.Name
				return
			}
		}
	})
	if canonical == "" {
		http.Error(w, "colony not found", http.StatusNotFound)
		return
	}

	pops, err := s.DB.ColonyHistory(canonical)
	if err != nil {
		slog.Error("colony history query failed", "colony", canonical, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if pops == nil {
		pops = []int{}
	}
	writeJSON(w, map[string]any{"name": canonical, "population_by_year": pops})
}

// handlePace reports or sets the minimum wall time per simulated year.
func (s *Server) handlePace(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			IntervalMs int64 `json:"interval_ms"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.IntervalMs < 0 || req.IntervalMs > 60_000 {
			http.Error(w, "interval_ms must be 0-60000", http.StatusBadRequest)
			return
		}
		s.Eng.SetInterval(time.Duration(req.IntervalMs) * time.Millisecond)
		slog.Info("pace changed", "interval_ms", req.IntervalMs)
	}

	writeJSON(w, map[string]int64{"interval_ms": s.Eng.Interval().Milliseconds()})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
