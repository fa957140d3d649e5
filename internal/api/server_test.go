package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/destiny/internal/engine"
	"github.com/talgya/destiny/internal/galaxy"
	"github.com/talgya/destiny/internal/persistence"
)

func newServer(t *testing.T, adminKey string) (*Server, http.Handler) {
	t.Helper()
	ctx := engine.NewContext(rand.New(rand.NewSource(3)), 1000)
	sim := engine.NewSimulation(ctx, galaxy.Generate(galaxy.SmallTestConfig()),
		[]engine.Headcount{{Culture: "Chile", Population: 8_000}}, 1)
	eng := engine.NewEngine(sim, 2)
	eng.Run()
	s := &Server{Eng: eng, AdminKey: adminKey}
	return s, s.Handler()
}

// newHistoryServer runs two years with every year recorded to a fresh
// history database.
func newHistoryServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.SaveRun(3, 2, 1000))

	ctx := engine.NewContext(rand.New(rand.NewSource(3)), 1000)
	sim := engine.NewSimulation(ctx, galaxy.Generate(galaxy.SmallTestConfig()),
		[]engine.Headcount{{Culture: "Chile", Population: 8_000}}, 1)
	eng := engine.NewEngine(sim, 2)
	eng.OnYear = func(r engine.YearReport) {
		require.NoError(t, db.RecordYear(sim, r))
	}
	eng.Run()
	s := &Server{Eng: eng, DB: db}
	return s, s.Handler()
}

func get(t *testing.T, h http.Handler, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestStatus(t *testing.T) {
	_, h := newServer(t, "")
	var status map[string]any
	rec := get(t, h, "/api/v1/status", &status)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), status["year"])
	assert.Equal(t, false, status["running"])
	assert.GreaterOrEqual(t, status["colonies"], float64(1))
}

func TestColonyDetail(t *testing.T) {
	_, h := newServer(t, "")

	var colonies []colonySummary
	get(t, h, "/api/v1/colonies", &colonies)
	require.NotEmpty(t, colonies)
	assert.Equal(t, "Earth", colonies[0].Name)
	assert.Equal(t, "Sol-d", colonies[0].Planet)

	var detail struct {
		Name             string        `json:"name"`
		PopulationByYear []int         `json:"population_by_year"`
		States           []stateDetail `json:"states"`
	}
	rec := get(t, h, "/api/v1/colony/earth", &detail)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Earth", detail.Name)
	assert.Len(t, detail.PopulationByYear, 2)
	require.NotEmpty(t, detail.States)
	assert.NotEmpty(t, detail.States[0].Government)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/colony/atlantis", nil).Code)
}

func TestEventsLimit(t *testing.T) {
	_, h := newServer(t, "")
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/events?n=zero", nil).Code)

	var events []engine.Event
	rec := get(t, h, "/api/v1/events?n=1", &events)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.LessOrEqual(t, len(events), 1)
}

func TestHistoryDisabledWithoutDB(t *testing.T) {
	_, h := newServer(t, "")
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/stats/history", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/routes", nil).Code)
}

func TestStatusIncludesRunSeed(t *testing.T) {
	_, h := newHistoryServer(t)
	var status map[string]any
	get(t, h, "/api/v1/status", &status)
	assert.Equal(t, "3", status["seed"])
}

func TestColonyHistoryFromDB(t *testing.T) {
	_, h := newHistoryServer(t)

	var history struct {
		Name             string `json:"name"`
		PopulationByYear []int  `json:"population_by_year"`
	}
	rec := get(t, h, "/api/v1/colony/EARTH/history", &history)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Earth", history.Name)
	require.Len(t, history.PopulationByYear, 2)
	assert.Positive(t, history.PopulationByYear[1])

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/colony/atlantis/history", nil).Code)
}

func TestEventsFallBackToHistory(t *testing.T) {
	s, h := newHistoryServer(t)

	var inMemory []engine.Event
	var sim *engine.Simulation
	s.Eng.View(func(v *engine.Simulation) {
		inMemory = v.Ctx.Events.Recent()
		sim = v
	})
	archived := engine.YearReport{Year: 50}
	for _, d := range []string{"archived 0", "archived 1", "archived 2"} {
		archived.Events = append(archived.Events, engine.Event{Year: 50, Category: engine.CategoryColony, Description: d})
	}
	require.NoError(t, s.DB.RecordYear(sim, archived))

	var events []engine.Event
	rec := get(t, h, "/api/v1/events?n=5000", &events)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, events, len(inMemory)+3)
	assert.Equal(t, "archived 2", events[len(events)-1].Description)
	assert.Equal(t, "archived 0", events[len(events)-3].Description)

	var last []engine.Event
	get(t, h, "/api/v1/events?n=1", &last)
	require.Len(t, last, 1)
}

func TestPaceRequiresAdmin(t *testing.T) {
	s, h := newServer(t, "secret")
	post := func(auth string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pace", strings.NewReader(`{"interval_ms": 250}`))
		if auth != "" {
			req.Header.Set("Authorization", "Bearer "+auth)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, post("wrong"))
	assert.Equal(t, time.Duration(0), s.Eng.Interval())

	assert.Equal(t, http.StatusOK, post("secret"))
	assert.Equal(t, 250*time.Millisecond, s.Eng.Interval())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
	assert.Positive(t, rl.RetryAfter("a"))
}

func TestRateLimiterWindowReopens(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))
	assert.Zero(t, rl.RetryAfter("nobody"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("a"))
}

func TestRateLimitMiddlewareAnswers429(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	h := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	call := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/api/v1/routes", nil))
		return rec
	}

	assert.Equal(t, http.StatusNoContent, call().Code)
	rec := call()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestClientOf(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientOf(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientOf(req))
}
