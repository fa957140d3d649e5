// Package export writes the final starmap: every system, its planets and the
// colonies on them, the factions and the busiest trade routes.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/talgya/destiny/internal/engine"
	"github.com/talgya/destiny/internal/galaxy"
	"github.com/talgya/destiny/internal/government"
	"github.com/talgya/destiny/internal/population"
)

// Version of the starmap format.
const Version = 1

type Header struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`
	Years   int   `json:"years"`
}

type Starmap struct {
	Header   Header    `json:"header"`
	Systems  []System  `json:"systems"`
	Factions []Faction `json:"factions"`
	Routes   []Route   `json:"routes"`
}

type StarInfo struct {
	SpectralType string  `json:"spectral_type"`
	Luminosity   float64 `json:"luminosity"`
	Mass         float64 `json:"mass"`
}

type System struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
	Star     StarInfo   `json:"star"`
	Planets  []Planet   `json:"planets"`
}

type Planet struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Mass               float64   `json:"mass"`
	OrbitalRadius      float64   `json:"orbital_radius"`
	YearLengthHours    float64   `json:"year_length_hours"`
	DayLengthHours     float64   `json:"day_length_hours"`
	Solid              bool      `json:"solid"`
	GreenhouseFactor   int       `json:"greenhouse_factor"`
	SurfaceTemperature int       `json:"surface_temperature"`
	Habitable          bool      `json:"habitable"`
	Colony             *Colony   `json:"colony,omitempty"`
}

type Colony struct {
	ID               uuid.UUID `json:"id"`
	Founded          int       `json:"founded"`
	PopulationByYear []int     `json:"population_by_year"`
	ScienceLevel     int       `json:"science_level"`
	Faction          string    `json:"faction,omitempty"`
	Countries        []Country `json:"countries"`
}

type Government struct {
	Type       string  `json:"type"`
	Philosophy string  `json:"philosophy"`
	Support    float64 `json:"support"`
}

type Country struct {
	ID               uuid.UUID          `json:"id"`
	Founded          int                `json:"founded"`
	Name             string             `json:"name"`
	PopulationByYear []int              `json:"population_by_year"`
	Ancestries       []population.Share `json:"ancestries"`
	Government       Government         `json:"government"`
}

type Faction struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Founded int       `json:"founded"`
	Members []string  `json:"members"`
}

// Route is the traffic between two worlds in one year.
type Route struct {
	Year        int     `json:"year"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Ships       int     `json:"ships"`
	Share       float64 `json:"share"` // of that year's departures
}

// Build assembles the starmap from the simulation's final state and every
// transit it produced.
func Build(sim *engine.Simulation, seed int64, transits []engine.Transit) Starmap {
	m := Starmap{
		Header: Header{Version: Version, Seed: seed, Years: sim.Year},
		Routes: Routes(transits),
	}
	for _, s := range sim.Galaxy.Stars {
		m.Systems = append(m.Systems, system(sim.Ctx, s))
	}
	for _, f := range sim.Ctx.Factions {
		ef := Faction{ID: f.ID, Name: f.Name, Founded: f.Founded}
		for _, c := range f.Members {
			ef.Members = append(ef.Members, c.Name)
		}
		m.Factions = append(m.Factions, ef)
	}
	return m
}

func system(ctx *engine.Context, s *galaxy.Star) System {
	out := System{
		ID:       s.ID,
		Name:     s.Name,
		Position: [3]float64{s.Position.X, s.Position.Y, s.Position.Z},
		Star:     StarInfo{SpectralType: s.SpectralType, Luminosity: s.Luminosity, Mass: s.Mass},
	}
	for _, p := range s.Planets {
		ep := Planet{
			ID:                 p.ID,
			Name:               p.Label(),
			Mass:               p.Mass,
			OrbitalRadius:      p.OrbitalRadius,
			YearLengthHours:    p.OrbitalPeriodHours(),
			DayLengthHours:     p.DayLengthHours,
			Solid:              p.Solid,
			GreenhouseFactor:   p.GreenhouseFactor,
			SurfaceTemperature: p.SurfaceTemperature(),
			Habitable:          p.Habitable(),
		}
		if c := ctx.ColonyAt(p); c != nil {
			ep.Name = c.Name
			ep.Colony = colony(c)
		}
		out.Planets = append(out.Planets, ep)
	}
	return out
}

func colony(c *engine.InhabitedPlanet) *Colony {
	out := &Colony{
		ID:               c.ID,
		Founded:          c.FoundingYear,
		PopulationByYear: c.PopulationByYear,
		ScienceLevel:     c.ScienceLevel,
	}
	if c.Faction != nil {
		out.Faction = c.Faction.Name
	}
	for _, s := range c.Settlements {
		out.Countries = append(out.Countries, Country{
			ID:               s.ID,
			Founded:          s.FoundingYear,
			Name:             s.Name(),
			PopulationByYear: s.PopulationByYear,
			Ancestries:       s.Ancestries(),
			Government: Government{
				Type:       s.Government.Kind().String(),
				Philosophy: government.Philosophy(s.Government),
				Support:    s.GovernmentSupport(),
			},
		})
	}
	return out
}

// Routes groups transits by year, origin and destination. Each route's share
// is its fraction of that year's departures. Years are in order; within a
// year the busiest route comes first.
func Routes(transits []engine.Transit) []Route {
	type key struct {
		year         int
		origin, dest string
	}
	counts := make(map[key]int)
	perYear := make(map[int]int)
	var order []key
	for _, t := range transits {
		k := key{t.Year, t.Origin, t.Destination}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
		perYear[t.Year]++
	}

	routes := make([]Route, 0, len(order))
	for _, k := range order {
		routes = append(routes, Route{
			Year:        k.year,
			Origin:      k.origin,
			Destination: k.dest,
			Ships:       counts[k],
			Share:       float64(counts[k]) / float64(perYear[k.year]),
		})
	}
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Year != routes[j].Year {
			return routes[i].Year < routes[j].Year
		}
		return routes[i].Ships > routes[j].Ships
	})
	return routes
}

// Write stores m at path as a JSON header line followed by the JSON
// starmap, zstd-compressed.
func Write(path string, m Starmap) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)
	hb, _ := json.Marshal(m.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(&m); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd close: %w", err)
	}
	return f.Close()
}

// Read loads a starmap written by Write.
func Read(path string) (Starmap, error) {
	var m Starmap
	f, err := os.Open(path)
	if err != nil {
		return m, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return m, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	if _, err := br.ReadBytes('\n'); err != nil {
		return m, fmt.Errorf("read header: %w", err)
	}
	if err := json.NewDecoder(br).Decode(&m); err != nil {
		return m, fmt.Errorf("json decode: %w", err)
	}
	if m.Header.Version != Version {
		return m, fmt.Errorf("starmap version %d, want %d", m.Header.Version, Version)
	}
	return m, nil
}
