// Simulation ties the galaxy, its colonies and the ships between them
// together and advances them one year at a time.
package engine

import (
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/destiny/internal/galaxy"
)

// Transit is one ship setting off between two worlds.
type Transit struct {
	Year        int    `json:"year"`
	Ship        string `json:"ship"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Cargo       int    `json:"cargo"`
	Years       int    `json:"years"`
}

// YearReport summarises one simulated year.
type YearReport struct {
	Year        int       `json:"year"`
	Population  int       `json:"population"`
	Colonies    int       `json:"colonies"`
	Settlements int       `json:"settlements"`
	Pops        int       `json:"pops"`
	InFlight    int       `json:"in_flight"`
	Departures  int       `json:"departures"`
	Arrivals    int       `json:"arrivals"`
	NewColonies int       `json:"new_colonies"`
	Transits    []Transit `json:"transits"`
	Events      []Event   `json:"events"`
}

// Simulation holds the complete galaxy state.
type Simulation struct {
	Ctx      *Context
	Galaxy   *galaxy.Galaxy
	Colonies []*InhabitedPlanet
	InFlight []*Starship
	Year     int // next year to simulate
}

// NewSimulation seeds the home world on the galaxy's Earth.
func NewSimulation(ctx *Context, g *galaxy.Galaxy, headcounts []Headcount, multiplier float64) *Simulation {
	home := SeedHomeWorld(ctx, g.Earth(), headcounts, multiplier)
	return &Simulation{
		Ctx:      ctx,
		Galaxy:   g,
		Colonies: []*InhabitedPlanet{home},
	}
}

// Step simulates one year: ships in flight move and land, then every colony
// takes its turn.
func (s *Simulation) Step() YearReport {
	year := s.Year
	s.Year++
	report := YearReport{Year: year}

	var still []*Starship
	for _, ship := range s.InFlight {
		if !ship.Transit() {
			still = append(still, ship)
			continue
		}
		report.Arrivals++
		if colony := ship.Offload(year); colony != nil {
			s.Colonies = append(s.Colonies, colony)
			report.NewColonies++
		}
	}
	s.InFlight = still

	for _, colony := range s.Colonies {
		for _, ship := range colony.ProcessYear(year) {
			dest := ship.Destination.Label()
			if ship.DestinationColony != nil {
				dest = ship.DestinationColony.Name
			}
			report.Transits = append(report.Transits, Transit{
				Year:        year,
				Ship:        ship.Name,
				Origin:      colony.Name,
				Destination: dest,
				Cargo:       len(ship.Cargo),
				Years:       ship.ObjectiveRemaining,
			})
			s.InFlight = append(s.InFlight, ship)
		}
	}
	report.Departures = len(report.Transits)

	for _, colony := range s.Colonies {
		report.Population += colony.Population()
		report.Settlements += len(colony.Settlements)
		report.Pops += colony.Pops()
	}
	report.Colonies = len(s.Colonies)
	report.InFlight = len(s.InFlight)
	report.Events = s.Ctx.Events.Drain()

	slog.Info("year complete",
		"year", year+1,
		"population", humanize.Comma(int64(report.Population)),
		"colonies", report.Colonies,
		"states", report.Settlements,
		"pops", report.Pops,
		"departures", report.Departures,
		"arrivals", report.Arrivals,
		"in_flight", report.InFlight,
	)
	return report
}

// Total is the population of every colony plus cargo in flight.
func (s *Simulation) Total() int {
	n := 0
	for _, c := range s.Colonies {
		n += c.Population()
	}
	for _, ship := range s.InFlight {
		for _, p := range ship.Cargo {
			n += p.Population()
		}
	}
	return n
}
