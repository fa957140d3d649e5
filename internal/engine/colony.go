package engine

import (
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/galaxy"
	"github.com/talgya/destiny/internal/government"
	"github.com/talgya/destiny/internal/physics"
	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/science"
	"github.com/talgya/destiny/internal/social"
)

// InhabitedPlanet is a settled world: its states, its research and industry,
// and the ships docked there.
type InhabitedPlanet struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Planet       *galaxy.Planet `json:"-"`
	FoundingYear int            `json:"founding_year"`
	IsHomeWorld  bool           `json:"is_home_world"`

	Settlements []*social.Settlement `json:"-"`

	// Research and industry
	ScienceLevel         int             `json:"science_level"`
	ScienceSurplus       float64         `json:"science_surplus"`
	ManufacturingBase    int             `json:"manufacturing_base"`
	ManufacturingSurplus int             `json:"manufacturing_surplus"`
	Discoveries          []*science.Node `json:"-"`

	PopulationByYear []int       `json:"population_by_year"`
	Ships            []*Starship `json:"-"`
	Faction          *Faction    `json:"-"`

	ctx *Context
}

// NewInhabitedPlanet settles planet and registers it with ctx. It starts with
// only the root of the technology tree.
func NewInhabitedPlanet(ctx *Context, planet *galaxy.Planet, name string, foundingYear int) *InhabitedPlanet {
	ip := &InhabitedPlanet{
		ID:                uuid.New(),
		Name:              name,
		Planet:            planet,
		FoundingYear:      foundingYear,
		ManufacturingBase: 1,
		Discoveries:       []*science.Node{ctx.TechTree},
		ctx:               ctx,
	}
	ctx.register(ip)
	return ip
}

// Population sums every settlement.
func (ip *InhabitedPlanet) Population() int {
	n := 0
	for _, s := range ip.Settlements {
		n += s.Population()
	}
	return n
}

// Pops counts the cohorts on the planet.
func (ip *InhabitedPlanet) Pops() int {
	n := 0
	for _, s := range ip.Settlements {
		n += len(s.Members)
	}
	return n
}

// birthModifier damps births once a world holds more than Earth does today.
func (ip *InhabitedPlanet) birthModifier() float64 {
	return 1 / math.Max(float64(ip.Population())/physics.HomeWorldCrowding, 1)
}

// ProcessYear advances every settlement one year, upgrades research, moves
// emigrants and returns the ships that set off this year.
func (ip *InhabitedPlanet) ProcessYear(year int) []*Starship {
	slog.Debug("processing colony", "colony", ip.Name, "year", year, "local_year", year-ip.FoundingYear,
		"population", humanize.Comma(int64(ip.Population())), "pops", ip.Pops(), "states", len(ip.Settlements))

	modifier := ip.birthModifier()
	var emigrants []social.Emigrant
	byGovernment := make(map[int][]*social.Settlement)
	for _, s := range ip.Settlements {
		out := s.ProcessYear(ip.ctx.RNG, year, modifier, ip.IsHomeWorld)
		emigrants = append(emigrants, out.Emigrants...)
		ip.ScienceSurplus += float64(out.Science) * out.AverageHappiness
		ip.upgradeScience(year)
		ip.ManufacturingSurplus += ip.ManufacturingBase * out.Manufacturing

		if out.Transition != government.CauseNone {
			ip.ctx.Events.Record(year, CategoryGovernment, "%s on %s became a %s after a %s",
				s.Name(), ip.Name, s.Government.Kind(), out.Transition)
		}
		hash := s.Government.Traits().OpinionHash()
		byGovernment[hash] = append(byGovernment[hash], s)
	}
	ip.PopulationByYear = append(ip.PopulationByYear, ip.Population())

	departed, docked := ip.migrate(emigrants, byGovernment, year)
	ip.Ships = nil
	for _, ship := range docked {
		if ip.tradeRun(ship) {
			departed = append(departed, ship)
		} else {
			ip.Ships = append(ip.Ships, ship)
		}
	}
	return departed
}

// upgradeScience spends surplus on the next level, unlocking a random
// technology from the frontier.
func (ip *InhabitedPlanet) upgradeScience(year int) {
	cost := science.UpgradeCost(ip.ScienceLevel)
	if ip.ScienceSurplus < cost {
		return
	}
	ip.ScienceSurplus -= cost
	ip.ScienceLevel++

	frontier := science.Frontier(ip.Discoveries)
	if len(frontier) == 0 {
		return
	}
	choice := dice.Choice(ip.ctx.RNG, frontier)
	ip.Discoveries = append(ip.Discoveries, choice)
	slog.Info("science upgrade", "colony", ip.Name, "level", ip.ScienceLevel, "unlocked", choice.String(), "year", year)
	ip.ctx.Events.Record(year, CategoryScience, "%s reached science level %d and unlocked %s",
		ip.Name, ip.ScienceLevel, choice)
}

// welcoming is the first settlement whose government suits p.
func (ip *InhabitedPlanet) welcoming(p *population.Population) *social.Settlement {
	for _, s := range ip.Settlements {
		if s.Accepts(p) {
			return s
		}
	}
	return nil
}

// reachable lists the colonies within maxRange of ip with their distances,
// nearest first.
func (ip *InhabitedPlanet) reachable(maxRange float64) (colonies []*InhabitedPlanet, distances []float64) {
	for _, n := range ip.Planet.Star.Within(maxRange) {
		for _, p := range n.Star.HabitablePlanets() {
			if c := ip.ctx.ColonyAt(p); c != nil {
				colonies = append(colonies, c)
				distances = append(distances, n.Distance)
			}
		}
	}
	return colonies, distances
}

// tradeRun sends an idle ship to a colony in range, favouring large, near
// ones. It reports whether the ship left.
func (ip *InhabitedPlanet) tradeRun(ship *Starship) bool {
	colonies, distances := ip.reachable(ship.Range())
	if len(colonies) == 0 {
		return false
	}
	weights := make([]float64, len(colonies))
	for i, c := range colonies {
		weights[i] = float64(c.Population()) / distances[i]
	}
	dest := colonies[dice.Weighted(ip.ctx.RNG, weights)]
	if err := ship.TravelTo(ip, nil, dest.Planet); err != nil {
		slog.Warn("trade run aborted", "ship", ship.Name, "err", err)
		return false
	}
	return true
}
