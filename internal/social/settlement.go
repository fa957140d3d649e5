// Package social provides settlements: groups of cohorts under one
// government that grow, govern themselves, feed themselves and shed
// emigrants each year.
package social

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/government"
	"github.com/talgya/destiny/internal/population"
)

// Yearly happiness adjustments.
const (
	newRegimeGoodwill  = 0.5
	homeWorldPressure  = -0.2
	moverEffortDivisor = 4
)

// Namer yields a fresh place name for a culture.
type Namer interface {
	Name(rng *rand.Rand, culture string) string
}

// Settlement is a state on a planet.
type Settlement struct {
	ID               uuid.UUID
	FoundingYear     int
	Members          []*population.Population
	Government       government.Government
	PopulationByYear []int

	name       string
	targetSize int
}

// New founds a settlement of pops under a government of kind.
func New(rng *rand.Rand, name string, pops []*population.Population, kind government.Kind, foundingYear, targetSize int) *Settlement {
	s := &Settlement{
		ID:           uuid.New(),
		name:         name,
		FoundingYear: foundingYear,
		Members:      pops,
		targetSize:   targetSize,
	}
	s.Government = government.New(kind, rng, s)
	return s
}

// ForPops founds a settlement whose government is the form most of pops
// prefer. An empty name is drawn from namer for the dominant culture.
func ForPops(rng *rand.Rand, namer Namer, pops []*population.Population, name string, foundingYear, targetSize int) *Settlement {
	if name == "" {
		name = namer.Name(rng, DominantCulture(pops))
	}
	return New(rng, name, pops, government.MajorityPreferred(pops), foundingYear, targetSize)
}

// DominantCulture is the culture with the greatest summed ancestry share.
func DominantCulture(pops []*population.Population) string {
	cultures := dice.NewCounter[string]()
	for _, p := range pops {
		for _, s := range p.Ancestry {
			cultures.Add(s.Culture, float64(s.Percent))
		}
	}
	if top := cultures.MostCommon(1); len(top) > 0 {
		return top[0]
	}
	return ""
}

// Name is the state's place name.
func (s *Settlement) Name() string { return s.name }

// Pops returns the member cohorts.
func (s *Settlement) Pops() []*population.Population { return s.Members }

// TargetSize is the preferred cohort size the state was founded with.
func (s *Settlement) TargetSize() int { return s.targetSize }

// Population sums every cohort.
func (s *Settlement) Population() int {
	n := 0
	for _, p := range s.Members {
		n += p.Population()
	}
	return n
}

// Admit adds pop to the settlement.
func (s *Settlement) Admit(p *population.Population) {
	s.Members = append(s.Members, p)
}

// Accepts reports whether the current government suits p.
func (s *Settlement) Accepts(p *population.Population) bool {
	return government.SuitableFor(s.Government, p)
}

// Ancestries is the population-weighted culture mix, top five, as
// percentages.
func (s *Settlement) Ancestries() []population.Share {
	cultures := dice.NewCounter[string]()
	total := 0.0
	for _, p := range s.Members {
		for _, a := range p.Ancestry {
			w := float64(p.Population()) * float64(a.Percent)
			cultures.Add(a.Culture, w)
			total += w
		}
	}
	var out []population.Share
	for _, c := range cultures.MostCommon(5) {
		pct := 0
		if total > 0 {
			pct = int(math.Round(cultures.Count(c) / total * 100))
		}
		out = append(out, population.Share{Culture: c, Percent: pct})
	}
	return out
}

// GovernmentSupport is the population share the government suits.
func (s *Settlement) GovernmentSupport() float64 {
	return government.Support(s.Government, s.Members)
}

// Emigrant is a cohort leaving the settlement it came from.
type Emigrant struct {
	Origin *Settlement
	Pop    *population.Population
}

// Output is what a settlement yields for its planet in one year.
type Output struct {
	Emigrants        []Emigrant
	Manufacturing    int
	Science          int
	AverageHappiness float64
	Transition       government.Cause
}

// ProcessYear runs demography, governance, morale, emigration and the
// harvest for one year.
func (s *Settlement) ProcessYear(rng *rand.Rand, year int, birthModifier float64, homeWorld bool) Output {
	s.Members = ProcessBirthsAndDeaths(rng, s.Members, birthModifier, s.targetSize)
	s.PopulationByYear = append(s.PopulationByYear, s.Population())
	if len(s.Members) == 0 || s.Population() == 0 {
		return Output{}
	}

	var out Output
	if next, cause := s.Government.Govern(rng, s, year); next != nil {
		s.install(next)
		out.Transition = cause
		for _, p := range s.Members {
			p.AdjustHappiness(newRegimeGoodwill)
		}
		slog.Info("government changed",
			"settlement", s.name, "year", year, "cause", cause.String(),
			"government", next.Kind().String(), "philosophy", government.Philosophy(next))
	}

	for _, p := range s.Members {
		if homeWorld {
			p.AdjustHappiness(homeWorldPressure)
		}
		p.Wanderlust++
	}

	requirement := int(math.RoundToEven(float64(s.Population()) / float64(s.targetSize) / 3))

	var stay, move []*population.Population
	for _, p := range s.Members {
		if p.WantsToMove(rng) {
			move = append(move, p)
		} else {
			stay = append(stay, p)
		}
	}
	if len(stay) == 0 {
		remainer := dice.Choice(rng, move)
		move = dice.Remove(move, remainer)
		stay = append(stay, remainer)
	}
	s.Members = stay

	effort := len(stay) + len(move)/moverEffortDivisor
	if effort < requirement {
		for _, p := range stay {
			p.Starve()
		}
		for _, p := range move {
			p.Starve()
		}
	} else {
		surplus := effort - requirement
		out.Science = int(math.RoundToEven(s.Government.Traits().TraditionalistTechnological * float64(surplus)))
		out.Manufacturing = surplus - out.Science
	}

	happiness := 0.0
	for _, p := range stay {
		happiness += p.Happiness()
	}
	out.AverageHappiness = happiness / float64(len(stay))

	for _, p := range move {
		out.Emigrants = append(out.Emigrants, Emigrant{Origin: s, Pop: p})
	}
	return out
}

// install swaps in a new government, freeing the old office holders before
// binding the new ones.
func (s *Settlement) install(next government.Government) {
	for _, p := range s.Government.Officeholders() {
		p.Mergeable = true
	}
	s.Government = next
	for _, p := range next.Officeholders() {
		p.Mergeable = false
	}
}
