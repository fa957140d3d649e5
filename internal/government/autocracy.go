package government

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/traits"
)

// Autocracy is rule by an appointed council that tops itself up from
// suitable cohorts. The hereditary form first refills lost seats from the
// council's descendant cohorts.
type Autocracy struct {
	traits     traits.Traits
	Council    []*population.Population
	hereditary bool
}

func newAutocracy(rng *rand.Rand, polity Polity, hereditary bool) *Autocracy {
	a := &Autocracy{hereditary: hereditary}
	a.electCouncil(rng, polity)
	return a
}

func (a *Autocracy) Kind() Kind {
	if a.hereditary {
		return KindHereditaryAutocracy
	}
	return KindAutocracy
}

func (a *Autocracy) Traits() traits.Traits { return a.traits }

func (a *Autocracy) Officeholders() []*population.Population { return a.Council }

func (a *Autocracy) Govern(rng *rand.Rand, polity Polity, year int) (Government, Cause) {
	old := Philosophy(a)
	a.electCouncil(rng, polity)
	if now := Philosophy(a); now != old {
		slog.Debug("council shifted",
			"settlement", polity.Name(), "year", year, "from", old, "to", now)
	}
	return checkOverthrow(rng, a, polity)
}

func (a *Autocracy) electCouncil(rng *rand.Rand, polity Polity) {
	if a.hereditary {
		seats := len(a.Council)
		var heirs []*population.Population
		for _, c := range a.Council {
			for _, h := range c.DescendantPops {
				if !contains(heirs, h) {
					heirs = append(heirs, h)
				}
			}
		}
		a.housekeeping(rng, polity)
		var eligible []*population.Population
		for _, h := range present(polity, heirs) {
			if !contains(a.Council, h) {
				eligible = append(eligible, h)
			}
		}
		a.appoint(dice.Sample(rng, eligible, max(0, seats-len(a.Council))))
	} else {
		a.housekeeping(rng, polity)
	}
	a.topUp(rng, polity)
	a.infer()
}

// housekeeping drops councillors who died or left, and seeds an empty
// council with one autocratically minded cohort.
func (a *Autocracy) housekeeping(rng *rand.Rand, polity Polity) {
	a.Council = present(polity, a.Council)
	if len(a.Council) > 0 {
		return
	}
	pops := polity.Pops()
	if len(pops) == 0 {
		return
	}
	var candidates []*population.Population
	for _, p := range pops {
		if p.AutocraticDemocratic < 0.5 {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = pops
	}
	a.appoint([]*population.Population{dice.Choice(rng, candidates)})
	a.infer()
}

func (a *Autocracy) topUp(rng *rand.Rand, polity Polity) {
	required := CouncilSize(polity) - len(a.Council)
	if required <= 0 {
		return
	}
	var candidates []*population.Population
	for _, p := range polity.Pops() {
		if !contains(a.Council, p) && SuitableFor(a, p) {
			candidates = append(candidates, p)
		}
	}
	a.appoint(dice.Sample(rng, candidates, required))
}

func (a *Autocracy) appoint(pops []*population.Population) {
	appoint(pops)
	a.Council = append(a.Council, pops...)
}

func (a *Autocracy) infer() {
	a.traits = traits.Average(traitsOf(a.Council))
}
