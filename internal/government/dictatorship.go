package government

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/traits"
)

// Dictatorship is rule by one cohort. The hereditary form passes power to
// the dictator's descendant cohorts first.
type Dictatorship struct {
	traits     traits.Traits
	Dictator   *population.Population
	hereditary bool
}

func newDictatorship(rng *rand.Rand, polity Polity, hereditary bool) *Dictatorship {
	d := &Dictatorship{hereditary: hereditary}
	if pops := polity.Pops(); len(pops) > 0 {
		d.install(dice.Choice(rng, pops))
	}
	return d
}

func (d *Dictatorship) Kind() Kind {
	if d.hereditary {
		return KindHereditaryDictatorship
	}
	return KindDictatorship
}

func (d *Dictatorship) Traits() traits.Traits { return d.traits }

func (d *Dictatorship) Officeholders() []*population.Population {
	if d.Dictator == nil {
		return nil
	}
	return []*population.Population{d.Dictator}
}

func (d *Dictatorship) install(p *population.Population) {
	if d.Dictator != nil {
		d.Dictator.Mergeable = true
	}
	d.Dictator = p
	p.Mergeable = false
	d.traits = p.Traits
}

func (d *Dictatorship) Govern(rng *rand.Rand, polity Polity, year int) (Government, Cause) {
	if d.Dictator == nil || d.Dictator.IsDead() {
		if pops := polity.Pops(); len(pops) > 0 {
			d.install(d.successor(rng, polity))
			slog.Debug("dictator succeeded",
				"settlement", polity.Name(), "year", year, "philosophy", Philosophy(d))
		}
	}
	return checkOverthrow(rng, d, polity)
}

func (d *Dictatorship) successor(rng *rand.Rand, polity Polity) *population.Population {
	if d.hereditary && d.Dictator != nil {
		if heirs := present(polity, d.Dictator.DescendantPops); len(heirs) > 0 {
			return dice.Choice(rng, heirs)
		}
	}
	var suitable []*population.Population
	for _, p := range polity.Pops() {
		if SuitableFor(d, p) {
			suitable = append(suitable, p)
		}
	}
	if len(suitable) == 0 {
		suitable = polity.Pops()
	}
	return dice.Choice(rng, suitable)
}
