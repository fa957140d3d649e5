package government

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/traits"
)

// Direct is rule by every cohort at once. A democracy follows the largest
// opinion bloc; consensus averages everyone.
type Direct struct {
	traits    traits.Traits
	consensus bool
}

func newDirect(polity Polity, consensus bool) *Direct {
	d := &Direct{consensus: consensus}
	d.infer(polity)
	return d
}

func (d *Direct) Kind() Kind {
	if d.consensus {
		return KindDirectConsensus
	}
	return KindDirectDemocracy
}

func (d *Direct) Traits() traits.Traits { return d.traits }

func (d *Direct) Officeholders() []*population.Population { return nil }

func (d *Direct) Govern(rng *rand.Rand, polity Polity, year int) (Government, Cause) {
	old := Philosophy(d)
	d.infer(polity)
	if now := Philosophy(d); now != old {
		slog.Debug("popular opinion shifted",
			"settlement", polity.Name(), "year", year, "from", old, "to", now)
	}
	return checkDemocraticOverthrow(rng, d, nil, polity)
}

func (d *Direct) infer(polity Polity) {
	if d.consensus {
		d.traits = traits.Average(traitsOf(polity.Pops()))
		return
	}
	d.traits = traits.Average(traitsOf(largestBloc(polity.Pops())))
}
