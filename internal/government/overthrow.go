package government

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/population"
)

// Thresholds for classifying cohorts against their government.
const (
	unhappyEngagement = 0.75
	militantLean      = 0.75
	autocraticLean    = 0.25
)

type factions struct {
	loyal, unhappy, rebels []*population.Population
}

// classify sorts pops into loyal, unhappy and, among the unhappy, militant
// rebels. With autocratOnly set, rebels must also lean autocratic.
func classify(g Government, pops []*population.Population, autocratOnly bool) factions {
	var f factions
	for _, p := range pops {
		suitable := SuitableFor(g, p)
		switch {
		case suitable:
			f.loyal = append(f.loyal, p)
		case p.Engagement() > unhappyEngagement:
			f.unhappy = append(f.unhappy, p)
			if p.PacifistMilitaristic >= militantLean &&
				(!autocratOnly || p.AutocraticDemocratic < autocraticLean) {
				f.rebels = append(f.rebels, p)
			}
		}
	}
	return f
}

// checkOverthrow runs the peaceful revolution and violent overthrow tests
// every government faces after governing.
func checkOverthrow(rng *rand.Rand, g Government, polity Polity) (Government, Cause) {
	f := classify(g, polity.Pops(), false)
	if len(f.unhappy) > 0 && len(f.unhappy) > len(f.loyal)*5 {
		return replace(rng, g, polity, f.unhappy, preferences(f.unhappy), CauseRevolution)
	}
	if len(f.rebels) > 0 && len(f.rebels) >= len(f.loyal)*3 {
		return replace(rng, g, polity, f.rebels, preferences(f.rebels), CauseOverthrow)
	}
	return nil, CauseNone
}

// checkDemocraticOverthrow adds the slide into autocracy that elected
// governments are prone to before the common tests. council is nil for
// direct rule.
func checkDemocraticOverthrow(rng *rand.Rand, g Government, council []*population.Population, polity Polity) (Government, Cause) {
	f := classify(g, polity.Pops(), true)
	if len(f.loyal) > len(f.unhappy)*2 && g.Traits().AutocraticDemocratic < autocraticLean {
		options := AutocraticKinds
		if len(council) > 0 {
			options = preferences(council)
		}
		return replace(rng, g, polity, f.loyal, options, CauseAutocraticDrift)
	}
	if len(f.rebels) > 0 && len(f.rebels) > len(f.loyal)*3 {
		return replace(rng, g, polity, f.rebels, preferences(f.rebels), CauseCoup)
	}
	return checkOverthrow(rng, g, polity)
}

func replace(rng *rand.Rand, old Government, polity Polity, inner []*population.Population, options []Kind, cause Cause) (Government, Cause) {
	next := Establish(dice.Choice(rng, options), rng, polity, inner)
	slog.Debug("government replaced",
		"settlement", polity.Name(), "cause", cause.String(),
		"from", old.Kind().String(), "from_philosophy", Philosophy(old),
		"to", next.Kind().String(), "to_philosophy", Philosophy(next))
	return next, cause
}

// Establish constructs a government of kind and reseats its office holders
// from inner where the form allows it.
func Establish(kind Kind, rng *rand.Rand, polity Polity, inner []*population.Population) Government {
	g := New(kind, rng, polity)
	if len(inner) == 0 {
		return g
	}
	switch g := g.(type) {
	case *Autocracy:
		seats := len(g.Council)
		release(g.Council)
		if len(inner) >= seats {
			g.Council = dice.Sample(rng, inner, seats)
			appoint(g.Council)
		} else {
			g.Council = append([]*population.Population(nil), inner...)
			appoint(g.Council)
			g.electCouncil(rng, polity)
		}
		g.infer()
	case *Dictatorship:
		g.install(dice.Choice(rng, inner))
	}
	return g
}
