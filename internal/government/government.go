// Package government implements the eight forms of rule a settlement can live
// under, how each governs year to year, and how each falls.
package government

import (
	"math"
	"math/rand"

	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/traits"
)

// Polity is anything a government can rule: in practice a settlement.
type Polity interface {
	Name() string
	Pops() []*population.Population
	Population() int
	// TargetSize is the nominal cohort size, used to scale councils.
	TargetSize() int
}

// Government rules a polity. Govern is called once per year and returns
// either nil (no change) or a freshly constructed replacement and the cause.
type Government interface {
	Kind() Kind
	Traits() traits.Traits
	Govern(rng *rand.Rand, polity Polity, year int) (Government, Cause)
	// Officeholders are the cohorts that must not emigrate or merge.
	Officeholders() []*population.Population
}

// Cause explains why a government was replaced.
type Cause uint8

const (
	CauseNone           Cause = iota
	CauseRevolution           // peaceful, unhappy majority
	CauseOverthrow            // violent, militant minority
	CauseAutocraticDrift      // loyal majority under an autocratic-leaning democracy
	CauseCoup                 // autocratic militants seize a democracy
)

var causeNames = [...]string{"none", "revolution", "overthrow", "autocratic drift", "coup"}

func (c Cause) String() string {
	if int(c) < len(causeNames) {
		return causeNames[c]
	}
	return "unknown"
}

// New constructs a government of kind over polity.
func New(kind Kind, rng *rand.Rand, polity Polity) Government {
	switch kind {
	case KindDictatorship, KindHereditaryDictatorship:
		return newDictatorship(rng, polity, kind == KindHereditaryDictatorship)
	case KindAutocracy, KindHereditaryAutocracy:
		return newAutocracy(rng, polity, kind == KindHereditaryAutocracy)
	case KindRepresentativeDemocracy, KindRepresentativeCoalition:
		return newRepresentative(rng, polity, kind == KindRepresentativeCoalition)
	default:
		return newDirect(polity, kind == KindDirectConsensus)
	}
}

// CouncilSize is ceil(sqrt(population / target / 50)).
func CouncilSize(polity Polity) int {
	target := max(polity.TargetSize(), 1)
	return int(math.Ceil(math.Sqrt(float64(polity.Population()) / float64(target) / 50)))
}

// SuitableFor reports whether g is close enough to pop's leanings for pop to
// accept it.
func SuitableFor(g Government, pop *population.Population) bool {
	return traits.Suits(g.Traits(), pop.Traits, pop.Tolerance)
}

// Philosophy names the government's opinion hash.
func Philosophy(g Government) string {
	return g.Traits().Philosophy()
}

// Support is the population share of pops the government suits.
func Support(g Government, pops []*population.Population) float64 {
	total, loyal := 0, 0
	for _, p := range pops {
		total += p.Population()
		if SuitableFor(g, p) {
			loyal += p.Population()
		}
	}
	if total == 0 {
		return 0
	}
	return float64(loyal) / float64(total)
}

func traitsOf(pops []*population.Population) []traits.Traits {
	out := make([]traits.Traits, len(pops))
	for i, p := range pops {
		out[i] = p.Traits
	}
	return out
}

func appoint(pops []*population.Population) {
	for _, p := range pops {
		p.Mergeable = false
	}
}

func release(pops []*population.Population) {
	for _, p := range pops {
		p.Mergeable = true
	}
}

// present filters candidates to living cohorts still in the polity.
func present(polity Polity, candidates []*population.Population) []*population.Population {
	in := make(map[*population.Population]bool, len(polity.Pops()))
	for _, p := range polity.Pops() {
		in[p] = true
	}
	var out []*population.Population
	for _, c := range candidates {
		if in[c] && !c.IsDead() {
			out = append(out, c)
		}
	}
	return out
}

func contains(pops []*population.Population, p *population.Population) bool {
	for _, q := range pops {
		if q == p {
			return true
		}
	}
	return false
}
