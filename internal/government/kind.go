package government

import (
	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/traits"
)

// Kind enumerates the forms of government.
type Kind uint8

const (
	KindDictatorship Kind = iota
	KindHereditaryDictatorship
	KindAutocracy
	KindHereditaryAutocracy
	KindRepresentativeDemocracy
	KindRepresentativeCoalition
	KindDirectDemocracy
	KindDirectConsensus
)

var kindNames = [...]string{
	"dictatorship",
	"hereditary dictatorship",
	"autocracy",
	"hereditary autocracy",
	"representative democracy",
	"representative coalition",
	"direct democracy",
	"direct consensus",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Autocratic reports whether k concentrates power in one person or council
// without elections.
func (k Kind) Autocratic() bool {
	return k <= KindHereditaryAutocracy
}

// AutocraticKinds are the kinds a drifting direct democracy may fall to.
var AutocraticKinds = []Kind{
	KindDictatorship,
	KindHereditaryDictatorship,
	KindAutocracy,
	KindHereditaryAutocracy,
}

// Preferred is the form of government a holder of t would choose.
func Preferred(t traits.Traits) Kind {
	if t.AutocraticDemocratic > 0.5 {
		if t.ConservativeProgressive < 0.5 {
			if t.TraditionalistTechnological < 0.5 {
				return KindRepresentativeDemocracy
			}
			return KindRepresentativeCoalition
		}
		if t.TraditionalistTechnological < 0.5 {
			return KindDirectDemocracy
		}
		return KindDirectConsensus
	}
	if t.ConservativeProgressive < 0.5 {
		if t.TraditionalistTechnological < 0.5 {
			return KindHereditaryDictatorship
		}
		return KindDictatorship
	}
	if t.TraditionalistTechnological < 0.5 {
		return KindHereditaryAutocracy
	}
	return KindAutocracy
}

// MajorityPreferred is the kind most pops prefer, ties to the first seen.
// Empty input yields KindDirectDemocracy.
func MajorityPreferred(pops []*population.Population) Kind {
	votes := dice.NewCounter[Kind]()
	for _, p := range pops {
		votes.Add(Preferred(p.Traits), 1)
	}
	if top := votes.MostCommon(1); len(top) > 0 {
		return top[0]
	}
	return KindDirectDemocracy
}

func preferences(pops []*population.Population) []Kind {
	out := make([]Kind, len(pops))
	for i, p := range pops {
		out[i] = Preferred(p.Traits)
	}
	return out
}
