package government

import (
	"log/slog"
	"math/rand"
	"sort"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/traits"
)

// Representative is rule by an elected council, re-elected every term years.
// A democracy takes its line from the council's largest opinion bloc; a
// coalition averages the whole council.
type Representative struct {
	traits       traits.Traits
	Council      []*population.Population
	FoundingYear int
	Term         int
	coalition    bool
}

func newRepresentative(rng *rand.Rand, polity Polity, coalition bool) *Representative {
	r := &Representative{coalition: coalition}
	r.elect(rng, polity)
	r.FoundingYear = -1
	r.Term = dice.Between(rng, 2, 10)
	return r
}

func (r *Representative) Kind() Kind {
	if r.coalition {
		return KindRepresentativeCoalition
	}
	return KindRepresentativeDemocracy
}

func (r *Representative) Traits() traits.Traits { return r.traits }

func (r *Representative) Officeholders() []*population.Population { return r.Council }

func (r *Representative) Govern(rng *rand.Rand, polity Polity, year int) (Government, Cause) {
	if r.FoundingYear == -1 {
		r.FoundingYear = year
	} else if (r.FoundingYear-year)%r.Term == 0 {
		old := Philosophy(r)
		r.elect(rng, polity)
		slog.Debug("election held",
			"settlement", polity.Name(), "year", year,
			"from", old, "to", Philosophy(r), "retained", old == Philosophy(r))
	}
	return checkDemocraticOverthrow(rng, r, r.Council, polity)
}

func (r *Representative) elect(rng *rand.Rand, polity Polity) {
	release(r.Council)
	r.Council = nil

	pops := polity.Pops()
	switch len(pops) {
	case 0:
		return
	case 1:
		r.Council = []*population.Population{pops[0]}
		appoint(r.Council)
		r.infer()
		return
	}

	size := CouncilSize(polity)

	var pool []*population.Population
	for _, p := range pops {
		if p.Engagement() > 0.5 {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		pool = pops
	}
	candidates := dice.Sample(rng, pool, min(len(pool), size*3))

	byOpinion := make(map[int][]*population.Population)
	standing := make(map[*population.Population]bool, len(candidates))
	for _, c := range candidates {
		byOpinion[c.OpinionHash()] = append(byOpinion[c.OpinionHash()], c)
		standing[c] = true
	}

	votes := dice.NewCounter[*population.Population]()
	threshold := rng.Float64() * 0.5
	for _, voter := range pops {
		if standing[voter] || voter.Engagement() < threshold {
			continue
		}
		choices := byOpinion[voter.OpinionHash()]
		if len(choices) < size {
			choices = candidates
		}
		ranked := append([]*population.Population(nil), choices...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return voter.DistanceTo(ranked[i]) < voter.DistanceTo(ranked[j])
		})
		for _, c := range ranked[:min(size, len(ranked))] {
			votes.Add(c, 1)
		}
	}

	winners := votes.MostCommon(size)
	if len(winners) == 0 {
		winners = dice.Sample(rng, candidates, size)
	}
	r.Council = winners
	appoint(r.Council)
	r.infer()
}

func (r *Representative) infer() {
	if r.coalition {
		r.traits = traits.Average(traitsOf(r.Council))
		return
	}
	r.traits = traits.Average(traitsOf(largestBloc(r.Council)))
}

// largestBloc returns the pops sharing the most common opinion hash, ties to
// the first hash seen.
func largestBloc(pops []*population.Population) []*population.Population {
	counts := dice.NewCounter[int]()
	for _, p := range pops {
		counts.Add(p.OpinionHash(), 1)
	}
	top := counts.MostCommon(1)
	if len(top) == 0 {
		return nil
	}
	var bloc []*population.Population
	for _, p := range pops {
		if p.OpinionHash() == top[0] {
			bloc = append(bloc, p)
		}
	}
	return bloc
}
