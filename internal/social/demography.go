package social

import (
	"math/rand"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/population"
)

// ProcessBirthsAndDeaths ages every cohort one year, promotes full batches
// of descendants into new cohorts, gathers orphaned descendants and merges
// cohorts that have shrunk below a twentieth of target.
func ProcessBirthsAndDeaths(rng *rand.Rand, pops []*population.Population, birthModifier float64, target int) []*population.Population {
	for _, p := range pops {
		birth := float64(dice.Between(rng, 10, 80)) * birthModifier
		accident := float64(dice.Between(rng, 1, 10))
		p.BirthsAndDeaths(rng, birth, accident)
	}

	var parents []*population.Population
	for _, p := range pops {
		if p.Descendants > 0 {
			parents = append(parents, p)
		}
	}
	dice.Shuffle(rng, parents)
	for len(parents) > 0 {
		var batch []*population.Population
		sum := 0
		for sum < target && len(parents) > 0 {
			p := parents[len(parents)-1]
			parents = parents[:len(parents)-1]
			batch = append(batch, p)
			sum += p.Descendants
		}
		if sum >= target {
			pops = append(pops, population.FormNextGeneration(rng, batch))
		}
	}

	var kept, orphaned, small []*population.Population
	for _, p := range pops {
		switch {
		case p.Population() <= 0:
		case p.StartingPopulation <= 0:
			orphaned = append(orphaned, p)
		case float64(p.StartingPopulation) < float64(target)/20:
			small = append(small, p)
		default:
			kept = append(kept, p)
		}
	}
	if len(orphaned) > 0 {
		if next := population.FormNextGeneration(rng, orphaned); next.Population() > 0 {
			kept = append(kept, next)
		}
	}
	if len(small) > 0 {
		kept = append(kept, population.MergeSmall(rng, small)...)
	}
	return kept
}

// AgeCargo runs one year of births and deaths for cohorts in transit. There
// is no promotion or merging aboard, so the manifest never grows.
func AgeCargo(rng *rand.Rand, pops []*population.Population) []*population.Population {
	var out []*population.Population
	for _, p := range pops {
		p.BirthsAndDeaths(rng, float64(dice.Between(rng, 10, 80)), float64(dice.Between(rng, 1, 10)))
		if p.Population() > 0 {
			out = append(out, p)
		}
	}
	return out
}
