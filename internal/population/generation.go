package population

import (
	"math"
	"math/rand"

	"github.com/talgya/destiny/internal/dice"
)

// TraitJitter is the leaning deviation a new generation drifts by.
const TraitJitter = 0.125

// FormNextGeneration moves every descendant of pops, and the matching share of
// their children, into one new cohort. Ancestry is the top three weighted
// cultures normalised to 100. The parents keep a back-reference to it.
func FormNextGeneration(rng *rand.Rand, pops []*Population) *Population {
	size := 0
	peopleYears := 0.0
	var children [ChildSlots]int
	cultures := dice.NewCounter[string]()
	generation := 0

	for _, p := range pops {
		percent := 0.0
		if total := p.Population(); total > 0 {
			percent = float64(p.Descendants) / float64(total)
		}
		size += p.Descendants
		peopleYears += float64(p.Descendants) * p.AverageDescendantAge
		p.Descendants = 0
		for n := range p.Children {
			moving := int(math.Floor(percent * float64(p.Children[n])))
			children[n] += moving
			p.Children[n] -= moving
		}
		for _, s := range p.Ancestry {
			cultures.Add(s.Culture, float64(s.Percent))
		}
		generation = max(generation, p.Generation)
	}

	top := cultures.MostCommon(3)
	total := 0.0
	for _, c := range top {
		total += cultures.Count(c)
	}
	ancestry := make([]Share, 0, len(top))
	for _, c := range top {
		percent := 0
		if total > 0 {
			percent = int(math.RoundToEven(cultures.Count(c) / total * 100))
		}
		ancestry = append(ancestry, Share{Culture: c, Percent: percent})
	}

	next := New(rng, size, ancestry)
	next.Children = children
	if size > 0 {
		next.AverageAge = peopleYears / float64(size)
	}
	next.InheritTraits(rng, pops, TraitJitter)
	next.Generation = generation + 1
	for _, p := range pops {
		p.DescendantPops = append(p.DescendantPops, next)
	}
	return next
}

// MergeSmall folds cohorts sharing a primary culture into one. Office holders
// (non-mergeable cohorts) are passed through untouched. Merged cohorts that
// come out empty are dropped.
func MergeSmall(rng *rand.Rand, pops []*Population) []*Population {
	remaining := append([]*Population(nil), pops...)
	var out []*Population

	for len(remaining) > 0 {
		candidate := remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
		if !candidate.Mergeable {
			out = append(out, candidate)
			continue
		}

		culture := candidate.PrimaryCulture()
		var group, rest []*Population
		for _, p := range remaining {
			if p.Mergeable && p.PrimaryCulture() == culture {
				group = append(group, p)
			} else {
				rest = append(rest, p)
			}
		}
		if len(group) == 0 {
			out = append(out, candidate)
			continue
		}
		remaining = rest
		group = append(group, candidate)

		if merged := merge(rng, culture, group); merged != nil {
			out = append(out, merged)
		}
	}
	return out
}

func merge(rng *rand.Rand, culture string, group []*Population) *Population {
	starting, descendants := 0, 0
	ageYears, descendantYears := 0.0, 0.0
	var children [ChildSlots]int
	generation := 0
	for _, p := range group {
		starting += p.StartingPopulation
		descendants += p.Descendants
		ageYears += float64(p.StartingPopulation) * p.AverageAge
		descendantYears += float64(p.Descendants) * p.AverageDescendantAge
		for n, c := range p.Children {
			children[n] += c
		}
		generation = max(generation, p.Generation)
	}

	merged := New(rng, starting, []Share{{Culture: culture, Percent: 100}})
	merged.Descendants = descendants
	if merged.Population() == 0 {
		return nil
	}
	if starting > 0 {
		merged.AverageAge = ageYears / float64(starting)
	}
	if descendants > 0 {
		merged.AverageDescendantAge = descendantYears / float64(descendants)
	}
	merged.Children = children
	merged.Generation = generation
	merged.InheritTraits(rng, group, 0)

	seen := make(map[*Population]bool)
	for _, p := range group {
		for _, d := range p.DescendantPops {
			if !seen[d] {
				seen[d] = true
				merged.DescendantPops = append(merged.DescendantPops, d)
			}
		}
	}
	return merged
}
