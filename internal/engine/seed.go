package engine

import (
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/galaxy"
	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/social"
)

// Headcount is the number of people of one culture on the home world.
type Headcount struct {
	Culture    string `yaml:"culture"`
	Population int64  `yaml:"population"`
}

// DefaultHeadcounts is the home world's population by culture.
func DefaultHeadcounts() []Headcount {
	return []Headcount{
		{"China", 1_411_000_000},
		{"India", 1_380_000_000},
		{"United States", 331_000_000},
		{"Indonesia", 273_500_000},
		{"Pakistan", 220_900_000},
		{"Nigeria", 206_100_000},
		{"Brazil", 212_600_000},
		{"Bangladesh", 164_700_000},
		{"Russia", 145_900_000},
		{"Mexico", 128_900_000},
		{"Japan", 126_500_000},
		{"Ethiopia", 115_000_000},
		{"Egypt", 102_300_000},
		{"Germany", 83_800_000},
		{"United Kingdom", 67_900_000},
		{"France", 65_300_000},
		{"Chile", 19_100_000},
		{"Norway", 5_400_000},
	}
}

// Bounds on each seeded child slot, per ten thousand adults.
const (
	minChildrenPer10k = 50
	maxChildrenPer10k = 300
)

// SeedHomeWorld settles planet with one state per culture. Each culture gets
// population×multiplier/TargetSize cohorts of TargetSize adults with
// randomised outlooks; cultures too small for one cohort are skipped.
func SeedHomeWorld(ctx *Context, planet *galaxy.Planet, headcounts []Headcount, multiplier float64) *InhabitedPlanet {
	rng := ctx.RNG
	target := ctx.TargetSize
	home := NewInhabitedPlanet(ctx, planet, "Earth", 0)
	home.IsHomeWorld = true

	lo := minChildrenPer10k * target / 10_000
	hi := maxChildrenPer10k * target / 10_000
	for _, h := range headcounts {
		n := int(float64(h.Population) * multiplier / float64(target))
		if n == 0 {
			continue
		}
		pops := make([]*population.Population, 0, n)
		for i := 0; i < n; i++ {
			p := population.New(rng, target, []population.Share{{Culture: h.Culture, Percent: 100}})
			p.Randomise(rng)
			for slot := range p.Children {
				p.Children[slot] = dice.Between(rng, lo, hi)
			}
			pops = append(pops, p)
		}
		st := social.ForPops(rng, ctx.Names, pops, h.Culture, 0, target)
		home.Settlements = append(home.Settlements, st)
		slog.Debug("seeded state", "settlement", h.Culture, "pops", n, "government", st.Government.Kind().String())
	}

	ctx.foundFaction(home, 0)
	slog.Info("home world seeded", "colony", home.Name, "states", len(home.Settlements),
		"pops", home.Pops(), "population", humanize.Comma(int64(home.Population())))
	return home
}
