// Package population provides the cohort data model and its demographic engine:
// births, deaths, ageing, generational promotion and merging of small cohorts.
package population

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/traits"
)

// ChildSlots is the number of yearly child cohorts a population carries.
// Slot 0 holds newborns; the last slot comes of age each year.
const ChildSlots = 20

// AdultAge is the age at which children join the descendants.
const AdultAge = 20

// Share is one origin culture's percentage of a population's ancestry.
type Share struct {
	Culture string `json:"culture"`
	Percent int    `json:"percent"`
}

// Population is a cohort of people sharing an origin, leanings and fate.
type Population struct {
	ID uuid.UUID `json:"id"`

	// Demographics
	StartingPopulation   int             `json:"starting_population"`
	AverageAge           float64         `json:"average_age"`
	Descendants          int             `json:"descendants"`
	AverageDescendantAge float64         `json:"average_descendant_age"`
	Generation           int             `json:"generation"`
	Ancestry             []Share         `json:"ancestry"`
	Children             [ChildSlots]int `json:"children"`

	// Leanings, all 0–1
	traits.Traits
	StationaryMigrant float64 `json:"stationary_migrant"`
	SettlerColonial   float64 `json:"settler_colonial"`
	Tolerance         float64 `json:"tolerance"`

	// State
	happiness               float64
	Mergeable               bool `json:"mergeable"`
	PreferredPopulationSize int  `json:"preferred_population_size"`
	Wanderlust              int  `json:"wanderlust"` // years since last relocation

	// DescendantPops are the next-generation cohorts this one helped form.
	// Back-references only; owned by whichever settlement holds them.
	DescendantPops []*Population `json:"-"`
}

// New creates a cohort of adults aged 20 with full happiness. Leanings are
// left at zero; call Randomise or InheritTraits to set them.
func New(rng *rand.Rand, size int, ancestry []Share) *Population {
	return &Population{
		ID:                      uuid.New(),
		StartingPopulation:      size,
		AverageAge:              AdultAge,
		Ancestry:                ancestry,
		happiness:               1,
		Mergeable:               true,
		PreferredPopulationSize: dice.Between(rng, 10, 1000),
	}
}

// Randomise draws every leaning uniformly from [0, 1).
func (p *Population) Randomise(rng *rand.Rand) {
	p.StationaryMigrant = rng.Float64()
	p.AutocraticDemocratic = rng.Float64()
	p.ConservativeProgressive = rng.Float64()
	p.PacifistMilitaristic = rng.Float64()
	p.SecularReligious = rng.Float64()
	p.SettlerColonial = rng.Float64()
	p.TraditionalistTechnological = rng.Float64()
	p.Tolerance = rng.Float64()
}

// Population is starting population plus descendants.
func (p *Population) Population() int {
	return p.StartingPopulation + p.Descendants
}

// IsDead reports whether the founding adults are gone.
func (p *Population) IsDead() bool {
	return p.StartingPopulation <= 0
}

// Happiness returns the cohort's contentment in [0, 1].
func (p *Population) Happiness() float64 { return p.happiness }

// SetHappiness stores v clamped to [0, 1].
func (p *Population) SetHappiness(v float64) { p.happiness = traits.Clamp01(v) }

// AdjustHappiness adds delta, clamped to [0, 1].
func (p *Population) AdjustHappiness(delta float64) { p.SetHappiness(p.happiness + delta) }

// PrimaryCulture is the first ancestry tag, or "" when there is none.
func (p *Population) PrimaryCulture() string {
	if len(p.Ancestry) == 0 {
		return ""
	}
	return p.Ancestry[0].Culture
}

// DistanceTo is the mean absolute leaning difference to other.
func (p *Population) DistanceTo(other *Population) float64 {
	return traits.Distance(p.Traits, other.Traits)
}

// WantsToMove rolls whether the cohort leaves its settlement this year.
// Office holders never move.
func (p *Population) WantsToMove(rng *rand.Rand) bool {
	if !p.Mergeable {
		return false
	}
	return rng.Float64()-p.happiness > p.StationaryMigrant
}

// Starve costs a quarter of happiness; at zero happiness a tenth of the
// founding adults die.
func (p *Population) Starve() {
	p.AdjustHappiness(-0.25)
	if p.happiness == 0 {
		p.StartingPopulation = int(float64(p.StartingPopulation) * 0.9)
	}
}

// BirthsAndDeaths advances the cohort one year. Rates are per thousand.
// Returns the resulting number of descendants.
func (p *Population) BirthsAndDeaths(rng *rand.Rand, birthRate, accidentRate float64) int {
	if total := p.Population(); total > 0 {
		accidental := math.Floor(float64(total) / 1000 * accidentRate)
		ratio := float64(p.Descendants) / float64(total)
		p.Descendants -= int(math.Floor(accidental * ratio))
		p.StartingPopulation -= int(math.Ceil(accidental * (1 - ratio)))
		p.StartingPopulation = max(p.StartingPopulation, 0)
		p.Descendants = max(p.Descendants, 0)
	}

	startingOldAge := oldAgeLikelihood(rng, p.AverageAge)
	descendantOldAge := oldAgeLikelihood(rng, p.AverageDescendantAge)
	p.StartingPopulation = int(math.Floor(float64(p.StartingPopulation) * (1 - startingOldAge)))
	p.Descendants = int(math.Floor(float64(p.Descendants) * (1 - descendantOldAge)))

	newAdults := p.Children[ChildSlots-1]
	copy(p.Children[1:], p.Children[:ChildSlots-1])
	p.Children[0] = 0
	if p.Descendants+newAdults > 0 {
		p.AverageDescendantAge = (float64(p.Descendants)*p.AverageDescendantAge + float64(newAdults)*AdultAge) /
			float64(p.Descendants+newAdults)
	} else {
		p.AverageDescendantAge = 0
	}
	p.Descendants += newAdults

	p.AverageAge++

	childbearing := 0
	if p.AverageAge < 50 {
		childbearing += p.StartingPopulation
	}
	if p.AverageDescendantAge < 50 {
		childbearing += p.Descendants
	}
	p.Children[0] = int(math.Floor(float64(childbearing) / 1000 * birthRate))

	return p.Descendants
}

// oldAgeLikelihood is the cubic share of a cohort dying of old age this year.
func oldAgeLikelihood(rng *rand.Rand, age float64) float64 {
	x := traits.Clamp01((age-25)/100 + dice.Uniform(rng, -0.1, 0.1))
	return x * x * x
}

// InheritTraits sets every leaning to the mean of pops plus a uniform jitter
// of ±deviation, clamped to [0, 1]. Does nothing for an empty pops.
func (p *Population) InheritTraits(rng *rand.Rand, pops []*Population, deviation float64) {
	if len(pops) == 0 {
		return
	}
	n := float64(len(pops))
	mean := func(get func(*Population) float64) float64 {
		sum := 0.0
		for _, q := range pops {
			sum += get(q)
		}
		return traits.Clamp01(sum/n + dice.Uniform(rng, -deviation, deviation))
	}
	p.StationaryMigrant = mean(func(q *Population) float64 { return q.StationaryMigrant })
	p.AutocraticDemocratic = mean(func(q *Population) float64 { return q.AutocraticDemocratic })
	p.ConservativeProgressive = mean(func(q *Population) float64 { return q.ConservativeProgressive })
	p.PacifistMilitaristic = mean(func(q *Population) float64 { return q.PacifistMilitaristic })
	p.SecularReligious = mean(func(q *Population) float64 { return q.SecularReligious })
	p.SettlerColonial = mean(func(q *Population) float64 { return q.SettlerColonial })
	p.TraditionalistTechnological = mean(func(q *Population) float64 { return q.TraditionalistTechnological })
	p.Tolerance = mean(func(q *Population) float64 { return q.Tolerance })

	size := 0
	for _, q := range pops {
		size += q.PreferredPopulationSize
	}
	preferred := int(math.RoundToEven(float64(size)/n)) + dice.Between(rng, -1000, 1000)
	p.PreferredPopulationSize = min(max(preferred, 10), 1000)
}
