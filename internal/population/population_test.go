package population

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"
)

type PopulationSuite struct {
	suite.Suite
	rng *rand.Rand
}

func TestPopulationSuite(t *testing.T) {
	suite.Run(t, new(PopulationSuite))
}

func (s *PopulationSuite) SetupTest() {
	s.rng = rand.New(rand.NewSource(42))
}

func (s *PopulationSuite) cohort(size int, culture string) *Population {
	p := New(s.rng, size, []Share{{Culture: culture, Percent: 100}})
	p.Randomise(s.rng)
	return p
}

func (s *PopulationSuite) TestBirthsAndDeathsAdultCohort() {
	p := s.cohort(1000, "Norway")
	p.AverageAge = 30

	p.BirthsAndDeaths(s.rng, 60, 5)

	s.Positive(p.Children[0], "newborns land in slot 0")
	s.InDelta(59.5, p.Children[0], 0.5, "about 60 per thousand survivors")
	s.LessOrEqual(p.StartingPopulation, 995, "five accidental deaths at minimum")
	s.GreaterOrEqual(p.StartingPopulation, 990)
	s.InDelta(31, p.AverageAge, 1e-9)
}

func (s *PopulationSuite) TestBirthsAndDeathsPromotesOldestChildren() {
	p := s.cohort(1000, "Chile")
	p.Children[ChildSlots-1] = 100
	p.Children[0] = 7

	got := p.BirthsAndDeaths(s.rng, 0, 0)

	s.Equal(100, got)
	s.Equal(100, p.Descendants)
	s.InDelta(AdultAge, p.AverageDescendantAge, 1e-9)
	s.Equal(7, p.Children[1], "children shift one slot older")
}

func (s *PopulationSuite) TestBirthsAndDeathsEmptyCohort() {
	p := s.cohort(0, "Chile")
	s.NotPanics(func() { p.BirthsAndDeaths(s.rng, 50, 5) })
	s.Zero(p.Population())
	s.True(p.IsDead())
}

func (s *PopulationSuite) TestStarve() {
	p := s.cohort(1000, "Peru")
	p.Starve()
	s.InDelta(0.75, p.Happiness(), 1e-9)
	s.Equal(1000, p.StartingPopulation)

	p.SetHappiness(0.2)
	p.Starve()
	s.Zero(p.Happiness())
	s.Equal(900, p.StartingPopulation)
}

func (s *PopulationSuite) TestHappinessClamped() {
	p := s.cohort(10, "Peru")
	p.AdjustHappiness(5)
	s.Equal(1.0, p.Happiness())
	p.AdjustHappiness(-9)
	s.Equal(0.0, p.Happiness())
}

func (s *PopulationSuite) TestOfficeHoldersNeverMove() {
	p := s.cohort(10, "Peru")
	p.Mergeable = false
	p.StationaryMigrant = 0
	p.SetHappiness(0)
	for i := 0; i < 100; i++ {
		s.False(p.WantsToMove(s.rng))
	}
}

func (s *PopulationSuite) TestFormNextGenerationConserves() {
	a := s.cohort(1000, "Japan")
	a.Descendants = 600
	a.AverageDescendantAge = 22
	a.Children[3] = 100
	b := s.cohort(1000, "Korea")
	b.Descendants = 400
	b.AverageDescendantAge = 30
	b.Generation = 2
	before := a.Population() + b.Population()

	next := FormNextGeneration(s.rng, []*Population{a, b})

	s.Equal(1000, next.StartingPopulation)
	s.Equal(before, a.Population()+b.Population()+next.Population())
	s.Equal(3, next.Generation)
	s.InDelta((600*22.0+400*30.0)/1000, next.AverageAge, 1e-9)
	s.Equal(37, next.Children[3], "floor(0.375 × 100) children move")
	s.Equal(63, a.Children[3])
	s.Len(next.Ancestry, 2)
	s.Equal(50, next.Ancestry[0].Percent)
	s.Contains(a.DescendantPops, next)
	s.Contains(b.DescendantPops, next)
}

func (s *PopulationSuite) TestFormNextGenerationNoDescendants() {
	a := s.cohort(1000, "Japan")
	next := FormNextGeneration(s.rng, []*Population{a})
	s.Zero(next.Population())
}

func (s *PopulationSuite) TestMergeSmallConservesPerCulture() {
	var pops []*Population
	want := map[string]int{}
	for i, culture := range []string{"Fiji", "Tonga", "Fiji", "Fiji", "Tonga", "Samoa"} {
		p := s.cohort(100+i*10, culture)
		p.Descendants = i * 3
		p.AverageDescendantAge = 21
		p.Children[0] = i
		pops = append(pops, p)
		want[culture] += p.Population()
	}

	merged := MergeSmall(s.rng, pops)

	got := map[string]int{}
	for _, p := range merged {
		got[p.PrimaryCulture()] += p.Population()
	}
	s.Equal(want, got)
	s.Len(merged, 3)
}

func (s *PopulationSuite) TestMergeSmallSkipsOfficeHolders() {
	leader := s.cohort(50, "Fiji")
	leader.Mergeable = false
	other := s.cohort(60, "Fiji")
	third := s.cohort(70, "Fiji")

	merged := MergeSmall(s.rng, []*Population{leader, other, third})

	s.Len(merged, 2)
	s.Contains(merged, leader)
	s.Equal(50, leader.StartingPopulation)
}

func (s *PopulationSuite) TestMergeSmallWeightsAge() {
	a := s.cohort(100, "Fiji")
	a.AverageAge = 20
	b := s.cohort(300, "Fiji")
	b.AverageAge = 40

	merged := MergeSmall(s.rng, []*Population{a, b})

	s.Require().Len(merged, 1)
	s.InDelta(35, merged[0].AverageAge, 1e-9)
	s.Equal([]Share{{Culture: "Fiji", Percent: 100}}, merged[0].Ancestry)
}

func (s *PopulationSuite) TestInheritTraitsWithoutDeviation() {
	a := s.cohort(10, "Fiji")
	b := s.cohort(10, "Fiji")
	child := New(s.rng, 10, a.Ancestry)
	child.InheritTraits(s.rng, []*Population{a, b}, 0)
	s.InDelta((a.AutocraticDemocratic+b.AutocraticDemocratic)/2, child.AutocraticDemocratic, 1e-9)
	s.InDelta((a.Tolerance+b.Tolerance)/2, child.Tolerance, 1e-9)
	s.GreaterOrEqual(child.PreferredPopulationSize, 10)
	s.LessOrEqual(child.PreferredPopulationSize, 1000)
}
