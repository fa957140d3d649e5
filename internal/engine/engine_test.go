package engine

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/talgya/destiny/internal/galaxy"
	"github.com/talgya/destiny/internal/government"
	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/social"
	"github.com/talgya/destiny/internal/traits"
)

const testTarget = 1000

var moderate = traits.Traits{
	AutocraticDemocratic:        0.6,
	ConservativeProgressive:     0.4,
	PacifistMilitaristic:        0.3,
	SecularReligious:            0.5,
	TraditionalistTechnological: 0.7,
}

type EngineSuite struct {
	suite.Suite
	ctx       *Context
	sol       *galaxy.Star
	proxima   *galaxy.Star
	earth     *galaxy.Planet
	outpost   *galaxy.Planet
	homeWorld *InhabitedPlanet
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// earthlike adds a habitable planet to star.
func earthlike(star *galaxy.Star) *galaxy.Planet {
	p := &galaxy.Planet{
		ID:               uuid.New(),
		Star:             star,
		Index:            len(star.Planets),
		Mass:             1,
		DayLengthHours:   24,
		OrbitalRadius:    1,
		Solid:            true,
		GreenhouseFactor: 32,
	}
	star.Planets = append(star.Planets, p)
	return p
}

func sunlike(name string, x float64) *galaxy.Star {
	return &galaxy.Star{ID: uuid.New(), Name: name, Position: galaxy.Vec3{X: x}, SpectralType: "G", Luminosity: 1, Mass: 1}
}

func (s *EngineSuite) SetupTest() {
	s.ctx = NewContext(rand.New(rand.NewSource(7)), testTarget)
	s.sol = sunlike("Sol", 0)
	s.proxima = sunlike("Proxima", 30)
	s.earth = earthlike(s.sol)
	s.outpost = earthlike(s.proxima)
	galaxy.LinkNeighbours([]*galaxy.Star{s.sol, s.proxima}, 100)

	s.homeWorld = NewInhabitedPlanet(s.ctx, s.earth, "Earth", 0)
	s.homeWorld.IsHomeWorld = true
}

func (s *EngineSuite) cohorts(n int, t traits.Traits) []*population.Population {
	var out []*population.Population
	for i := 0; i < n; i++ {
		p := population.New(s.ctx.RNG, testTarget, []population.Share{{Culture: "Fiji", Percent: 100}})
		p.Traits = t
		p.Tolerance = 1
		out = append(out, p)
	}
	return out
}

func (s *EngineSuite) state(ip *InhabitedPlanet, name string, pops []*population.Population) *social.Settlement {
	st := social.New(s.ctx.RNG, name, pops, government.KindDirectConsensus, 0, testTarget)
	ip.Settlements = append(ip.Settlements, st)
	return st
}

func (s *EngineSuite) sublightShip() *Starship {
	return &Starship{ID: uuid.New(), Name: "Slow", Capacity: 2, SublightAcceleration: 0.2, SublightRange: 10,
		Lifespan: 50, ctx: s.ctx}
}

func (s *EngineSuite) ftlShip(capacity int) *Starship {
	return &Starship{ID: uuid.New(), Name: "Fast", Capacity: capacity, SublightAcceleration: 1, SublightRange: 24,
		FTLSpeed: 5, FTLRange: 50, Lifespan: 50, ctx: s.ctx}
}

func (s *EngineSuite) TestOnlyFTLReachesDistantStar() {
	slow, fast := s.sublightShip(), s.ftlShip(2)

	_, ok := slow.ObjectiveYears(s.earth, s.outpost)
	s.False(ok)
	_, ok = slow.SubjectiveYears(s.earth, s.outpost)
	s.False(ok)

	years, ok := fast.ObjectiveYears(s.earth, s.outpost)
	s.True(ok)
	s.Equal(6, years)

	s.ErrorIs(slow.TravelTo(s.homeWorld, nil, s.outpost), ErrOutOfRange)
	s.NoError(fast.TravelTo(s.homeWorld, nil, s.outpost))
	s.Equal(50.0, fast.Range())
	s.Equal(10.0, slow.Range())
}

func (s *EngineSuite) TestSublightTimeDilation() {
	near := sunlike("Alpha", 4)
	planet := earthlike(near)
	ship := s.ftlShip(2)
	ship.FTLRange, ship.FTLSpeed = 0, 0

	objective, ok := ship.ObjectiveYears(s.earth, planet)
	s.Require().True(ok)
	subjective, ok := ship.SubjectiveYears(s.earth, planet)
	s.Require().True(ok)

	s.GreaterOrEqual(objective, 4)
	s.Less(subjective, objective)
}

func (s *EngineSuite) TestTravelToRejectsOverfullManifest() {
	ship := s.ftlShip(2)
	err := ship.TravelTo(s.homeWorld, s.cohorts(3, moderate), s.outpost)
	s.ErrorIs(err, ErrCapacityExceeded)
	s.Empty(ship.Cargo)
	s.Nil(ship.Destination)
}

func (s *EngineSuite) TestTransitArrivesOnSchedule() {
	ship := s.ftlShip(2)
	s.Require().NoError(ship.TravelTo(s.homeWorld, s.cohorts(2, moderate), s.outpost))

	years := 0
	for !ship.Transit() {
		years++
		s.LessOrEqual(len(ship.Cargo), ship.Capacity)
	}
	s.Equal(5, years)
	s.True(ship.Transit())
}

func (s *EngineSuite) TestOffloadFoundsColony() {
	s.homeWorld.ScienceLevel = 3
	s.state(s.homeWorld, "Suva", s.cohorts(2, moderate))
	s.ctx.foundFaction(s.homeWorld, 0)
	ship, _, ok := s.homeWorld.construct("Ark", 0)
	s.Require().True(ok)
	ship.Lifespan = 50
	ship.FTLRange, ship.FTLSpeed = 50, 5
	s.Require().NoError(ship.TravelTo(s.homeWorld, s.cohorts(2, moderate), s.outpost))

	colony := ship.Offload(6)

	s.Require().NotNil(colony)
	s.Same(colony, s.ctx.ColonyAt(s.outpost))
	s.Equal(6, colony.FoundingYear)
	s.Equal(3, colony.ScienceLevel)
	s.Require().Len(colony.Settlements, 1)
	s.Len(colony.Settlements[0].Members, 2)
	s.Contains(colony.Ships, ship)
	s.NotNil(colony.Faction)
	s.Empty(ship.Cargo)
	for _, p := range colony.Settlements[0].Members {
		s.Equal(1.0, p.Happiness())
		s.Zero(p.Wanderlust)
	}
}

func (s *EngineSuite) TestOffloadJoinsWelcomingSettlement() {
	outpost := NewInhabitedPlanet(s.ctx, s.outpost, "Outpost", 0)
	st := s.state(outpost, "Harbour", s.cohorts(2, moderate))
	ship := s.ftlShip(2)
	s.Require().NoError(ship.TravelTo(s.homeWorld, s.cohorts(2, moderate), s.outpost))
	s.Same(outpost, ship.DestinationColony)

	s.Nil(ship.Offload(6))
	s.Len(st.Members, 4)
	for _, p := range st.Members[2:] {
		s.Equal(1.0, p.Happiness())
	}
}

func (s *EngineSuite) TestOffloadToleratedWhenNoGovernmentFits() {
	outpost := NewInhabitedPlanet(s.ctx, s.outpost, "Outpost", 0)
	st := s.state(outpost, "Harbour", s.cohorts(2, moderate))
	opposite := traits.Traits{AutocraticDemocratic: 0, ConservativeProgressive: 1, PacifistMilitaristic: 1, SecularReligious: 0, TraditionalistTechnological: 0}
	ship := s.ftlShip(2)
	s.Require().NoError(ship.TravelTo(s.homeWorld, s.cohorts(1, opposite), s.outpost))

	ship.Offload(6)
	s.Require().Len(st.Members, 3)
	s.Equal(0.75, st.Members[2].Happiness())
}

func (s *EngineSuite) TestOffloadRetiresOldShip() {
	outpost := NewInhabitedPlanet(s.ctx, s.outpost, "Outpost", 0)
	s.state(outpost, "Harbour", s.cohorts(1, moderate))
	ship := s.ftlShip(2)
	ship.Founded, ship.Lifespan = 0, 25
	s.Require().NoError(ship.TravelTo(s.homeWorld, nil, s.outpost))

	ship.Offload(25)
	s.True(ship.Decommissioned)
	s.NotContains(outpost.Ships, ship)
}

func (s *EngineSuite) TestBuildShipsSpendsSurplus() {
	s.homeWorld.ManufacturingSurplus = 100

	bought := s.homeWorld.BuildShips(0, 5)

	s.Equal(6, bought)
	s.Len(s.homeWorld.Ships, 3)
	s.Equal(70, s.homeWorld.ManufacturingSurplus)
	seen := map[string]bool{}
	for _, ship := range s.homeWorld.Ships {
		s.False(seen[ship.Name], ship.Name)
		seen[ship.Name] = true
		s.Equal(2, ship.Capacity)
		s.Equal(10.0, ship.Range())
		s.GreaterOrEqual(ship.Lifespan, minLifespan)
		s.LessOrEqual(ship.Lifespan, maxLifespan)
	}
}

func (s *EngineSuite) TestBuildShipsStopsWhenBroke() {
	s.homeWorld.ManufacturingSurplus = 15
	s.Equal(2, s.homeWorld.BuildShips(0, 10))
	s.Equal(5, s.homeWorld.ManufacturingSurplus)
}

func (s *EngineSuite) TestScienceUpgrade() {
	s.homeWorld.upgradeScience(0)
	s.Equal(1, s.homeWorld.ScienceLevel)
	s.Len(s.homeWorld.Discoveries, 2)

	s.homeWorld.ScienceSurplus = 999
	s.homeWorld.upgradeScience(1)
	s.Equal(1, s.homeWorld.ScienceLevel)

	s.homeWorld.ScienceSurplus = 1000
	s.homeWorld.upgradeScience(2)
	s.Equal(2, s.homeWorld.ScienceLevel)
	s.Zero(s.homeWorld.ScienceSurplus)
	s.Len(s.homeWorld.Discoveries, 3)
}

func (s *EngineSuite) emigrants(origin *social.Settlement, pops []*population.Population) []social.Emigrant {
	var out []social.Emigrant
	for _, p := range pops {
		out = append(out, social.Emigrant{Origin: origin, Pop: p})
	}
	return out
}

func (s *EngineSuite) TestColonistsFillShipAndRestReturnHome() {
	origin := s.state(s.homeWorld, "Suva", s.cohorts(1, moderate))
	leaving := s.cohorts(3, moderate)
	for _, p := range leaving {
		p.SettlerColonial = 0
	}
	ship := s.ftlShip(2)
	s.homeWorld.Ships = []*Starship{ship}

	departed, docked := s.homeWorld.migrate(s.emigrants(origin, leaving), nil, 0)

	s.Require().Len(departed, 1)
	s.Empty(docked)
	s.Len(ship.Cargo, 2)
	s.Same(s.outpost, ship.Destination)
	s.Len(origin.Members, 2)
}

func (s *EngineSuite) TestSettlersRelocateOnSameWorld() {
	origin := s.state(s.homeWorld, "Suva", s.cohorts(1, moderate))
	other := s.state(s.homeWorld, "Nadi", s.cohorts(1, moderate))
	leaving := s.cohorts(1, moderate)
	leaving[0].SettlerColonial = 1
	byGovernment := map[int][]*social.Settlement{
		moderate.OpinionHash(): {origin, other},
	}

	departed, _ := s.homeWorld.migrate(s.emigrants(origin, leaving), byGovernment, 0)

	s.Empty(departed)
	s.Len(other.Members, 2)
	s.Len(origin.Members, 1)
}

func (s *EngineSuite) TestSettlersSailToAcceptingColony() {
	origin := s.state(s.homeWorld, "Suva", s.cohorts(1, moderate))
	outpost := NewInhabitedPlanet(s.ctx, s.outpost, "Outpost", 0)
	s.state(outpost, "Harbour", s.cohorts(1, moderate))
	leaving := s.cohorts(2, moderate)
	for _, p := range leaving {
		p.SettlerColonial = 1
	}
	ship := s.ftlShip(4)
	s.homeWorld.Ships = []*Starship{ship}

	departed, _ := s.homeWorld.migrate(s.emigrants(origin, leaving), nil, 0)

	s.Require().Len(departed, 1)
	s.Same(outpost, ship.DestinationColony)
	s.Len(ship.Cargo, 2)
}

func (s *EngineSuite) TestStrandedCrowdFormsNewState() {
	s.homeWorld.IsHomeWorld = false
	origin := s.state(s.homeWorld, "Suva", s.cohorts(1, moderate))
	leader := moderate
	leader.AutocraticDemocratic = 1
	follower := moderate
	follower.AutocraticDemocratic = 0.9
	stranded := append(s.cohorts(1, leader), s.cohorts(11, follower)...)

	var tally migrationTally
	s.homeWorld.strand(s.emigrants(origin, stranded), 3, &tally)

	s.Require().Len(s.homeWorld.Settlements, 2)
	s.Len(s.homeWorld.Settlements[1].Members, 12)
	s.Equal(3, s.homeWorld.Settlements[1].FoundingYear)
	s.Len(origin.Members, 1)
	s.Equal(12, tally.stayed)
}

func (s *EngineSuite) TestStrandedReturnHomeOnHomeWorld() {
	origin := s.state(s.homeWorld, "Suva", s.cohorts(1, moderate))
	var tally migrationTally
	s.homeWorld.strand(s.emigrants(origin, s.cohorts(12, moderate)), 0, &tally)

	s.Len(s.homeWorld.Settlements, 1)
	s.Len(origin.Members, 13)
}

func (s *EngineSuite) TestTradeRunToColonyInRange() {
	outpost := NewInhabitedPlanet(s.ctx, s.outpost, "Outpost", 0)
	s.state(outpost, "Harbour", s.cohorts(1, moderate))

	s.False(s.homeWorld.tradeRun(s.sublightShip()))
	fast := s.ftlShip(2)
	s.True(s.homeWorld.tradeRun(fast))
	s.Same(outpost, fast.DestinationColony)
	s.Empty(fast.Cargo)
}

func (s *EngineSuite) TestFactionMembership() {
	s.state(s.homeWorld, "Suva", s.cohorts(2, moderate))
	f := s.ctx.foundFaction(s.homeWorld, 0)
	s.NotEmpty(f.Name)
	s.Equal(moderate.OpinionHash(), f.Outlook)

	kin := NewInhabitedPlanet(s.ctx, s.outpost, "Outpost", 4)
	s.state(kin, "Harbour", s.cohorts(1, moderate))
	s.ctx.joinFaction(kin, s.homeWorld, 4)
	s.Same(f, kin.Faction)
	s.Len(f.Members, 2)

	third := NewInhabitedPlanet(s.ctx, earthlike(s.proxima), "Rival", 5)
	opposite := traits.Traits{AutocraticDemocratic: 0.1, ConservativeProgressive: 0.9, PacifistMilitaristic: 0.9, SecularReligious: 0.9, TraditionalistTechnological: 0.1}
	s.state(third, "Keep", s.cohorts(1, opposite))
	s.ctx.joinFaction(third, s.homeWorld, 5)
	s.NotSame(f, third.Faction)
	s.Len(s.ctx.Factions, 2)
}

func (s *EngineSuite) TestSeedHomeWorld() {
	ctx := NewContext(rand.New(rand.NewSource(1)), 1_000_000)
	earth := galaxy.NewSol().Planets[2]

	home := SeedHomeWorld(ctx, earth, []Headcount{{"China", 3_000_000}, {"Norway", 500_000}}, 1)

	s.True(home.IsHomeWorld)
	s.Same(home, ctx.ColonyAt(earth))
	s.Require().Len(home.Settlements, 1)
	st := home.Settlements[0]
	s.Equal("China", st.Name())
	s.Len(st.Members, 3)
	for _, p := range st.Members {
		for _, c := range p.Children {
			s.GreaterOrEqual(c, 5_000)
			s.LessOrEqual(c, 30_000)
		}
	}
	s.NotNil(home.Faction)
}

func (s *EngineSuite) TestSimulationInvariants() {
	ctx := NewContext(rand.New(rand.NewSource(3)), testTarget)
	g := galaxy.Generate(galaxy.SmallTestConfig())
	sim := NewSimulation(ctx, g, []Headcount{{"China", 30_000}, {"India", 20_000}}, 1)

	for i := 0; i < 15; i++ {
		report := sim.Step()
		s.Equal(i, report.Year)
		s.Equal(len(sim.Colonies), report.Colonies)
		s.Equal(len(sim.InFlight), report.InFlight)
		for _, ship := range sim.InFlight {
			s.LessOrEqual(len(ship.Cargo), ship.Capacity)
		}
		for _, c := range sim.Colonies {
			s.Same(c, ctx.ColonyAt(c.Planet))
		}
	}
	s.Len(sim.Colonies[0].PopulationByYear, 15)
	s.Positive(sim.Total())
}

func (s *EngineSuite) TestEventLogBounded() {
	var log EventLog
	for i := 0; i < maxEvents+10; i++ {
		log.Record(i, CategoryShip, "event %d", i)
	}
	s.Len(log.Recent(), maxEvents)
	s.Equal(10, log.Recent()[0].Year)
	s.Len(log.Drain(), maxEvents+10)
	s.Empty(log.Drain())
}
