package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/galaxy"
	"github.com/talgya/destiny/internal/physics"
	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/science"
	"github.com/talgya/destiny/internal/social"
)

var (
	// ErrCapacityExceeded is returned when a manifest is larger than the ship.
	ErrCapacityExceeded = errors.New("cargo exceeds ship capacity")
	// ErrOutOfRange is returned when neither drive can reach a destination.
	ErrOutOfRange = errors.New("destination out of range")
)

// Happiness of arriving cohorts.
const (
	welcomedHappiness  = 1.0
	toleratedHappiness = 0.75
)

// Starship carries cohorts between planets. It is docked at a colony,
// in transit (tracked by the simulation) or retired.
type Starship struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`

	// Capability
	Capacity             int             `json:"capacity"`
	SublightAcceleration float64         `json:"sublight_acceleration"` // g
	SublightRange        float64         `json:"sublight_range"`        // ly
	FTLSpeed             float64         `json:"ftl_speed,omitempty"`   // c; zero without a folding drive
	FTLRange             float64         `json:"ftl_range,omitempty"`   // ly
	ScienceLevel         int             `json:"science_level"`
	Discoveries          []*science.Node `json:"-"`

	// Lifecycle
	Founded        int  `json:"founded"`
	Lifespan       int  `json:"lifespan"`
	Decommissioned bool `json:"decommissioned"`

	// Transit
	Origin              *InhabitedPlanet         `json:"-"`
	Destination         *galaxy.Planet           `json:"-"`
	DestinationColony   *InhabitedPlanet         `json:"-"`
	ObjectiveRemaining  int                      `json:"objective_remaining"`
	SubjectiveRemaining int                      `json:"subjective_remaining"`
	Cargo               []*population.Population `json:"-"`

	ctx *Context
}

// Range is the longest hop the ship can make.
func (s *Starship) Range() float64 {
	if s.FTLRange > 0 {
		return s.FTLRange
	}
	return s.SublightRange
}

func distanceBetween(from, to *galaxy.Planet) float64 {
	return from.Star.Position.Distance(to.Star.Position)
}

// ObjectiveYears is the trip time in the rest frame of the stars. ok is false
// when the destination is out of range.
func (s *Starship) ObjectiveYears(from, to *galaxy.Planet) (years int, ok bool) {
	d := distanceBetween(from, to)
	if s.FTLRange > 0 && s.FTLRange >= d {
		return int(math.Ceil(d / s.FTLSpeed)), true
	}
	if d > s.SublightRange {
		return 0, false
	}
	accel := s.SublightAcceleration * physics.StandardGravity
	return physics.Years(physics.ObjectiveSeconds(physics.LightYears(d), accel)), true
}

// SubjectiveYears is the trip time experienced aboard.
func (s *Starship) SubjectiveYears(from, to *galaxy.Planet) (years int, ok bool) {
	d := distanceBetween(from, to)
	if s.FTLRange > 0 && s.FTLRange >= d {
		return int(math.Ceil(d / s.FTLSpeed)), true
	}
	if d > s.SublightRange {
		return 0, false
	}
	accel := s.SublightAcceleration * physics.StandardGravity
	return physics.Years(physics.SubjectiveSeconds(physics.LightYears(d), accel)), true
}

// TravelTo loads cargo and sets off from origin towards dest.
func (s *Starship) TravelTo(origin *InhabitedPlanet, cargo []*population.Population, dest *galaxy.Planet) error {
	if len(cargo) > s.Capacity {
		return fmt.Errorf("%s: %d cohorts for %d berths: %w", s.Name, len(cargo), s.Capacity, ErrCapacityExceeded)
	}
	objective, ok := s.ObjectiveYears(origin.Planet, dest)
	if !ok {
		return fmt.Errorf("%s to %s: %w", s.Name, dest.Label(), ErrOutOfRange)
	}
	subjective, _ := s.SubjectiveYears(origin.Planet, dest)

	s.Origin = origin
	s.Destination = dest
	s.DestinationColony = s.ctx.ColonyAt(dest)
	s.Cargo = cargo
	s.ObjectiveRemaining = objective
	s.SubjectiveRemaining = subjective
	return nil
}

// Transit advances the ship one year and reports whether it has arrived.
func (s *Starship) Transit() bool {
	if s.ObjectiveRemaining == 0 {
		return true
	}
	if s.SubjectiveRemaining > 0 {
		s.Cargo = social.AgeCargo(s.ctx.RNG, s.Cargo)
		s.SubjectiveRemaining--
	}
	s.ObjectiveRemaining--
	return s.ObjectiveRemaining == 0
}

// Offload lands the cargo. Cohorts join a settlement on an inhabited
// destination; otherwise they found a colony, which is returned. The ship
// then docks at the destination or, past its service life, retires.
func (s *Starship) Offload(year int) *InhabitedPlanet {
	if s.DestinationColony == nil {
		s.DestinationColony = s.ctx.ColonyAt(s.Destination)
	}

	var founded *InhabitedPlanet
	dock := s.DestinationColony
	switch {
	case dock != nil && len(dock.Settlements) > 0:
		s.offloadToSettlements()
	case len(s.Cargo) > 0:
		founded = s.settle(year)
		dock = founded
	default:
		dock = s.Origin
	}

	if s.Founded+s.Lifespan > year {
		dock.Ships = append(dock.Ships, s)
	} else {
		s.Decommissioned = true
		slog.Debug("ship retired", "ship", s.Name, "year", year)
		s.ctx.Events.Record(year, CategoryShip, "%s has reached the end of its service life", s.Name)
	}
	s.reset()
	return founded
}

func (s *Starship) offloadToSettlements() {
	colony := s.DestinationColony
	for _, p := range s.Cargo {
		home := colony.welcoming(p)
		if home != nil {
			p.SetHappiness(welcomedHappiness)
		} else {
			home = dice.Choice(s.ctx.RNG, colony.Settlements)
			p.SetHappiness(toleratedHappiness)
		}
		home.Admit(p)
		p.Wanderlust = 0
	}
}

func (s *Starship) settle(year int) *InhabitedPlanet {
	rng := s.ctx.RNG
	name := s.ctx.Names.Name(rng, social.DominantCulture(s.Cargo))

	colony := NewInhabitedPlanet(s.ctx, s.Destination, name, year)
	colony.ScienceLevel = s.ScienceLevel
	colony.Discoveries = append([]*science.Node(nil), s.Discoveries...)
	for _, p := range s.Cargo {
		p.SetHappiness(welcomedHappiness)
		p.Wanderlust = 0
	}
	colony.Settlements = append(colony.Settlements,
		social.ForPops(rng, s.ctx.Names, s.Cargo, name, year, s.ctx.TargetSize))

	s.ctx.joinFaction(colony, s.Origin, year)
	slog.Info("colony founded", "colony", name, "planet", s.Destination.Label(), "year", year,
		"pops", len(s.Cargo), "origin", s.Origin.Name)
	s.ctx.Events.Record(year, CategoryColony, "%s founded on %s by %d pops from %s",
		name, s.Destination.Label(), len(s.Cargo), s.Origin.Name)
	return colony
}

func (s *Starship) reset() {
	s.Destination = nil
	s.DestinationColony = nil
	s.Cargo = nil
	s.ObjectiveRemaining = 0
	s.SubjectiveRemaining = 0
}
