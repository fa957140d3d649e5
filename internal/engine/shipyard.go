package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/science"
)

// Service life of a new ship, in years.
const (
	minLifespan = 25
	maxLifespan = 100
)

// construct designs a ship from the best technologies ip has discovered and
// prices it. ok is false when no chassis or engine is known.
func (ip *InhabitedPlanet) construct(name string, year int) (ship *Starship, cost int, ok bool) {
	best := science.Best(ip.Discoveries)
	if !best.Complete {
		return nil, 0, false
	}
	ship = &Starship{
		ID:                   uuid.New(),
		Name:                 name,
		Capacity:             best.Chassis.Capacity,
		SublightAcceleration: best.Engine.Acceleration,
		SublightRange:        best.Engine.Range,
		ScienceLevel:         ip.ScienceLevel,
		Discoveries:          append([]*science.Node(nil), ip.Discoveries...),
		Founded:              year,
		Lifespan:             dice.Between(ip.ctx.RNG, minLifespan, maxLifespan),
		ctx:                  ip.ctx,
	}
	cost = best.Chassis.Capacity * best.Chassis.Cost
	if best.HasFTL {
		ship.FTLSpeed = best.FTL.Speed
		ship.FTLRange = best.FTL.Range
		cost *= 2
	}
	return ship, cost, true
}

// BuildShips buys ships until capacity berths are added or the
// manufacturing surplus runs out. It returns the berths bought.
func (ip *InhabitedPlanet) BuildShips(year, capacity int) int {
	bought := 0
	for bought < capacity {
		name := ip.ctx.ShipNames.Draw(ip.ctx.RNG)
		ship, cost, ok := ip.construct(name, year)
		if !ok || ip.ManufacturingSurplus < cost {
			break
		}
		bought += ship.Capacity
		ip.ManufacturingSurplus -= cost
		ip.Ships = append(ip.Ships, ship)
		ip.ctx.ShipNames.Commission(name)
		slog.Debug("ship commissioned", "colony", ip.Name, "ship", name, "capacity", ship.Capacity, "year", year)
	}
	return bought
}
