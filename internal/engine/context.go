// Package engine drives the galaxy year by year: colonies process their
// settlements, build ships and send emigrants out, and ships in flight carry
// them to new worlds.
package engine

import (
	"math/rand"

	"github.com/talgya/destiny/internal/galaxy"
	"github.com/talgya/destiny/internal/names"
	"github.com/talgya/destiny/internal/science"
)

// Context is the state shared by every colony and ship of one simulation.
// Two simulations never share a Context.
type Context struct {
	RNG        *rand.Rand
	TargetSize int // nominal cohort size

	Names     *names.Allocator
	ShipNames *names.ShipRegistry
	TechTree  *science.Node
	Events    EventLog
	Factions  []*Faction

	colonies map[*galaxy.Planet]*InhabitedPlanet
}

// NewContext builds a context with the default name pools and a fresh
// technology tree.
func NewContext(rng *rand.Rand, targetSize int) *Context {
	return &Context{
		RNG:        rng,
		TargetSize: targetSize,
		Names:      names.NewAllocator(names.DefaultPools()),
		ShipNames:  names.NewShipRegistry(names.DefaultShipNames()),
		TechTree:   science.NewTree(),
		colonies:   make(map[*galaxy.Planet]*InhabitedPlanet),
	}
}

// ColonyAt returns the colony on p, or nil if p is uninhabited.
func (c *Context) ColonyAt(p *galaxy.Planet) *InhabitedPlanet {
	return c.colonies[p]
}

func (c *Context) register(ip *InhabitedPlanet) {
	c.colonies[ip.Planet] = ip
}
