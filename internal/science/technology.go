// Package science defines the starship technologies and the tree in which
// they are discovered.
package science

import "fmt"

// Technology is one discoverable capability.
type Technology interface {
	fmt.Stringer
	technology()
}

// Chassis is a superheavy spacecraft hull carrying Capacity pops at Cost
// manufacturing per pop.
type Chassis struct {
	Capacity int `json:"capacity"`
	Cost     int `json:"cost"`
}

// Sublight is a constant-thrust drive. Acceleration is in g, Range in ly.
type Sublight struct {
	Acceleration float64 `json:"acceleration"`
	Range        float64 `json:"range"`
}

// Spacefolding is a faster-than-light drive. Speed is in multiples of c,
// Range in ly.
type Spacefolding struct {
	Speed float64 `json:"speed"`
	Range float64 `json:"range"`
}

// Wormhole is a stable artificial wormhole spanning Span ly.
type Wormhole struct {
	Cost int     `json:"cost"`
	Span float64 `json:"span"`
}

func (Chassis) technology()      {}
func (Sublight) technology()     {}
func (Spacefolding) technology() {}
func (Wormhole) technology()     {}

func (c Chassis) String() string {
	return fmt.Sprintf("spacecraft carrying %d pops costing %d/pop", c.Capacity, c.Cost)
}

func (s Sublight) String() string {
	return fmt.Sprintf("sublight engines that can accelerate at %gg up to %gly", s.Acceleration, s.Range)
}

func (s Spacefolding) String() string {
	return fmt.Sprintf("space folding engines that can travel at %gc up to %gly", s.Speed, s.Range)
}

func (w Wormhole) String() string {
	return fmt.Sprintf("a stable artificial wormhole that can span %gly and costs %d", w.Span, w.Cost)
}
