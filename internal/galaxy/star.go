// Package galaxy provides the star map: stars, their planets, and the
// precomputed neighbour lists colonisation searches walk.
package galaxy

import (
	"math"

	"github.com/google/uuid"
)

// Vec3 is a position in light years.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Distance returns the Euclidean distance to o.
func (v Vec3) Distance(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Neighbour is another star with at least one habitable planet.
type Neighbour struct {
	Star     *Star
	Distance float64
}

// Star is one stellar system.
type Star struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Position     Vec3      `json:"position"`
	SpectralType string    `json:"spectral_type"`
	Luminosity   float64   `json:"luminosity"` // solar luminosities
	Mass         float64   `json:"mass"`       // solar masses
	Planets      []*Planet `json:"planets"`

	// Neighbours is sorted ascending by distance.
	Neighbours []Neighbour `json:"-"`
}

// HabitablePlanets lists the planets people could live on.
func (s *Star) HabitablePlanets() []*Planet {
	var out []*Planet
	for _, p := range s.Planets {
		if p.Habitable() {
			out = append(out, p)
		}
	}
	return out
}

// Habitable reports whether any planet is habitable.
func (s *Star) Habitable() bool {
	for _, p := range s.Planets {
		if p.Habitable() {
			return true
		}
	}
	return false
}

// InnerHabitableZone in AU.
func (s *Star) InnerHabitableZone() float64 { return math.Sqrt(s.Luminosity / 1.1) }

// OuterHabitableZone in AU.
func (s *Star) OuterHabitableZone() float64 { return math.Sqrt(s.Luminosity / 0.53) }

// Within lists neighbours no further than maxRange, stopping at the first
// beyond it.
func (s *Star) Within(maxRange float64) []Neighbour {
	for i, n := range s.Neighbours {
		if n.Distance > maxRange {
			return s.Neighbours[:i]
		}
	}
	return s.Neighbours
}
