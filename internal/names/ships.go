package names

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/talgya/destiny/internal/dice"
)

// shipSeparator joins a ship name to its generation number.
const shipSeparator = "—"

// ShipRegistry is the shared pool of starship names. Commissioning a name
// retires it and adds its numbered successor, so the pool never shrinks.
type ShipRegistry struct {
	names []string
}

// NewShipRegistry copies names into a fresh registry.
func NewShipRegistry(names []string) *ShipRegistry {
	return &ShipRegistry{names: append([]string(nil), names...)}
}

// Draw proposes a name without consuming it.
func (r *ShipRegistry) Draw(rng *rand.Rand) string {
	if len(r.names) == 0 {
		r.names = append(r.names, "Pathfinder")
	}
	return dice.Choice(rng, r.names)
}

// Commission consumes name and queues its successor.
func (r *ShipRegistry) Commission(name string) {
	r.names = dice.Remove(r.names, name)
	r.names = append(r.names, Successor(name))
}

// Successor returns "Name—2" for "Name" and "Name—N+1" for "Name—N".
func Successor(name string) string {
	base, num, found := strings.Cut(name, shipSeparator)
	next := 2
	if found {
		if n, err := strconv.Atoi(num); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%s%d", base, shipSeparator, next)
}
