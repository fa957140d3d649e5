// Package names hands out settlement, colony and starship names without
// repeats.
package names

import (
	"math/rand"
	"sort"

	"github.com/talgya/destiny/internal/dice"
)

// Allocator draws place names from per-culture pools. A drawn name is
// removed from its pool so it is never handed out twice.
type Allocator struct {
	pools    map[string][]string
	cultures []string // sorted, for reproducible fallback picks
	used     map[string]bool
}

// NewAllocator copies pools so the caller's slices are never mutated.
func NewAllocator(pools map[string][]string) *Allocator {
	a := &Allocator{
		pools: make(map[string][]string, len(pools)),
		used:  make(map[string]bool),
	}
	for culture, list := range pools {
		a.pools[culture] = append([]string(nil), list...)
		a.cultures = append(a.cultures, culture)
	}
	sort.Strings(a.cultures)
	return a
}

// Name returns an unused name for culture. When that culture's pool is
// exhausted (or unknown) it borrows from a random non-empty pool, and when
// every pool is empty it composes one from syllables. Names shared between
// pools are handed out once; later draws of them are discarded.
func (a *Allocator) Name(rng *rand.Rand, culture string) string {
	for {
		from := culture
		pool := a.pools[from]
		if len(pool) == 0 {
			var open []string
			for _, c := range a.cultures {
				if len(a.pools[c]) > 0 {
					open = append(open, c)
				}
			}
			if len(open) == 0 {
				return a.compose(rng)
			}
			from = dice.Choice(rng, open)
			pool = a.pools[from]
		}
		i := rng.Intn(len(pool))
		name := pool[i]
		a.pools[from] = append(pool[:i:i], pool[i+1:]...)
		if a.used[name] {
			continue
		}
		a.used[name] = true
		return name
	}
}

// Remaining counts unused names for culture.
func (a *Allocator) Remaining(culture string) int {
	return len(a.pools[culture])
}

var (
	prefixes = []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
	}
	suffixes = []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "crest", "vale", "port",
		"town", "bury", "marsh", "well", "brook", "cliff", "moor",
		"ridge", "watch", "fall", "rest", "point", "reach", "helm",
	}
)

func (a *Allocator) compose(rng *rand.Rand) string {
	for {
		name := dice.Choice(rng, prefixes) + dice.Choice(rng, suffixes)
		if a.used[name] {
			name = name + " " + dice.Choice(rng, []string{"Prime", "Minor", "Major", "Nova", "Ultima"})
		}
		if !a.used[name] {
			a.used[name] = true
			return name
		}
	}
}
