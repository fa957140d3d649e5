// Package dice holds the random-choice helpers every subsystem draws from.
// All helpers take the simulation's *rand.Rand explicitly so a run is fully
// determined by its seed.
package dice

import "math/rand"

// Between returns a uniform integer in [lo, hi], both ends inclusive.
func Between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Uniform returns a uniform float in [lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// Choice picks one element uniformly. It panics on an empty slice.
func Choice[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// Sample returns k distinct elements in random order. k is clamped to
// len(items). The input slice is not modified.
func Sample[T any](rng *rand.Rand, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	if k <= 0 {
		return nil
	}
	pool := append([]T(nil), items...)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Shuffle permutes items in place.
func Shuffle[T any](rng *rand.Rand, items []T) {
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}

// Weighted picks an index with probability proportional to its weight.
// Non-positive weights are never picked unless every weight is non-positive,
// in which case the pick is uniform. Returns -1 for an empty slice.
func Weighted(rng *rand.Rand, weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		r -= w
		if r < 0 {
			return i
		}
	}
	return last
}

// Remove returns items without the first occurrence of v, preserving order.
func Remove[T comparable](items []T, v T) []T {
	for i, it := range items {
		if it == v {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}
