package dice

import "sort"

// Counter tallies keys and remembers first-seen order so that ties resolve
// the same way on every run.
type Counter[K comparable] struct {
	keys   []K
	counts map[K]float64
}

// NewCounter returns an empty counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]float64)}
}

// Add increments k by n.
func (c *Counter[K]) Add(k K, n float64) {
	if _, ok := c.counts[k]; !ok {
		c.keys = append(c.keys, k)
	}
	c.counts[k] += n
}

// Count returns the tally for k.
func (c *Counter[K]) Count(k K) float64 { return c.counts[k] }

// MostCommon returns up to n keys by descending count, ties in first-seen
// order. n <= 0 returns every key.
func (c *Counter[K]) MostCommon(n int) []K {
	out := append([]K(nil), c.keys...)
	sort.SliceStable(out, func(i, j int) bool { return c.counts[out[i]] > c.counts[out[j]] })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
