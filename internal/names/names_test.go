package names

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorNeverRepeats(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := NewAllocator(map[string][]string{
		"Fiji":  {"Suva", "Nadi", "Lautoka"},
		"Tonga": {"Nuku'alofa"},
	})

	seen := map[string]bool{}
	for i := 0; i < 30; i++ {
		name := a.Name(rng, "Fiji")
		require.NotEmpty(t, name)
		require.False(t, seen[name], "repeated %q", name)
		seen[name] = true
	}
	assert.True(t, seen["Nuku'alofa"], "falls back to another culture's pool")
	assert.Zero(t, a.Remaining("Fiji"))
}

func TestAllocatorSharedNameHandedOutOnce(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		a := NewAllocator(map[string][]string{
			"India":    {"Hyderabad"},
			"Pakistan": {"Hyderabad"},
		})

		first := a.Name(rng, "India")
		second := a.Name(rng, "Pakistan")
		assert.Equal(t, "Hyderabad", first)
		assert.NotEqual(t, first, second, "seed %d", seed)
		assert.Zero(t, a.Remaining("Pakistan"))
	}
}

func TestAllocatorDoesNotMutateInput(t *testing.T) {
	pools := map[string][]string{"Fiji": {"Suva", "Nadi"}}
	a := NewAllocator(pools)
	a.Name(rand.New(rand.NewSource(1)), "Fiji")
	assert.Len(t, pools["Fiji"], 2)
}

func TestAllocatorUnknownCulture(t *testing.T) {
	a := NewAllocator(map[string][]string{"Fiji": {"Suva"}})
	assert.Equal(t, "Suva", a.Name(rand.New(rand.NewSource(1)), "Atlantis"))
}

func TestSuccessor(t *testing.T) {
	assert.Equal(t, "Endeavour—2", Successor("Endeavour"))
	assert.Equal(t, "Endeavour—3", Successor("Endeavour—2"))
	assert.Equal(t, "Endeavour—11", Successor("Endeavour—10"))
}

func TestShipRegistryCommission(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	r := NewShipRegistry([]string{"Kestrel"})
	name := r.Draw(rng)
	require.Equal(t, "Kestrel", name)

	r.Commission(name)

	for i := 0; i < 5; i++ {
		assert.Equal(t, "Kestrel—2", r.Draw(rng))
	}
}

func TestDefaultPoolsNonEmpty(t *testing.T) {
	for culture, pool := range DefaultPools() {
		assert.NotEmpty(t, pool, culture)
	}
	assert.NotEmpty(t, DefaultShipNames())
}
