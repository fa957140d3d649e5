package traits

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpinionHashInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		tr := Traits{rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64()}
		h := tr.OpinionHash()
		assert.GreaterOrEqual(t, h, 0)
		assert.Less(t, h, 32)
		assert.NotEmpty(t, tr.Philosophy())
	}
}

func TestOpinionHashBits(t *testing.T) {
	assert.Equal(t, 0, Traits{}.OpinionHash())
	assert.Equal(t, 31, Traits{1, 1, 1, 1, 1}.OpinionHash())
	assert.Equal(t, 1, Traits{AutocraticDemocratic: 0.9}.OpinionHash())
	assert.Equal(t, 16, Traits{TraditionalistTechnological: 0.51}.OpinionHash())
	assert.Equal(t, 0, Traits{AutocraticDemocratic: 0.5}.OpinionHash(), "half rounds to even")
	assert.Equal(t, "Interventionist Religious Democratic", Traits{1, 1, 1, 1, 1}.Philosophy())
}

func TestSuits(t *testing.T) {
	gov := Traits{0.5, 0.5, 0.5, 0.5, 0.5}

	assert.True(t, Suits(gov, Traits{0.55, 0.45, 0.5, 0.5, 0.5}, 0.2))
	assert.False(t, Suits(gov, Traits{0.6, 0.5, 0.5, 0.5, 0.5}, 0.2), "boundary is strict")
	assert.False(t, Suits(gov, Traits{0.5, 0.5, 0.5, 0.5, 0.9}, 0.2), "any axis out of range fails")
	assert.False(t, Suits(gov, gov, 0), "zero tolerance never suits")
}

func TestDistanceAndAverage(t *testing.T) {
	a := Traits{0, 0, 0, 0, 0}
	b := Traits{1, 1, 1, 1, 0.5}
	assert.InDelta(t, 0.9, Distance(a, b), 1e-9)
	assert.InDelta(t, 0, Distance(b, b), 1e-9)

	avg := Average([]Traits{a, b})
	assert.InDelta(t, 0.5, avg.AutocraticDemocratic, 1e-9)
	assert.InDelta(t, 0.25, avg.TraditionalistTechnological, 1e-9)
	assert.Equal(t, Traits{}, Average(nil))
}

func TestEngagement(t *testing.T) {
	assert.InDelta(t, 1, Traits{AutocraticDemocratic: 0}.Engagement(), 1e-9)
	assert.InDelta(t, 0, Traits{AutocraticDemocratic: 0.5}.Engagement(), 1e-9)
	assert.InDelta(t, 0.8, Traits{AutocraticDemocratic: 0.9}.Engagement(), 1e-9)
}
