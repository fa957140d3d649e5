package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectiveNeverFasterThanLight(t *testing.T) {
	d := LightYears(10)
	secs := ObjectiveSeconds(d, 1*StandardGravity)
	assert.GreaterOrEqual(t, secs, d/SpeedOfLight)
}

func TestSubjectiveShorterThanObjective(t *testing.T) {
	for _, ly := range []float64{1, 5, 10, 24} {
		d := LightYears(ly)
		a := 0.4 * StandardGravity
		assert.Less(t, SubjectiveSeconds(d, a), ObjectiveSeconds(d, a), "distance %v ly", ly)
	}
}

func TestYearsRoundsUp(t *testing.T) {
	assert.Equal(t, 1, Years(1))
	assert.Equal(t, 1, Years(SecondsPerYear))
	assert.Equal(t, 2, Years(SecondsPerYear+1))
	assert.Equal(t, 0, Years(0))
}
