// Package physics provides the physical constants and constant-acceleration
// kinematics used for starship travel times.
package physics

// Physical constants, SI units.
const (
	// SpeedOfLight in metres per second.
	SpeedOfLight = 299_792_458.0

	// SecondsPerYear is one Julian year.
	SecondsPerYear = 31_557_600.0

	// LightYearMetres is one light year in metres.
	LightYearMetres = 9_460_730_472_580_800.0

	// StandardGravity converts engine ratings given in g to m/s².
	StandardGravity = 9.80665
)

// Demographic yardsticks shared by the planet and settlement models.
const (
	// HomeWorldCrowding is the population above which a planet's birth rate
	// is scaled down proportionally.
	HomeWorldCrowding = 7_000_000_000.0
)
