package physics

import "math"

// ObjectiveSeconds returns the rest-frame time to cover distance metres when
// accelerating at accel m/s² to the midpoint and braking for the remainder,
// with the light-speed term keeping long trips from dropping below d/c.
func ObjectiveSeconds(distance, accel float64) float64 {
	light := distance / SpeedOfLight
	return math.Sqrt(light*light + 4*distance/accel)
}

// SubjectiveSeconds returns the proper time experienced aboard for the same
// trip, from the rapidity integral (c/a)·acosh(a·d/c² + 1).
func SubjectiveSeconds(distance, accel float64) float64 {
	return SpeedOfLight / accel * math.Acosh(accel*distance/(SpeedOfLight*SpeedOfLight)+1)
}

// Years rounds a duration in seconds up to whole years.
func Years(seconds float64) int {
	return int(math.Ceil(seconds / SecondsPerYear))
}

// LightYears converts light years to metres.
func LightYears(ly float64) float64 {
	return ly * LightYearMetres
}
