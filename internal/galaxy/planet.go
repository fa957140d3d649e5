package galaxy

import (
	"math"

	"github.com/google/uuid"
)

// Physical constants for planetary bodies.
const (
	earthMassKg        = 5.972e24
	solarMassKg        = 1.989e30
	solarLuminosityW   = 3.846e26
	gravitationalConst = 6.6743e-11
	auMetres           = 149e9
	rockDensity        = 5515.0
	stefanBoltzmann    = 5.670373e-8
	bondAlbedo         = 0.3
)

// Planet orbits a star. Mass is in Earth masses, OrbitalRadius in AU.
type Planet struct {
	ID               uuid.UUID `json:"id"`
	Star             *Star     `json:"-"`
	Index            int       `json:"index"`
	Mass             float64   `json:"mass"`
	DayLengthHours   float64   `json:"day_length_hours"`
	OrbitalRadius    float64   `json:"orbital_radius"`
	Solid            bool      `json:"solid"`
	GreenhouseFactor int       `json:"greenhouse_factor"`
}

const planetLetters = "bcdefghijklmnopqrstuvwxyz"

// Label is the catalogue name, e.g. "Sol-d".
func (p *Planet) Label() string {
	if p.Index < len(planetLetters) {
		return p.Star.Name + "-" + string(planetLetters[p.Index])
	}
	return p.Star.Name + "-?"
}

func (p *Planet) radius() float64 {
	volume := p.Mass * earthMassKg / rockDensity
	return math.Cbrt(3 * volume / (4 * math.Pi))
}

// Gravity at the surface, in g.
func (p *Planet) Gravity() float64 {
	r := p.radius()
	return p.Mass * earthMassKg * gravitationalConst / (r * r) / 9.81
}

// OrbitalPeriodHours from Kepler's third law.
func (p *Planet) OrbitalPeriodHours() float64 {
	a := p.OrbitalRadius * auMetres
	secs := 2 * math.Pi * math.Sqrt(a*a*a/(gravitationalConst*p.Star.Mass*solarMassKg))
	return secs / 3600
}

// SurfaceTemperature in °C, including greenhouse warming.
func (p *Planet) SurfaceTemperature() int {
	a := p.OrbitalRadius * auMetres
	received := p.Star.Luminosity * solarLuminosityW * (1 - bondAlbedo)
	kelvin := math.Pow(received/(16*math.Pi*stefanBoltzmann*a*a), 0.25)
	return int(kelvin-273) + p.GreenhouseFactor
}

// Habitable is solid ground, near-Earth gravity, temperate surface and a
// year of more than a hundred days.
func (p *Planet) Habitable() bool {
	if !p.Solid || p.DayLengthHours <= 0 {
		return false
	}
	g := p.Gravity()
	t := p.SurfaceTemperature()
	return p.OrbitalPeriodHours()/p.DayLengthHours > 100 && g > 0.75 && g < 1.25 && t >= 0 && t <= 25
}
