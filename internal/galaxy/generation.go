// Star field generation using layered simplex noise.
// Stars cluster where the density field is high; planets are rolled per
// star from a generator seeded by the star's name.
package galaxy

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/destiny/internal/dice"
)

// GenConfig holds star field generation parameters.
type GenConfig struct {
	Seed           int64   `yaml:"seed"`            // 0 = random
	Stars          int     `yaml:"stars"`           // stars besides Sol
	Radius         float64 `yaml:"radius"`          // ly
	NeighbourRange float64 `yaml:"neighbour_range"` // ly; longest hop any drive can make
	Clustering     float64 `yaml:"clustering"`      // density noise frequency
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Stars:          2000,
		Radius:         150,
		NeighbourRange: 200,
		Clustering:     0.04,
	}
}

// SmallTestConfig returns a tiny star field for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Seed:           42,
		Stars:          60,
		Radius:         30,
		NeighbourRange: 60,
		Clustering:     0.1,
	}
}

// Galaxy is the generated star map. Stars[0] is always Sol.
type Galaxy struct {
	Stars []*Star
}

// Sol returns the home star.
func (g *Galaxy) Sol() *Star { return g.Stars[0] }

// Earth returns the home planet.
func (g *Galaxy) Earth() *Planet { return g.Stars[0].Planets[2] }

// HabitableStars counts stars with at least one habitable planet.
func (g *Galaxy) HabitableStars() int {
	n := 0
	for _, s := range g.Stars {
		if s.Habitable() {
			n++
		}
	}
	return n
}

type spectralClass struct {
	name           string
	weight         float64
	minLum, maxLum float64
}

var spectralClasses = []spectralClass{
	{"O", 0.005, 30000, 100000},
	{"B", 0.015, 25, 30000},
	{"A", 0.05, 5, 25},
	{"F", 0.10, 1.5, 5},
	{"G", 0.18, 0.6, 1.5},
	{"K", 0.25, 0.08, 0.6},
	{"M", 0.40, 0.001, 0.08},
}

// Generate creates Sol plus cfg.Stars generated stars and links neighbours.
func Generate(cfg GenConfig) *Galaxy {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	// Independent layers: where stars cluster, and how bright they burn.
	density := opensimplex.NewNormalized(seed)
	brightness := opensimplex.NewNormalized(seed + 1)

	g := &Galaxy{Stars: []*Star{NewSol()}}
	weights := make([]float64, len(spectralClasses))
	for i, c := range spectralClasses {
		weights[i] = c.weight
	}

	used := map[string]bool{"Sol": true}
	for attempts := 0; len(g.Stars) <= cfg.Stars && attempts < cfg.Stars*50; attempts++ {
		pos := Vec3{
			X: dice.Uniform(rng, -cfg.Radius, cfg.Radius),
			Y: dice.Uniform(rng, -cfg.Radius, cfg.Radius),
			Z: dice.Uniform(rng, -cfg.Radius, cfg.Radius),
		}
		if pos.Distance(Vec3{}) > cfg.Radius {
			continue
		}
		f := cfg.Clustering
		if rng.Float64() > density.Eval3(pos.X*f, pos.Y*f, pos.Z*f) {
			continue
		}

		class := spectralClasses[dice.Weighted(rng, weights)]
		shade := brightness.Eval3(pos.X*f*2, pos.Y*f*2, pos.Z*f*2)
		lum := class.minLum * math.Pow(class.maxLum/class.minLum, shade)

		name := starName(rng, used)
		star := &Star{
			ID:           uuid.New(),
			Name:         name,
			Position:     pos,
			SpectralType: class.name,
			Luminosity:   lum,
			Mass:         math.Pow(lum, 1/3.5),
		}
		star.Planets = rollPlanets(star, seed)
		g.Stars = append(g.Stars, star)
	}

	LinkNeighbours(g.Stars, cfg.NeighbourRange)
	return g
}

// NewSol builds the home system with its eight planets. Earth is index 2.
func NewSol() *Star {
	sol := &Star{ID: uuid.New(), Name: "Sol", SpectralType: "G", Luminosity: 1, Mass: 1}
	for i, p := range []struct {
		mass, day, orbit float64
		solid            bool
		greenhouse       int
	}{
		{0.055, 88 * 24, 0.4, true, 0},
		{0.815, 243 * 24, 0.72, true, 0},
		{1, 24, 1, true, 32},
		{0.107, 24.5, 1.45, true, 0},
		{317, 10, 5.2, false, 0},
		{95, 10.5, 9.5, false, 0},
		{14.5, 17.4, 19.1, false, 0},
		{17, 16, 30, false, 0},
	} {
		sol.Planets = append(sol.Planets, &Planet{
			ID:               uuid.New(),
			Star:             sol,
			Index:            i,
			Mass:             p.mass,
			DayLengthHours:   p.day,
			OrbitalRadius:    p.orbit,
			Solid:            p.solid,
			GreenhouseFactor: p.greenhouse,
		})
	}
	return sol
}

// rollPlanets generates a system from a generator seeded by the star's
// name, so a star keeps its planets whatever else the field contains.
func rollPlanets(star *Star, seed int64) []*Planet {
	h := fnv.New64a()
	h.Write([]byte(star.Name))
	rng := rand.New(rand.NewSource(int64(h.Sum64()) ^ seed))

	count := dice.Between(rng, 3, 10)
	inner, outer := star.InnerHabitableZone(), star.OuterHabitableZone()
	chance := 0.5
	if star.SpectralType == "G" {
		chance = 0.95
	}
	candidate := rng.Float64() < chance

	var planets []*Planet
	orbit := inner / 3 * (0.3 + rng.Float64())
	for i := 0; i < count; i++ {
		p := &Planet{
			ID:             uuid.New(),
			Star:           star,
			DayLengthHours: dice.Uniform(rng, 8, 60),
		}
		inZone := orbit >= inner && orbit <= outer
		switch {
		case candidate && inZone:
			p.Solid = true
			p.Mass = dice.Uniform(rng, 0.4, 2)
			p.GreenhouseFactor = dice.Between(rng, 5, 70)
			candidate = false
		case i < count/2:
			p.Solid = true
			p.Mass = dice.Uniform(rng, 0.03, 3)
			p.GreenhouseFactor = dice.Between(rng, 0, 400)
		default:
			p.Mass = dice.Uniform(rng, 10, 400)
		}
		p.OrbitalRadius = orbit
		planets = append(planets, p)

		next := orbit * dice.Uniform(rng, 1.4, 2.0)
		if candidate && next > inner && orbit < inner {
			next = dice.Uniform(rng, inner, outer)
		}
		orbit = next
	}
	sort.SliceStable(planets, func(i, j int) bool { return planets[i].OrbitalRadius < planets[j].OrbitalRadius })
	for i, p := range planets {
		p.Index = i
	}
	return planets
}

// LinkNeighbours fills every star's neighbour list with the habitable-bearing
// stars within maxRange, nearest first.
func LinkNeighbours(stars []*Star, maxRange float64) {
	var habitable []*Star
	for _, s := range stars {
		if s.Habitable() {
			habitable = append(habitable, s)
		}
	}
	for _, s := range stars {
		s.Neighbours = s.Neighbours[:0]
		for _, o := range habitable {
			if o == s {
				continue
			}
			if d := s.Position.Distance(o.Position); d <= maxRange {
				s.Neighbours = append(s.Neighbours, Neighbour{Star: o, Distance: d})
			}
		}
		sort.SliceStable(s.Neighbours, func(i, j int) bool {
			return s.Neighbours[i].Distance < s.Neighbours[j].Distance
		})
	}
}

var (
	starOnsets = []string{"Al", "Be", "Ca", "De", "El", "Fo", "Ga", "Ha", "Ir", "Ka", "Lu", "Me", "Na", "Or", "Pe", "Ri", "Sa", "Te", "Ul", "Ve", "Za"}
	starNuclei = []string{"ra", "ne", "ti", "ko", "su", "mi", "da", "lo", "ve", "qu", "xi", "ba"}
	starCodas  = []string{"n", "s", "r", "x", "th", "l", "", "us", "ar", "is", "on"}
)

func starName(rng *rand.Rand, used map[string]bool) string {
	for {
		name := dice.Choice(rng, starOnsets) + dice.Choice(rng, starNuclei) + dice.Choice(rng, starCodas)
		if used[name] {
			name += " " + string(rune('A'+rng.Intn(26)))
		}
		if !used[name] {
			used[name] = true
			return name
		}
	}
}
