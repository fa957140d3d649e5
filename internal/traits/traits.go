// Package traits models the five political leanings shared by populations
// and governments, and the comparisons made between them.
package traits

import "math"

// Traits holds five leanings, each in [0, 1].
type Traits struct {
	AutocraticDemocratic        float64 `json:"autocratic_democratic"`
	ConservativeProgressive     float64 `json:"conservative_progressive"`
	PacifistMilitaristic        float64 `json:"pacifist_militaristic"`
	SecularReligious            float64 `json:"secular_religious"`
	TraditionalistTechnological float64 `json:"traditionalist_technological"`
}

// Axes returns the leanings in hash bit order.
func (t Traits) Axes() [5]float64 {
	return [5]float64{
		t.AutocraticDemocratic,
		t.ConservativeProgressive,
		t.PacifistMilitaristic,
		t.SecularReligious,
		t.TraditionalistTechnological,
	}
}

// FromAxes is the inverse of Axes.
func FromAxes(a [5]float64) Traits {
	return Traits{
		AutocraticDemocratic:        a[0],
		ConservativeProgressive:     a[1],
		PacifistMilitaristic:        a[2],
		SecularReligious:            a[3],
		TraditionalistTechnological: a[4],
	}
}

// OpinionHash packs the five rounded leanings into 0..31. Exactly 0.5 rounds
// down (half to even).
func (t Traits) OpinionHash() int {
	h := 0
	for i, v := range t.Axes() {
		if math.RoundToEven(v) >= 1 {
			h |= 1 << i
		}
	}
	return h
}

// Philosophy names the opinion hash.
func (t Traits) Philosophy() string {
	return philosophies[t.OpinionHash()]
}

// Engagement is how strongly the holder cares about politics, in [0, 1].
func (t Traits) Engagement() float64 {
	return math.Abs(t.AutocraticDemocratic-0.5) * 2
}

// Distance is the mean absolute difference across the five leanings.
// Lower means more alike.
func Distance(a, b Traits) float64 {
	aa, bb := a.Axes(), b.Axes()
	sum := 0.0
	for i := range aa {
		sum += math.Abs(aa[i] - bb[i])
	}
	return sum / 5
}

// Suits reports whether every leaning of gov is strictly within
// tolerance/2 of the corresponding leaning of pop.
func Suits(gov, pop Traits, tolerance float64) bool {
	boundary := tolerance / 2
	g, p := gov.Axes(), pop.Axes()
	for i := range g {
		if math.Abs(g[i]-p[i]) >= boundary {
			return false
		}
	}
	return true
}

// Average returns the arithmetic mean, or zero Traits for an empty input.
func Average(ts []Traits) Traits {
	if len(ts) == 0 {
		return Traits{}
	}
	var sum [5]float64
	for _, t := range ts {
		for i, v := range t.Axes() {
			sum[i] += v
		}
	}
	for i := range sum {
		sum[i] /= float64(len(ts))
	}
	return FromAxes(sum)
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

var philosophies = [32]string{
	"Secular Gerontocratic",
	"Democratic Traditionalist",
	"Paternalist",
	"Democratic Reformist",
	"Militarist",
	"Democratic Militarist",
	"Hegemonic Reformist",
	"Democratic Interventionist",
	"Insular Theocratic",
	"Insular Religious Democratic",
	"Tolerant Theocratic",
	"Religious Democratic",
	"Hegemonic Theocratic",
	"Militaristic Religious Democratic",
	"Hegemonic Religious Reformist",
	"Reformist Religious Democratic",
	"Oligarchic",
	"Capitalist Democratic",
	"Meritocratic",
	"Scientific Democratic",
	"Hegemonic Oligarchic",
	"Interventionist Capitalist Democratic",
	"Hegemonic Meritocratic",
	"Interventionist Scientific Democratic",
	"Scientific Theocratic",
	"Scientific Religious Democratic",
	"Religious Capitalistic Theocratic",
	"Isolationist Religious Democratic",
	"Scientific Religious Hegemonic",
	"Interventionist Religious Capitalist Democratic",
	"Hegemonic Religious Meritocratic",
	"Interventionist Religious Democratic",
}
