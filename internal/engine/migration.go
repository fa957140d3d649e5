// Migration: emigrants resettle on their own world, board colony ships for
// empty planets, or sail to colonies whose governments will have them.
package engine

import (
	"log/slog"
	"math"
	"sort"

	"github.com/talgya/destiny/internal/dice"
	"github.com/talgya/destiny/internal/galaxy"
	"github.com/talgya/destiny/internal/population"
	"github.com/talgya/destiny/internal/social"
)

// Thresholds steering where emigrants go.
const (
	colonialThreshold   = 0.5  // settler_colonial below this founds colonies
	breakawayMinimum    = 10   // stranded emigrants needed to found a new state
	instigatorThreshold = 0.95 // political engagement of a breakaway leader
	destinationChoices  = 3    // most-demanded colonies considered per ship
	colonyDistancePower = 5
)

type migrationTally struct {
	moved, emigrated, stayed int
}

// migrate places this year's emigrants and returns the ships that left and
// those still docked.
func (ip *InhabitedPlanet) migrate(emigrants []social.Emigrant, byGovernment map[int][]*social.Settlement, year int) (departed, docked []*Starship) {
	var tally migrationTally
	var colonists, settlers, offworld []social.Emigrant
	for _, e := range emigrants {
		if e.Pop.SettlerColonial < colonialThreshold {
			colonists = append(colonists, e)
		} else {
			settlers = append(settlers, e)
		}
	}

	for _, e := range settlers {
		if home := relocation(e, byGovernment); home != nil {
			home.Admit(e.Pop)
			tally.moved++
		} else {
			offworld = append(offworld, e)
		}
	}

	berths := 0
	for _, ship := range ip.Ships {
		berths += ship.Capacity
	}
	if need := len(offworld) + len(colonists); berths < need {
		ip.BuildShips(year, need-berths)
	}
	ships := append([]*Starship(nil), ip.Ships...)
	dice.Shuffle(ip.ctx.RNG, ships)

	if len(ships) > 0 && len(colonists) > 0 {
		var sent []*Starship
		sent, ships, colonists = ip.colonise(colonists, ships, &tally)
		departed = append(departed, sent...)
	}
	offworld = append(offworld, colonists...)

	if len(ships) > 0 && len(offworld) > 0 {
		var sent []*Starship
		sent, ships, offworld = ip.resettle(offworld, ships, &tally)
		departed = append(departed, sent...)
	}

	if len(offworld) > 0 {
		ip.strand(offworld, year, &tally)
	}

	slog.Debug("migration", "colony", ip.Name, "year", year, "moved", tally.moved,
		"emigrated", tally.emigrated, "stayed", tally.stayed, "of", len(emigrants))
	return departed, ships
}

// relocation finds another settlement on the same world, with the same
// outlook, whose government accepts e.
func relocation(e social.Emigrant, byGovernment map[int][]*social.Settlement) *social.Settlement {
	for _, s := range byGovernment[e.Pop.OpinionHash()] {
		if s != e.Origin && s.Accepts(e.Pop) {
			return s
		}
	}
	return nil
}

func maxRange(ships []*Starship) float64 {
	r := 0.0
	for _, s := range ships {
		r = math.Max(r, s.Range())
	}
	return r
}

// pickShip chooses a random ship that can cover distance. ok is false when
// none can.
func (ip *InhabitedPlanet) pickShip(ships []*Starship, distance float64) (ship *Starship, ok bool) {
	var able []*Starship
	for _, s := range ships {
		if s.Range() >= distance {
			able = append(able, s)
		}
	}
	if len(able) == 0 {
		return nil, false
	}
	return dice.Choice(ip.ctx.RNG, able), true
}

type target struct {
	planet   *galaxy.Planet
	distance float64
}

// colonise sends colony ships to uninhabited habitable planets, weighting
// nearer planets heavily. Each ship carries a founding cohort and those most
// like it.
func (ip *InhabitedPlanet) colonise(colonists []social.Emigrant, ships []*Starship, tally *migrationTally) (sent, left []*Starship, unsent []social.Emigrant) {
	rng := ip.ctx.RNG
	var targets []target
	for _, n := range ip.Planet.Star.Within(maxRange(ships)) {
		for _, p := range n.Star.HabitablePlanets() {
			if ip.ctx.ColonyAt(p) == nil {
				targets = append(targets, target{planet: p, distance: n.Distance})
			}
		}
	}

	for len(colonists) > 0 && len(ships) > 0 && len(targets) > 0 {
		reach := maxRange(ships)
		var inRange []target
		for _, t := range targets {
			if t.distance <= reach {
				inRange = append(inRange, t)
			}
		}
		targets = inRange
		if len(targets) == 0 {
			break
		}
		weights := make([]float64, len(targets))
		for i, t := range targets {
			weights[i] = math.Pow(1/math.Max(t.distance, 1e-9), colonyDistancePower)
		}
		dest := targets[dice.Weighted(rng, weights)]

		ship, ok := ip.pickShip(ships, dest.distance)
		if !ok {
			break
		}
		ships = dice.Remove(ships, ship)

		seed := dice.Choice(rng, colonists)
		colonists = dice.Remove(colonists, seed)
		sort.SliceStable(colonists, func(i, j int) bool {
			return colonists[i].Pop.DistanceTo(seed.Pop) < colonists[j].Pop.DistanceTo(seed.Pop)
		})
		n := min(ship.Capacity-1, len(colonists))
		boarding := append([]social.Emigrant{seed}, colonists[:n]...)
		colonists = colonists[n:]

		if err := ship.TravelTo(ip, cargoOf(boarding), dest.planet); err != nil {
			slog.Warn("colony ship grounded", "ship", ship.Name, "err", err)
			colonists = append(colonists, boarding...)
			left = append(left, ship)
			continue
		}
		tally.emigrated += len(boarding)
		sent = append(sent, ship)
	}
	return sent, append(left, ships...), colonists
}

// resettle ships emigrants to colonies where some government suits them,
// serving the most-demanded destinations first.
func (ip *InhabitedPlanet) resettle(offworld []social.Emigrant, ships []*Starship, tally *migrationTally) (sent, left []*Starship, unsent []social.Emigrant) {
	rng := ip.ctx.RNG
	colonies, distances := ip.reachable(maxRange(ships))

	type destination struct {
		colony   *InhabitedPlanet
		distance float64
	}
	queues := make(map[*InhabitedPlanet][]social.Emigrant)
	wanted := make(map[*population.Population][]*InhabitedPlanet)
	var dests []destination
	for i, c := range colonies {
		chosen := false
		for _, e := range offworld {
			if c.welcoming(e.Pop) != nil {
				queues[c] = append(queues[c], e)
				wanted[e.Pop] = append(wanted[e.Pop], c)
				chosen = true
			}
		}
		if chosen {
			dests = append(dests, destination{colony: c, distance: distances[i]})
		}
	}

	for len(offworld) > 0 && len(ships) > 0 {
		var open []destination
		for _, d := range dests {
			if len(queues[d.colony]) > 0 {
				open = append(open, d)
			}
		}
		dests = open
		if len(dests) == 0 {
			break
		}
		sort.SliceStable(dests, func(i, j int) bool {
			return len(queues[dests[i].colony]) < len(queues[dests[j].colony])
		})
		dest := dice.Choice(rng, dests[max(0, len(dests)-destinationChoices):])

		ship, ok := ip.pickShip(ships, dest.distance)
		if !ok {
			break
		}
		ships = dice.Remove(ships, ship)

		var boarding []social.Emigrant
		queue := queues[dest.colony]
		for len(queue) > 0 && len(boarding) < ship.Capacity {
			e := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			offworld = dice.Remove(offworld, e)
			for _, other := range wanted[e.Pop] {
				if other != dest.colony {
					queues[other] = dice.Remove(queues[other], e)
				}
			}
			boarding = append(boarding, e)
		}
		queues[dest.colony] = queue

		if err := ship.TravelTo(ip, cargoOf(boarding), dest.colony.Planet); err != nil {
			slog.Warn("settler ship grounded", "ship", ship.Name, "err", err)
			offworld = append(offworld, boarding...)
			left = append(left, ship)
			continue
		}
		tally.emigrated += len(boarding)
		sent = append(sent, ship)
	}
	return sent, append(left, ships...), offworld
}

// strand handles emigrants no ship could take. On the home world they go
// back where they came from; elsewhere a large enough crowd may rally behind
// an instigator and found a new state.
func (ip *InhabitedPlanet) strand(stranded []social.Emigrant, year int, tally *migrationTally) {
	tally.stayed += len(stranded)
	if ip.IsHomeWorld || len(stranded) <= breakawayMinimum {
		returnHome(stranded)
		return
	}

	var instigators, others []social.Emigrant
	for _, e := range stranded {
		if e.Pop.Engagement() > instigatorThreshold {
			instigators = append(instigators, e)
		} else {
			others = append(others, e)
		}
	}

	followers := make(map[*population.Population][]social.Emigrant)
	var returners []social.Emigrant
	for _, e := range others {
		joined := false
		for _, in := range instigators {
			if e.Pop.DistanceTo(in.Pop) < e.Pop.Tolerance {
				followers[in.Pop] = append(followers[in.Pop], e)
				joined = true
				break
			}
		}
		if !joined {
			returners = append(returners, e)
		}
	}

	var leader *social.Emigrant
	for i, in := range instigators {
		n := len(followers[in.Pop])
		if n > 0 && (leader == nil || n > len(followers[leader.Pop])) {
			leader = &instigators[i]
		}
	}
	if leader == nil {
		returnHome(stranded)
		return
	}

	for _, in := range instigators {
		if in.Pop == leader.Pop {
			continue
		}
		returners = append(returners, in)
		returners = append(returners, followers[in.Pop]...)
	}
	returnHome(returners)

	pops := append(cargoOf(followers[leader.Pop]), leader.Pop)
	st := social.ForPops(ip.ctx.RNG, ip.ctx.Names, pops, "", year, ip.ctx.TargetSize)
	ip.Settlements = append(ip.Settlements, st)
	slog.Info("new state formed", "settlement", st.Name(), "colony", ip.Name, "pops", len(pops), "year", year)
	ip.ctx.Events.Record(year, CategorySettlement, "%d pops have formed a new state of %s on %s",
		len(pops), st.Name(), ip.Name)
}

func returnHome(emigrants []social.Emigrant) {
	for _, e := range emigrants {
		e.Origin.Admit(e.Pop)
	}
}

func cargoOf(emigrants []social.Emigrant) []*population.Population {
	out := make([]*population.Population, len(emigrants))
	for i, e := range emigrants {
		out[i] = e.Pop
	}
	return out
}
