// Factions: blocs of colonies sharing a political outlook.
// A colony joins the faction of the world that founded it when its first
// government shares that world's dominant outlook, and founds its own
// faction otherwise.
package engine

import (
	"fmt"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/talgya/destiny/internal/dice"
)

// Faction is a bloc of colonies.
type Faction struct {
	ID      uuid.UUID          `json:"id"`
	Name    string             `json:"name"`
	Outlook int                `json:"outlook"` // opinion hash shared by members
	Founded int                `json:"founded"`
	Members []*InhabitedPlanet `json:"-"`
}

// factionTypes names a bloc after its members' outlook, by opinion hash.
var factionTypes = [32]string{
	0b00000: "empire",
	0b10000: "hegemony",
	0b01000: "dominion",
	0b11000: "congregation",
	0b00100: "alliance",
	0b10100: "axis",
	0b01100: "pact",
	0b11100: "crusade",
	0b00010: "kingdom",
	0b10010: "bloc",
	0b01010: "coalition",
	0b11010: "league",
	0b00110: "concordat",
	0b10110: "combine",
	0b01110: "fraternity",
	0b11110: "sorority",
	0b00001: "affiliation",
	0b10001: "federation",
	0b01001: "compact",
	0b11001: "league",
	0b00101: "entente",
	0b10101: "guild",
	0b01101: "consortium",
	0b11101: "syndicate",
	0b00011: "association",
	0b10011: "confederation",
	0b01011: "treaty",
	0b11011: "mutual",
	0b00111: "conjunction",
	0b10111: "accord",
	0b01111: "communion",
	0b11111: "collaboration",
}

var (
	factionPrefixes   = []string{"new ", "old ", "post-", "pre-", "inter-", "extra-"}
	factionAdjectives = []string{"ancient", "golden", "democratic", "stellar", "eternal", "traditional", "modern", "utopian"}
)

// Outlook is the opinion hash of the government ruling most of ip's people.
func (ip *InhabitedPlanet) Outlook() int {
	weight := make(map[int]int)
	best, bestWeight := -1, -1
	for _, s := range ip.Settlements {
		h := s.Government.Traits().OpinionHash()
		weight[h] += s.Population()
		if weight[h] > bestWeight {
			best, bestWeight = h, weight[h]
		}
	}
	return best
}

// foundFaction starts a new faction led by ip.
func (c *Context) foundFaction(ip *InhabitedPlanet, year int) *Faction {
	f := &Faction{
		ID:      uuid.New(),
		Outlook: ip.Outlook(),
		Founded: year,
		Members: []*InhabitedPlanet{ip},
	}
	f.Name = c.factionName(f)
	ip.Faction = f
	c.Factions = append(c.Factions, f)
	slog.Info("faction founded", "faction", f.Name, "colony", ip.Name, "year", year)
	c.Events.Record(year, CategoryFaction, "%s founded the %s", ip.Name, f.Name)
	return f
}

// joinFaction places a new colony in origin's faction or a faction of its own.
func (c *Context) joinFaction(ip, origin *InhabitedPlanet, year int) {
	if origin != nil && origin.Faction != nil && ip.Outlook() == origin.Outlook() {
		ip.Faction = origin.Faction
		origin.Faction.Members = append(origin.Faction.Members, ip)
		return
	}
	c.foundFaction(ip, year)
}

// factionName composes a name from the members' places, peoples and outlooks.
func (c *Context) factionName(f *Faction) string {
	rng := c.RNG
	var nouns, kinds []string
	for _, ip := range f.Members {
		nouns = append(nouns, ip.Name)
		for _, s := range ip.Settlements {
			nouns = append(nouns, s.Name())
			kinds = append(kinds, factionTypes[s.Government.Traits().OpinionHash()])
			for _, p := range s.Members {
				if culture := p.PrimaryCulture(); culture != "" {
					nouns = append(nouns, culture)
				}
			}
		}
	}
	if len(nouns) == 0 {
		nouns = []string{"stellar"}
	}
	if len(kinds) == 0 {
		kinds = []string{factionTypes[f.Outlook&0b11111]}
	}

	noun := dice.Choice(rng, nouns)
	kind := dice.Choice(rng, kinds)
	prefix := dice.Choice(rng, factionPrefixes)
	adjective := dice.Choice(rng, factionAdjectives)
	name := dice.Choice(rng, []string{
		fmt.Sprintf("%s%s %s", prefix, noun, kind),
		fmt.Sprintf("%s %s %s", noun, adjective, kind),
		fmt.Sprintf("%s %s of %s", adjective, kind, noun),
		fmt.Sprintf("%s%s %s %s", prefix, adjective, noun, kind),
		fmt.Sprintf("%s %s", noun, kind),
		fmt.Sprintf("%s %s", adjective, kind),
		fmt.Sprintf("%s%s %s", prefix, adjective, kind),
		fmt.Sprintf("%s%s", prefix, noun),
	})
	return capitalise(name)
}

func capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
