package science

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Node is one step of the tech tree. Discovering it unlocks Provides and
// makes Options discoverable.
type Node struct {
	Provides []Technology
	Options  []*Node
}

// NewNode creates a leaf providing techs.
func NewNode(techs ...Technology) *Node {
	return &Node{Provides: techs}
}

// LeadsTo appends a new option providing techs and returns it, so chains
// read top to bottom.
func (n *Node) LeadsTo(techs ...Technology) *Node {
	next := NewNode(techs...)
	n.Options = append(n.Options, next)
	return next
}

func (n *Node) String() string {
	parts := make([]string, len(n.Provides))
	for i, t := range n.Provides {
		parts[i] = t.String()
	}
	s := strings.Join(parts, " and ")
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// NewTree builds the standard tree: five sublight steps to space folding,
// where it forks into a folding branch and a wormhole branch.
func NewTree() *Node {
	root := NewNode(Sublight{0.2, 10}, Chassis{2, 5})
	folding := root.
		LeadsTo(Sublight{0.4, 12}).
		LeadsTo(Sublight{0.6, 15}, Chassis{3, 10}).
		LeadsTo(Sublight{0.8, 19}).
		LeadsTo(Sublight{1, 24}, Chassis{4, 17}).
		LeadsTo(Spacefolding{2.5, 25})

	folding.
		LeadsTo(Spacefolding{5, 50}, Chassis{5, 26}).
		LeadsTo(Spacefolding{10, 75}).
		LeadsTo(Spacefolding{20, 100}, Chassis{6, 20}).
		LeadsTo(Spacefolding{40, 125}).
		LeadsTo(Spacefolding{80, 150}, Chassis{7, 15}).
		LeadsTo(Spacefolding{160, 175}).
		LeadsTo(Spacefolding{320, 200}, Chassis{8, 10})

	folding.
		LeadsTo(Wormhole{1000, 10}, Chassis{5, 26}).
		LeadsTo(Wormhole{900, 12}).
		LeadsTo(Wormhole{800, 15}, Chassis{6, 20}).
		LeadsTo(Wormhole{700, 19}).
		LeadsTo(Wormhole{600, 24}, Chassis{7, 15}).
		LeadsTo(Wormhole{500, 30}).
		LeadsTo(Wormhole{400, 37}, Chassis{8, 10}).
		LeadsTo(Wormhole{300, 45})

	return root
}

// Frontier lists the options of discovered nodes that are not yet
// discovered themselves, in discovery order.
func Frontier(discovered []*Node) []*Node {
	have := make(map[*Node]bool, len(discovered))
	for _, n := range discovered {
		have[n] = true
	}
	var out []*Node
	for _, n := range discovered {
		for _, o := range n.Options {
			if !have[o] {
				have[o] = true
				out = append(out, o)
			}
		}
	}
	return out
}

// Loadout is the best of each technology family among a set of discoveries.
type Loadout struct {
	Chassis  Chassis
	Engine   Sublight
	FTL      Spacefolding
	HasFTL   bool
	Complete bool // false when no chassis or no engine is known
}

// Best picks the largest (then cheapest) chassis, the fastest (then longest
// ranged) sublight drive and the fastest (then longest ranged) folding drive.
func Best(discovered []*Node) Loadout {
	var l Loadout
	var haveChassis, haveEngine bool
	for _, n := range discovered {
		for _, t := range n.Provides {
			switch t := t.(type) {
			case Chassis:
				if !haveChassis || t.Capacity > l.Chassis.Capacity ||
					(t.Capacity == l.Chassis.Capacity && t.Cost < l.Chassis.Cost) {
					l.Chassis, haveChassis = t, true
				}
			case Sublight:
				if !haveEngine || t.Acceleration > l.Engine.Acceleration ||
					(t.Acceleration == l.Engine.Acceleration && t.Range > l.Engine.Range) {
					l.Engine, haveEngine = t, true
				}
			case Spacefolding:
				if !l.HasFTL || t.Speed > l.FTL.Speed ||
					(t.Speed == l.FTL.Speed && t.Range > l.FTL.Range) {
					l.FTL, l.HasFTL = t, true
				}
			}
		}
	}
	l.Complete = haveChassis && haveEngine
	return l
}

// UpgradeCost is the science surplus needed to advance from level.
func UpgradeCost(level int) float64 {
	x := float64(level * 10)
	return x * x * x
}
