package science

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeShape(t *testing.T) {
	root := NewTree()
	require.Len(t, root.Options, 1)

	n := root
	for i := 0; i < 5; i++ {
		require.Len(t, n.Options, 1)
		n = n.Options[0]
	}
	require.Equal(t, []Technology{Spacefolding{2.5, 25}}, n.Provides)
	assert.Len(t, n.Options, 2, "folding and wormhole branches")
}

func TestTreesAreIndependent(t *testing.T) {
	a, b := NewTree(), NewTree()
	a.LeadsTo(Sublight{9, 9})
	assert.Len(t, b.Options, 1)
}

func TestFrontier(t *testing.T) {
	root := NewTree()
	assert.Equal(t, root.Options, Frontier([]*Node{root}))

	next := root.Options[0]
	assert.Equal(t, next.Options, Frontier([]*Node{root, next}))
	assert.Empty(t, Frontier(nil))
}

func TestBestLoadout(t *testing.T) {
	root := NewTree()
	l := Best([]*Node{root})
	require.True(t, l.Complete)
	assert.Equal(t, Chassis{2, 5}, l.Chassis)
	assert.Equal(t, Sublight{0.2, 10}, l.Engine)
	assert.False(t, l.HasFTL)

	a := NewNode(Chassis{5, 26}, Spacefolding{2.5, 25})
	b := NewNode(Chassis{5, 20}, Spacefolding{2.5, 50}, Sublight{1, 24})
	l = Best([]*Node{root, a, b})
	assert.Equal(t, Chassis{5, 20}, l.Chassis, "cheaper wins a capacity tie")
	assert.Equal(t, Spacefolding{2.5, 50}, l.FTL)
	assert.Equal(t, Sublight{1, 24}, l.Engine)

	assert.False(t, Best(nil).Complete)
}

func TestNodeString(t *testing.T) {
	n := NewNode(Chassis{2, 5})
	assert.Equal(t, "Spacecraft carrying 2 pops costing 5/pop", n.String())
}

func TestUpgradeCost(t *testing.T) {
	assert.Equal(t, 1000.0, UpgradeCost(1))
	assert.Equal(t, 8000.0, UpgradeCost(2))
}
