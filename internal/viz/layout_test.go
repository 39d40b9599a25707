package viz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

func TestRadialLayoutNil(t *testing.T) {
	assert.Nil(t, RadialLayout(nil, 100))
}

func TestRadialLayoutSingleNode(t *testing.T) {
	root := &domain.HierarchyNode{Name: "root"}

	nodes := RadialLayout(root, 100)

	require.Len(t, nodes, 1)
	assert.Equal(t, "root", nodes[0].Name)
	assert.Equal(t, -1, nodes[0].Parent)
	assert.InDelta(t, 0, nodes[0].X, 1e-9)
	assert.InDelta(t, 0, nodes[0].Y, 1e-9)
	assert.True(t, nodes[0].Leaf)
}

func TestRadialLayoutTwoLeaves(t *testing.T) {
	root := &domain.HierarchyNode{
		Name: "root",
		Children: []*domain.HierarchyNode{
			{Name: "a"},
			{Name: "b"},
		},
	}

	nodes := RadialLayout(root, 100)

	require.Len(t, nodes, 3)
	assert.Equal(t, -1, nodes[0].Parent)
	assert.False(t, nodes[0].Leaf)

	// Each leaf takes half the circle; depth 1 sits on the outer ring.
	a, b := nodes[1], nodes[2]
	assert.Equal(t, 0, a.Parent)
	assert.Equal(t, 0, b.Parent)
	assert.InDelta(t, 100, math.Hypot(a.X, a.Y), 1e-6)
	assert.InDelta(t, 100, math.Hypot(b.X, b.Y), 1e-6)

	// Opposite halves: angles π/2 and 3π/2.
	assert.InDelta(t, 0, a.X, 1e-6)
	assert.InDelta(t, 100, a.Y, 1e-6)
	assert.InDelta(t, 0, b.X, 1e-6)
	assert.InDelta(t, -100, b.Y, 1e-6)
}

func TestRadialLayoutParentBeforeChild(t *testing.T) {
	root := &domain.HierarchyNode{
		Name: "root",
		Children: []*domain.HierarchyNode{
			{Name: "dir", Children: []*domain.HierarchyNode{
				{Name: "leaf1"},
				{Name: "leaf2"},
			}},
			{Name: "file"},
		},
	}

	nodes := RadialLayout(root, 120)

	require.Len(t, nodes, 5)
	for i, n := range nodes {
		if n.Parent >= 0 {
			assert.Less(t, n.Parent, i, "parent of %s must precede it", n.Name)
		}
	}
}

func TestRadialLayoutSpanProportionalToLeaves(t *testing.T) {
	// A subtree with three leaves gets three times the angular span of
	// a single leaf, so its midpoint angle reflects the wider slice.
	root := &domain.HierarchyNode{
		Name: "root",
		Children: []*domain.HierarchyNode{
			{Name: "big", Children: []*domain.HierarchyNode{
				{Name: "l1"}, {Name: "l2"}, {Name: "l3"},
			}},
			{Name: "small"},
		},
	}

	nodes := RadialLayout(root, 100)

	var big, small PositionedNode
	for _, n := range nodes {
		switch n.Name {
		case "big":
			big = n
		case "small":
			small = n
		}
	}

	// big spans [0, 3π/2) so its center is 3π/4; small spans the last
	// quarter with center 7π/4.
	bigAngle := math.Atan2(big.Y, big.X)
	assert.InDelta(t, 3*math.Pi/4, bigAngle, 1e-6)

	smallAngle := math.Atan2(small.Y, small.X)
	if smallAngle < 0 {
		smallAngle += 2 * math.Pi
	}
	assert.InDelta(t, 7*math.Pi/4, smallAngle, 1e-6)
}
