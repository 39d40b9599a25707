package viz

import (
	"math"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

// PositionedNode is a hierarchy node placed on the radial plane.
// Coordinates are relative to the layout center.
type PositionedNode struct {
	Name  string
	Depth int
	X     float64
	Y     float64

	// Parent is the index of the parent node in the layout slice,
	// or -1 for the root.
	Parent int

	// Leaf marks childless nodes (blobs and empty directories).
	Leaf bool
}

// RadialLayout places a hierarchy on concentric rings: depth maps to
// ring radius and each subtree receives an angular span proportional
// to its leaf count. The root sits at the center. Nodes are emitted
// parent-before-child, so edges can be drawn by walking Parent links.
func RadialLayout(root *domain.HierarchyNode, radius float64) []PositionedNode {
	if root == nil {
		return nil
	}

	maxDepth := root.Depth()
	if maxDepth == 0 {
		maxDepth = 1
	}
	ringStep := radius / float64(maxDepth)

	var nodes []PositionedNode
	var place func(n *domain.HierarchyNode, depth, parent int, from, to float64)
	place = func(n *domain.HierarchyNode, depth, parent int, from, to float64) {
		angle := (from + to) / 2
		r := float64(depth) * ringStep

		index := len(nodes)
		nodes = append(nodes, PositionedNode{
			Name:   n.Name,
			Depth:  depth,
			X:      r * math.Cos(angle),
			Y:      r * math.Sin(angle),
			Parent: parent,
			Leaf:   len(n.Children) == 0,
		})

		total := n.Leaves()
		cursor := from
		for _, child := range n.Children {
			span := (to - from) * float64(child.Leaves()) / float64(total)
			place(child, depth+1, index, cursor, cursor+span)
			cursor += span
		}
	}

	place(root, 0, -1, 0, 2*math.Pi)
	return nodes
}
