package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DirectoryTreeNode is a recursive mapping from a single path segment
// to its children, used for list/tree display.
//
// A node is a directory iff it has at least one child. If the source
// data attaches a blob to a node that also holds children, the entry
// stays attached but directory-ness is still decided solely by the
// child map. The tree is built wholesale from an entry list and never
// mutated in place.
type DirectoryTreeNode struct {
	// Children maps a path segment to its subtree.
	Children map[string]*DirectoryTreeNode

	// Entry is set iff this node marks a blob leaf.
	Entry *RepositoryEntry
}

// IsDir reports whether the node represents a directory.
func (n *DirectoryTreeNode) IsDir() bool {
	return len(n.Children) > 0
}

// BuildDirectoryTree converts a flat entry list into a nested directory
// tree keyed by path segment. An empty entry list yields an
// empty-children root; consumers render a "no files" state for it.
func BuildDirectoryTree(entries []RepositoryEntry) *DirectoryTreeNode {
	root := &DirectoryTreeNode{Children: map[string]*DirectoryTreeNode{}}

	for i := range entries {
		entry := entries[i]
		node := root
		segments := strings.Split(entry.Path, "/")
		for j, segment := range segments {
			child, ok := node.Children[segment]
			if !ok {
				child = &DirectoryTreeNode{Children: map[string]*DirectoryTreeNode{}}
				node.Children[segment] = child
			}
			if j == len(segments)-1 && entry.IsBlob() {
				e := entry
				child.Entry = &e
			}
			node = child
		}
	}

	return root
}

// SortedChildren returns the node's child segments in render order:
// directories before files, then locale-aware lexicographic by name.
func (n *DirectoryTreeNode) SortedChildren() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}

	c := collate.New(language.English)
	sort.Slice(names, func(i, j int) bool {
		a, b := n.Children[names[i]], n.Children[names[j]]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return c.CompareString(names[i], names[j]) < 0
	})

	return names
}

// WalkBlobs visits every blob leaf in the tree. Paths are rebuilt from
// the segments walked, so a full traversal yields exactly the blob
// paths the tree was built from.
func (n *DirectoryTreeNode) WalkBlobs(fn func(path string, entry RepositoryEntry)) {
	n.walkBlobs(nil, fn)
}

func (n *DirectoryTreeNode) walkBlobs(segments []string, fn func(string, RepositoryEntry)) {
	if n.Entry != nil {
		fn(strings.Join(segments, "/"), *n.Entry)
	}
	for name, child := range n.Children {
		child.walkBlobs(append(segments, name), fn)
	}
}

// HierarchyNode is a name+children structure consumed by layout
// algorithms. It carries no file metadata; the ancestor path is
// recomputed by the consumer at render time, not stored.
type HierarchyNode struct {
	Name     string
	Children []*HierarchyNode
}

// BuildHierarchy converts a flat entry list into a hierarchy rooted at
// a node named "root". Child lookup during construction is by name
// equality among already-inserted children, first match wins, so
// entries sharing a path prefix share the node.
func BuildHierarchy(entries []RepositoryEntry) *HierarchyNode {
	root := &HierarchyNode{Name: "root"}

	for _, entry := range entries {
		node := root
		for _, segment := range strings.Split(entry.Path, "/") {
			var child *HierarchyNode
			for _, c := range node.Children {
				if c.Name == segment {
					child = c
					break
				}
			}
			if child == nil {
				child = &HierarchyNode{Name: segment}
				node.Children = append(node.Children, child)
			}
			node = child
		}
	}

	return root
}

// Leaves counts leaf nodes under n, counting n itself when childless.
func (n *HierarchyNode) Leaves() int {
	if len(n.Children) == 0 {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.Leaves()
	}
	return total
}

// Depth returns the maximum depth below n; a leaf has depth 0.
func (n *HierarchyNode) Depth() int {
	max := 0
	for _, c := range n.Children {
		if d := c.Depth() + 1; d > max {
			max = d
		}
	}
	return max
}
