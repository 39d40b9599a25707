package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

func TestRenderRadialTree(t *testing.T) {
	root := &domain.HierarchyNode{
		Name: "root",
		Children: []*domain.HierarchyNode{
			{Name: "src", Children: []*domain.HierarchyNode{{Name: "main.go"}}},
			{Name: "README.md"},
		},
	}

	var b strings.Builder
	RenderRadialTree(&b, root, 400)

	out := b.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	// Three edges are drawn (root→src, src→main.go, root→README.md).
	assert.Equal(t, 3, strings.Count(out, "<line"))
	assert.Equal(t, 4, strings.Count(out, "<circle"))
}

func TestRenderCommitActivity(t *testing.T) {
	months := []domain.MonthBucket{
		{Month: "Jan", Commits: 3},
		{Month: "Feb", Commits: 7},
		{Month: "Mar", Commits: 1},
	}

	var b strings.Builder
	RenderCommitActivity(&b, months, 600, 300)

	out := b.String()
	assert.Contains(t, out, "<polyline")
	assert.Contains(t, out, "Jan")
	assert.Contains(t, out, "Feb")
	assert.Contains(t, out, "Mar")
}

func TestRenderCommitActivityEmptyFrame(t *testing.T) {
	var b strings.Builder
	RenderCommitActivity(&b, nil, 600, 300)

	out := b.String()
	assert.Contains(t, out, "<svg")
	assert.NotContains(t, out, "<polyline")
}
