package viz

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

// RenderRadialTree writes a radial tree SVG for the hierarchy. The
// canvas is square; the tree is centered with a small margin.
func RenderRadialTree(w io.Writer, root *domain.HierarchyNode, size int) {
	const margin = 40

	canvas := svg.New(w)
	canvas.Start(size, size)

	center := size / 2
	nodes := RadialLayout(root, float64(center-margin))

	// Edges first so nodes draw on top.
	for _, n := range nodes {
		if n.Parent < 0 {
			continue
		}
		p := nodes[n.Parent]
		canvas.Line(
			center+int(p.X), center+int(p.Y),
			center+int(n.X), center+int(n.Y),
			"stroke:#4B5563;stroke-width:1",
		)
	}
	for _, n := range nodes {
		fill := "#3B82F6"
		r := 3
		if !n.Leaf {
			fill = "#F59E0B"
			r = 4
		}
		canvas.Circle(center+int(n.X), center+int(n.Y), r, "fill:"+fill)
	}

	canvas.End()
}

// RenderCommitActivity writes a line chart of monthly commit totals.
// The caller is responsible for the empty-sequence case ("still
// computing"); rendering an empty series produces an empty chart
// frame, not a flat-zero line.
func RenderCommitActivity(w io.Writer, months []domain.MonthBucket, width, height int) {
	const (
		padTop    = 20
		padRight  = 10
		padBottom = 30
		padLeft   = 10
	)

	canvas := svg.New(w)
	canvas.Start(width, height)

	if len(months) > 1 {
		maxCommits := 1
		for _, m := range months {
			if m.Commits > maxCommits {
				maxCommits = m.Commits
			}
		}

		xs := make([]int, len(months))
		ys := make([]int, len(months))
		for i, m := range months {
			xs[i] = padLeft + i*(width-padLeft-padRight)/(len(months)-1)
			ys[i] = height - padBottom - m.Commits*(height-padTop-padBottom)/maxCommits
		}

		canvas.Polyline(xs, ys, "fill:none;stroke:#3B82F6;stroke-width:2")
		for i, m := range months {
			canvas.Circle(xs[i], ys[i], 4, "fill:#3B82F6")
			canvas.Text(xs[i], height-10, m.Month, "text-anchor:middle;fill:#9CA3AF;font-size:12px")
			canvas.Text(xs[i], ys[i]-10, fmt.Sprintf("%d", m.Commits), "text-anchor:middle;fill:#FFFFFF;font-size:11px")
		}
	}

	canvas.End()
}
