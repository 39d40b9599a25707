// Package insights provides the repository insights view for the TUI.
package insights

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

// maxBarWidth caps histogram bars so long tails stay readable.
const maxBarWidth = 24

// View renders aggregate statistics for the loaded snapshot.
type View struct {
	styles *styles.Styles

	snapshot *domain.RepositorySnapshot
	insights *domain.Insights

	width  int
	height int

	// now is injected for deterministic tests.
	now func() time.Time
}

// NewView creates a new insights view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		now:    time.Now,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetSnapshot loads a snapshot and computes its insights once.
func (v *View) SetSnapshot(snap *domain.RepositorySnapshot) {
	v.snapshot = snap
	if snap == nil {
		v.insights = nil
		return
	}
	v.insights = domain.ComputeInsights(snap, v.now())
}

// Update handles messages for the insights view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if keyMsg.String() == "r" {
		return v, func() tea.Msg {
			return messages.RefreshRequested{}
		}
	}

	return v, nil
}

// View renders the insights view.
func (v *View) View() string {
	if v.insights == nil {
		return v.styles.Muted.Render("No repository loaded.")
	}

	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Insights"))
	b.WriteString("\n\n")

	v.renderFileTypes(&b)
	v.renderLargestFiles(&b)
	v.renderIssueLabels(&b)
	v.renderOpenIssues(&b)
	v.renderPullRequests(&b)
	v.renderWorkflows(&b)
	v.renderCommitActivity(&b)

	b.WriteString(v.styles.Help.Render("[r] refresh"))
	return b.String()
}

func (v *View) renderFileTypes(b *strings.Builder) {
	b.WriteString(v.styles.Title.Render("File types"))
	b.WriteString("\n")
	if len(v.insights.FileTypes) == 0 {
		b.WriteString(v.styles.Muted.Render("  (no files)"))
		b.WriteString("\n")
	}
	v.renderBars(b, v.insights.FileTypes)
	b.WriteString("\n")
}

func (v *View) renderLargestFiles(b *strings.Builder) {
	b.WriteString(v.styles.Title.Render("Largest files"))
	b.WriteString("\n")
	if len(v.insights.LargestFiles) == 0 {
		b.WriteString(v.styles.Muted.Render("  (no sized files)"))
		b.WriteString("\n")
	}
	for _, f := range v.insights.LargestFiles {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			v.styles.Normal.Render(f.Path),
			v.styles.Muted.Render(domain.FormatBytes(f.Size)),
		))
	}
	b.WriteString("\n")
}

func (v *View) renderIssueLabels(b *strings.Builder) {
	b.WriteString(v.styles.Title.Render("Issue labels"))
	b.WriteString("\n")
	if len(v.insights.IssueLabels) == 0 {
		b.WriteString(v.styles.Muted.Render("  (no labelled issues)"))
		b.WriteString("\n")
	}
	v.renderBars(b, v.insights.IssueLabels)
	b.WriteString("\n")
}

func (v *View) renderOpenIssues(b *strings.Builder) {
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Open issues (%d)", v.insights.OpenIssueCount)))
	b.WriteString("\n")
	if len(v.insights.OpenIssues) == 0 {
		b.WriteString(v.styles.Muted.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, issue := range v.insights.OpenIssues {
		b.WriteString(fmt.Sprintf("  #%d %s %s\n",
			issue.Number,
			v.styles.Normal.Render(issue.Title),
			v.styles.Muted.Render("by "+issue.Author),
		))
	}
	b.WriteString("\n")
}

func (v *View) renderWorkflows(b *strings.Builder) {
	b.WriteString(v.styles.Title.Render("Workflows"))
	b.WriteString("\n")
	if len(v.insights.Workflows) == 0 {
		b.WriteString(v.styles.Muted.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, wf := range v.insights.Workflows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			v.styles.Normal.Render(wf.Name),
			v.styles.Muted.Render("("+wf.State+")"),
		))
	}
	b.WriteString("\n")
}

func (v *View) renderPullRequests(b *strings.Builder) {
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Open pull requests (%d)", v.insights.OpenPRCount)))
	b.WriteString("\n")
	if len(v.insights.OpenPullRequests) == 0 {
		b.WriteString(v.styles.Muted.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, pr := range v.insights.OpenPullRequests {
		b.WriteString(fmt.Sprintf("  #%d %s %s\n",
			pr.Number,
			v.styles.Normal.Render(pr.Title),
			v.styles.Muted.Render("by "+pr.Author),
		))
	}
	b.WriteString("\n")
}

func (v *View) renderCommitActivity(b *strings.Builder) {
	b.WriteString(v.styles.Title.Render("Commits (last 12 months)"))
	b.WriteString("\n")

	if len(v.insights.MonthlyCommits) == 0 {
		b.WriteString(v.styles.Warning.Render(
			"  GitHub is still computing commit statistics. Press r to retry.",
		))
		b.WriteString("\n\n")
		return
	}

	maxCommits := 1
	for _, m := range v.insights.MonthlyCommits {
		if m.Commits > maxCommits {
			maxCommits = m.Commits
		}
	}
	for _, m := range v.insights.MonthlyCommits {
		bar := strings.Repeat("█", m.Commits*maxBarWidth/maxCommits)
		b.WriteString(fmt.Sprintf("  %s %s %d\n",
			v.styles.Muted.Render(m.Month),
			v.styles.Normal.Render(bar),
			m.Commits,
		))
	}
	b.WriteString("\n")
}

// renderBars renders a count histogram with proportional bars.
func (v *View) renderBars(b *strings.Builder, buckets []domain.CountBucket) {
	maxCount := 1
	for _, bucket := range buckets {
		if bucket.Count > maxCount {
			maxCount = bucket.Count
		}
	}
	for _, bucket := range buckets {
		bar := strings.Repeat("█", bucket.Count*maxBarWidth/maxCount)
		b.WriteString(fmt.Sprintf("  %-12s %s %d\n",
			bucket.Label,
			v.styles.Normal.Render(bar),
			bucket.Count,
		))
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Insights returns the computed insights, for tests.
func (v *View) Insights() *domain.Insights {
	return v.insights
}
