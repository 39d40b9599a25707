package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

func TestSetSnapshotComputesInsights(t *testing.T) {
	v := NewView(nil)
	v.now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }

	v.SetSnapshot(&domain.RepositorySnapshot{
		Entries: []domain.RepositoryEntry{
			{Path: "main.go", Type: domain.EntryBlob, Size: 2048},
		},
		Issues:       []domain.Issue{{Number: 12, Title: "crash on start", Author: "hubot"}},
		PullRequests: []domain.PullRequest{{Number: 7, Title: "add feature", Author: "octocat"}},
		Workflows:    []domain.Workflow{{Name: "CI", State: "active"}},
	})

	ins := v.Insights()
	require.NotNil(t, ins)
	assert.Equal(t, 1, ins.OpenPRCount)
	assert.Equal(t, 1, ins.OpenIssueCount)

	view := v.View()
	assert.Contains(t, view, ".go")
	assert.Contains(t, view, "2 KB")
	assert.Contains(t, view, "#12 crash on start")
	assert.Contains(t, view, "#7 add feature")
	assert.Contains(t, view, "CI (active)")
}

func TestPendingCommitActivityPrompt(t *testing.T) {
	v := NewView(nil)
	v.SetSnapshot(&domain.RepositorySnapshot{})

	assert.Contains(t, v.View(), "still computing commit statistics")
}

func TestCommitActivityRendered(t *testing.T) {
	v := NewView(nil)
	v.now = func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }
	v.SetSnapshot(&domain.RepositorySnapshot{
		CommitWeeks: []domain.CommitWeek{
			{WeekStart: time.Date(2026, time.February, 2, 12, 0, 0, 0, time.UTC).Unix(), Total: 5},
		},
	})

	view := v.View()
	assert.Contains(t, view, "Feb")
	assert.NotContains(t, view, "still computing")
}

func TestNoSnapshot(t *testing.T) {
	v := NewView(nil)
	assert.Contains(t, v.View(), "No repository loaded.")
}
