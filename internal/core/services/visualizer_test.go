package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driven"
)

func TestVisualize(t *testing.T) {
	gateway := &fakeGateway{
		getTreeFn: func(_ context.Context, _, _, branch string) ([]domain.RepositoryEntry, error) {
			assert.Equal(t, "main", branch)
			return []domain.RepositoryEntry{
				{Path: "src/main.go", Type: domain.EntryBlob, Size: 100},
				{Path: "README.md", Type: domain.EntryBlob, Size: 50},
			}, nil
		},
		listIssuesFn: func(context.Context, string, string) ([]domain.Issue, error) {
			return []domain.Issue{{Number: 1, Title: "an issue"}}, nil
		},
		listPullRequestsFn: func(context.Context, string, string) ([]domain.PullRequest, error) {
			return []domain.PullRequest{{Number: 2, Title: "a pull"}}, nil
		},
		getCommitActivityFn: func(context.Context, string, string) ([]domain.CommitWeek, error) {
			return []domain.CommitWeek{{WeekStart: 1700000000, Total: 3}}, nil
		},
	}
	session, _ := newLoggedInSession(gateway)
	svc := NewVisualizerService(session)

	snap, err := svc.Visualize(context.Background(), "https://github.com/octo/repo")
	require.NoError(t, err)

	assert.Equal(t, "octo", snap.Owner)
	assert.Equal(t, "repo", snap.Repo)
	assert.Equal(t, "octo/repo", snap.Details.FullName)
	assert.Len(t, snap.Entries, 2)
	assert.Len(t, snap.Issues, 1)
	assert.Len(t, snap.PullRequests, 1)
	assert.Len(t, snap.CommitWeeks, 1)
	require.NotNil(t, snap.Hierarchy)
	assert.Equal(t, "root", snap.Hierarchy.Name)
	assert.False(t, snap.FetchedAt.IsZero())

	// The snapshot is published to the session.
	assert.Same(t, snap, session.Snapshot())
}

func TestVisualizeInvalidURL(t *testing.T) {
	session, _ := newLoggedInSession(&fakeGateway{})
	svc := NewVisualizerService(session)

	_, err := svc.Visualize(context.Background(), "https://github.com/onlyowner")
	assert.ErrorIs(t, err, domain.ErrInvalidRepoURL)
}

func TestVisualizeWithoutLogin(t *testing.T) {
	session := NewSessionService(&fakeStore{}, func(string) driven.RepoGateway { return &fakeGateway{} })
	svc := NewVisualizerService(session)

	_, err := svc.Visualize(context.Background(), "https://github.com/octo/repo")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestVisualizeNoDefaultBranch(t *testing.T) {
	gateway := &fakeGateway{
		getRepositoryFn: func(_ context.Context, owner, repo string) (*domain.RepositoryDetails, error) {
			return &domain.RepositoryDetails{FullName: owner + "/" + repo}, nil
		},
	}
	session, _ := newLoggedInSession(gateway)
	svc := NewVisualizerService(session)

	_, err := svc.Visualize(context.Background(), "https://github.com/octo/repo")
	assert.ErrorIs(t, err, domain.ErrNoDefaultBranch)
}

func TestVisualizeAggregateFailure(t *testing.T) {
	// A single failed fetch aborts the whole aggregate; no partial
	// snapshot is published.
	gateway := &fakeGateway{
		listIssuesFn: func(context.Context, string, string) ([]domain.Issue, error) {
			return nil, errors.New("boom")
		},
	}
	session, _ := newLoggedInSession(gateway)
	svc := NewVisualizerService(session)

	snap, err := svc.Visualize(context.Background(), "https://github.com/octo/repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch repository data for octo/repo")
	assert.Nil(t, snap)
	assert.Nil(t, session.Snapshot())
}

func TestVisualizePendingCommitActivity(t *testing.T) {
	// (nil, nil) from the gateway while statistics are computing yields
	// a snapshot with nil CommitWeeks, not an error.
	session, _ := newLoggedInSession(&fakeGateway{})
	svc := NewVisualizerService(session)

	snap, err := svc.Visualize(context.Background(), "https://github.com/octo/repo")
	require.NoError(t, err)
	assert.Nil(t, snap.CommitWeeks)
}
