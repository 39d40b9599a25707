package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/repoviz-cli/internal/logger"
)

// Ensure VisualizerService implements the interface.
var _ driving.VisualizerService = (*VisualizerService)(nil)

// VisualizerService builds repository snapshots.
type VisualizerService struct {
	session driving.SessionService
	now     func() time.Time
}

// NewVisualizerService creates a visualizer bound to a session.
func NewVisualizerService(session driving.SessionService) *VisualizerService {
	return &VisualizerService{
		session: session,
		now:     time.Now,
	}
}

// Visualize fetches all repository metadata for a URL and returns an
// atomically built snapshot, publishing it to the session. The five
// dependent fetches run concurrently with a fail-fast join: the first
// failure aborts the aggregate and surfaces one combined error, and
// no partial snapshot is ever published.
func (v *VisualizerService) Visualize(ctx context.Context, repoURL string) (*domain.RepositorySnapshot, error) {
	owner, repo, err := domain.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	gateway := v.session.Gateway()
	if gateway == nil {
		return nil, domain.ErrAuthRequired
	}

	logger.Section("visualize " + owner + "/" + repo)

	details, err := gateway.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetch repository: %w", err)
	}
	if details.DefaultBranch == "" {
		return nil, domain.ErrNoDefaultBranch
	}
	logger.Debug("default branch: %s", details.DefaultBranch)

	var (
		entries   []domain.RepositoryEntry
		issues    []domain.Issue
		workflows []domain.Workflow
		pulls     []domain.PullRequest
		weeks     []domain.CommitWeek
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var err error
		entries, err = gateway.GetTree(gctx, owner, repo, details.DefaultBranch)
		if err == nil {
			logger.Fetched("tree", len(entries), start)
		}
		return err
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		issues, err = gateway.ListIssues(gctx, owner, repo)
		if err == nil {
			logger.Fetched("issues", len(issues), start)
		}
		return err
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		workflows, err = gateway.ListWorkflows(gctx, owner, repo)
		if err == nil {
			logger.Fetched("workflows", len(workflows), start)
		}
		return err
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		pulls, err = gateway.ListPullRequests(gctx, owner, repo)
		if err == nil {
			logger.Fetched("pulls", len(pulls), start)
		}
		return err
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		weeks, err = gateway.GetCommitActivity(gctx, owner, repo)
		if err == nil {
			logger.Fetched("commit activity", len(weeks), start)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch repository data for %s/%s: %w", owner, repo, err)
	}

	snap := &domain.RepositorySnapshot{
		Owner:        owner,
		Repo:         repo,
		Details:      *details,
		Entries:      entries,
		Issues:       issues,
		PullRequests: pulls,
		Workflows:    workflows,
		CommitWeeks:  weeks,
		Hierarchy:    domain.BuildHierarchy(entries),
		FetchedAt:    v.now(),
	}
	v.session.SetSnapshot(snap)
	logger.Info("snapshot built: %d entries, %d issues, %d pulls", len(entries), len(issues), len(pulls))
	return snap, nil
}
