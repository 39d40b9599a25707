package driven

import (
	"context"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

// FileContent is the raw content payload for a single file, carrying
// the content-transfer-encoding tag as reported by the API. Decoding
// is the content resolver's job, so placeholder semantics stay in one
// place.
type FileContent struct {
	// Type is the payload type ("file", "symlink", "submodule", ...).
	Type string

	// Encoding is the content-transfer-encoding tag ("base64").
	Encoding string

	// Content is the encoded payload.
	Content string
}

// RepoGateway wraps outbound calls to the source-control hosting API.
// Every method either returns a complete payload or fails; there are
// no partial results and no retries. Implementations surface rate
// limit headers through RateLimit after each call that carries them.
type RepoGateway interface {
	// ValidateToken checks the credential by fetching the
	// authenticated user. Used by login and startup revalidation.
	ValidateToken(ctx context.Context) (*domain.User, error)

	// GetRepository fetches top-level repository metadata.
	GetRepository(ctx context.Context, owner, repo string) (*domain.RepositoryDetails, error)

	// GetTree fetches the full recursive tree for a branch.
	GetTree(ctx context.Context, owner, repo, branch string) ([]domain.RepositoryEntry, error)

	// ListIssues fetches open issues (one page, native page size).
	ListIssues(ctx context.Context, owner, repo string) ([]domain.Issue, error)

	// ListWorkflows fetches CI workflow definitions.
	ListWorkflows(ctx context.Context, owner, repo string) ([]domain.Workflow, error)

	// ListPullRequests fetches open pull requests.
	ListPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error)

	// GetCommitActivity fetches weekly commit totals. While the
	// hosting API is still computing them it returns (nil, nil):
	// not yet available is not an error and is not retried.
	GetCommitActivity(ctx context.Context, owner, repo string) ([]domain.CommitWeek, error)

	// GetFileContent fetches the raw content payload for one path.
	GetFileContent(ctx context.Context, owner, repo, path string) (*FileContent, error)

	// RateLimit reports the most recently observed call quota.
	RateLimit() domain.RateLimit
}

// GatewayFactory builds a gateway bound to a credential. The session
// service uses it to validate candidate tokens before persisting them.
type GatewayFactory func(token string) RepoGateway
