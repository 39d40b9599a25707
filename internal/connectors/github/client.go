package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the gateway port.
var _ driven.RepoGateway = (*Client)(nil)

// Client wraps the go-github client with rate limiting and error
// normalization. Each fetch issues exactly one API call at the
// endpoint's native page size; there is no pagination and no retry.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClient creates a GitHub API client with a static access token.
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:          gh.NewClient(tc),
		rateLimiter: NewRateLimiter(),
	}
}

// NewGateway adapts NewClient to the driven.GatewayFactory shape.
func NewGateway(token string) driven.RepoGateway {
	return NewClient(context.Background(), token)
}

// RateLimit reports the most recently observed call quota.
func (c *Client) RateLimit() domain.RateLimit {
	return c.rateLimiter.Snapshot()
}

// ValidateToken checks the credential by fetching the authenticated user.
func (c *Client) ValidateToken(ctx context.Context) (*domain.User, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return nil, c.wrapError(err, "validate token")
	}
	c.updateRateLimitFromResponse(resp)

	return &domain.User{
		Login:     user.GetLogin(),
		AvatarURL: user.GetAvatarURL(),
	}, nil
}

// GetRepository fetches top-level repository metadata.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*domain.RepositoryDetails, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, c.wrapError(err, "get repo")
	}
	c.updateRateLimitFromResponse(resp)

	return &domain.RepositoryDetails{
		FullName:      repository.GetFullName(),
		Stars:         repository.GetStargazersCount(),
		DefaultBranch: repository.GetDefaultBranch(),
	}, nil
}

// GetTree fetches the entire tree for a branch recursively. This is
// efficient for getting all file paths in one API call.
func (c *Client) GetTree(ctx context.Context, owner, repo, branch string) ([]domain.RepositoryEntry, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, branch, true)
	if err != nil {
		return nil, c.wrapError(err, "get tree")
	}
	c.updateRateLimitFromResponse(resp)

	entries := make([]domain.RepositoryEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		size := domain.SizeUnknown
		if e.Size != nil {
			size = int64(*e.Size)
		}
		entries = append(entries, domain.RepositoryEntry{
			Path: e.GetPath(),
			Type: domain.EntryType(e.GetType()),
			Size: size,
			SHA:  e.GetSHA(),
		})
	}
	return entries, nil
}

// ListIssues fetches one page of open issues. The endpoint also
// returns pull requests; they are passed through unchanged.
func (c *Client) ListIssues(ctx context.Context, owner, repo string) ([]domain.Issue, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	raw, resp, err := c.gh.Issues.ListByRepo(ctx, owner, repo, &gh.IssueListByRepoOptions{})
	if err != nil {
		return nil, c.wrapError(err, "list issues")
	}
	c.updateRateLimitFromResponse(resp)

	issues := make([]domain.Issue, 0, len(raw))
	for _, issue := range raw {
		labels := make([]domain.Label, 0, len(issue.Labels))
		for _, label := range issue.Labels {
			labels = append(labels, domain.Label{
				Name:  label.GetName(),
				Color: label.GetColor(),
			})
		}
		issues = append(issues, domain.Issue{
			Number: issue.GetNumber(),
			Title:  issue.GetTitle(),
			Author: issue.GetUser().GetLogin(),
			URL:    issue.GetHTMLURL(),
			Labels: labels,
		})
	}
	return issues, nil
}

// ListWorkflows fetches the repository's CI workflow definitions.
func (c *Client) ListWorkflows(ctx context.Context, owner, repo string) ([]domain.Workflow, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	raw, resp, err := c.gh.Actions.ListWorkflows(ctx, owner, repo, &gh.ListOptions{})
	if err != nil {
		return nil, c.wrapError(err, "list workflows")
	}
	c.updateRateLimitFromResponse(resp)

	workflows := make([]domain.Workflow, 0, len(raw.Workflows))
	for _, wf := range raw.Workflows {
		workflows = append(workflows, domain.Workflow{
			Name:  wf.GetName(),
			State: wf.GetState(),
			URL:   wf.GetHTMLURL(),
		})
	}
	return workflows, nil
}

// ListPullRequests fetches one page of open pull requests.
func (c *Client) ListPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	raw, resp, err := c.gh.PullRequests.List(ctx, owner, repo, &gh.PullRequestListOptions{State: "open"})
	if err != nil {
		return nil, c.wrapError(err, "list pull requests")
	}
	c.updateRateLimitFromResponse(resp)

	pulls := make([]domain.PullRequest, 0, len(raw))
	for _, pr := range raw {
		pulls = append(pulls, domain.PullRequest{
			Number: pr.GetNumber(),
			Title:  pr.GetTitle(),
			Author: pr.GetUser().GetLogin(),
			URL:    pr.GetHTMLURL(),
		})
	}
	return pulls, nil
}

// GetCommitActivity fetches weekly commit totals. HTTP 202 means the
// hosting API is still computing the statistics: the result is
// (nil, nil), not retried and not surfaced as failure, so callers can
// distinguish "not yet available" from "zero activity".
func (c *Client) GetCommitActivity(ctx context.Context, owner, repo string) ([]domain.CommitWeek, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	raw, resp, err := c.gh.Repositories.ListCommitActivity(ctx, owner, repo)
	if err != nil {
		var accepted *gh.AcceptedError
		if errors.As(err, &accepted) {
			c.updateRateLimitFromResponse(resp)
			return nil, nil
		}
		return nil, c.wrapError(err, "get commit activity")
	}
	c.updateRateLimitFromResponse(resp)

	weeks := make([]domain.CommitWeek, 0, len(raw))
	for _, w := range raw {
		weeks = append(weeks, domain.CommitWeek{
			WeekStart: w.GetWeek().Unix(),
			Total:     w.GetTotal(),
		})
	}
	return weeks, nil
}

// GetFileContent fetches the raw content payload for a single path,
// keeping the content-transfer-encoding tag intact so the content
// resolver owns the decode path.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path string) (*driven.FileContent, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	fileContent, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, c.wrapError(err, "get contents")
	}
	c.updateRateLimitFromResponse(resp)

	if fileContent == nil {
		return nil, &APIError{StatusCode: 404, Message: fmt.Sprintf("%s is a directory, not a file", path)}
	}

	content := &driven.FileContent{
		Type:     fileContent.GetType(),
		Encoding: fileContent.GetEncoding(),
	}
	if fileContent.Content != nil {
		content.Content = *fileContent.Content
	}
	return content, nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub
// response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to the gateway error types.
// Non-success responses never yield a partial payload.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.rateLimiter.ResetTime(),
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		status := 0
		if ghErr.Response != nil {
			status = ghErr.Response.StatusCode
		}
		message := ghErr.Message
		if message == "" {
			message = fmt.Sprintf("HTTP error %d", status)
		}
		return &APIError{StatusCode: status, Message: message}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
