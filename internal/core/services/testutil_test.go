package services

import (
	"context"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driven"
)

// fakeStore is an in-memory credentials store.
type fakeStore struct {
	githubToken  string
	assistantKey string

	setTokenErr error
}

var _ driven.CredentialsStore = (*fakeStore)(nil)

func (s *fakeStore) GitHubToken() string { return s.githubToken }

func (s *fakeStore) SetGitHubToken(token string) error {
	if s.setTokenErr != nil {
		return s.setTokenErr
	}
	s.githubToken = token
	return nil
}

func (s *fakeStore) ClearGitHubToken() error {
	s.githubToken = ""
	return nil
}

func (s *fakeStore) AssistantKey() string { return s.assistantKey }

func (s *fakeStore) SetAssistantKey(key string) error {
	s.assistantKey = key
	return nil
}

func (s *fakeStore) ClearAssistantKey() error {
	s.assistantKey = ""
	return nil
}

// fakeGateway is a configurable RepoGateway test double. Unset function
// fields return zero values.
type fakeGateway struct {
	validateTokenFn     func(ctx context.Context) (*domain.User, error)
	getRepositoryFn     func(ctx context.Context, owner, repo string) (*domain.RepositoryDetails, error)
	getTreeFn           func(ctx context.Context, owner, repo, branch string) ([]domain.RepositoryEntry, error)
	listIssuesFn        func(ctx context.Context, owner, repo string) ([]domain.Issue, error)
	listWorkflowsFn     func(ctx context.Context, owner, repo string) ([]domain.Workflow, error)
	listPullRequestsFn  func(ctx context.Context, owner, repo string) ([]domain.PullRequest, error)
	getCommitActivityFn func(ctx context.Context, owner, repo string) ([]domain.CommitWeek, error)
	getFileContentFn    func(ctx context.Context, owner, repo, path string) (*driven.FileContent, error)

	fileContentCalls int
}

var _ driven.RepoGateway = (*fakeGateway)(nil)

func (g *fakeGateway) ValidateToken(ctx context.Context) (*domain.User, error) {
	if g.validateTokenFn != nil {
		return g.validateTokenFn(ctx)
	}
	return &domain.User{Login: "octocat"}, nil
}

func (g *fakeGateway) GetRepository(ctx context.Context, owner, repo string) (*domain.RepositoryDetails, error) {
	if g.getRepositoryFn != nil {
		return g.getRepositoryFn(ctx, owner, repo)
	}
	return &domain.RepositoryDetails{FullName: owner + "/" + repo, DefaultBranch: "main"}, nil
}

func (g *fakeGateway) GetTree(ctx context.Context, owner, repo, branch string) ([]domain.RepositoryEntry, error) {
	if g.getTreeFn != nil {
		return g.getTreeFn(ctx, owner, repo, branch)
	}
	return nil, nil
}

func (g *fakeGateway) ListIssues(ctx context.Context, owner, repo string) ([]domain.Issue, error) {
	if g.listIssuesFn != nil {
		return g.listIssuesFn(ctx, owner, repo)
	}
	return nil, nil
}

func (g *fakeGateway) ListWorkflows(ctx context.Context, owner, repo string) ([]domain.Workflow, error) {
	if g.listWorkflowsFn != nil {
		return g.listWorkflowsFn(ctx, owner, repo)
	}
	return nil, nil
}

func (g *fakeGateway) ListPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error) {
	if g.listPullRequestsFn != nil {
		return g.listPullRequestsFn(ctx, owner, repo)
	}
	return nil, nil
}

func (g *fakeGateway) GetCommitActivity(ctx context.Context, owner, repo string) ([]domain.CommitWeek, error) {
	if g.getCommitActivityFn != nil {
		return g.getCommitActivityFn(ctx, owner, repo)
	}
	return nil, nil
}

func (g *fakeGateway) GetFileContent(ctx context.Context, owner, repo, path string) (*driven.FileContent, error) {
	g.fileContentCalls++
	if g.getFileContentFn != nil {
		return g.getFileContentFn(ctx, owner, repo, path)
	}
	return &driven.FileContent{Type: "file", Encoding: "base64"}, nil
}

func (g *fakeGateway) RateLimit() domain.RateLimit {
	return domain.RateLimit{Limit: 5000, Remaining: 4999}
}

// newLoggedInSession builds a real session service backed by the given
// gateway, logged in and ready for use.
func newLoggedInSession(gateway *fakeGateway) (*SessionService, *fakeStore) {
	store := &fakeStore{}
	session := NewSessionService(store, func(string) driven.RepoGateway { return gateway })
	if _, err := session.Login(context.Background(), "token"); err != nil {
		panic(err)
	}
	return session, store
}

// fakeModel is a configurable AssistantModel test double.
type fakeModel struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
	pingErr    error

	prompts []string
}

var _ driven.AssistantModel = (*fakeModel)(nil)

func (m *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateFn != nil {
		return m.generateFn(ctx, prompt)
	}
	return "a reply", nil
}

func (m *fakeModel) Ping(context.Context) error {
	return m.pingErr
}

func (m *fakeModel) ModelName() string {
	return "fake-model"
}
