package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driven"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/repoviz-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService owns the session-scoped mutable state: credential,
// gateway, rate limit, and the current snapshot. The TUI runs on a
// single event loop, so the state is replaced wholesale with
// last-writer-wins consistency and no fine-grained locking.
type SessionService struct {
	store      driven.CredentialsStore
	newGateway driven.GatewayFactory

	session  *domain.Session
	gateway  driven.RepoGateway
	snapshot *domain.RepositorySnapshot
}

// NewSessionService creates a session service over a credentials store
// and a gateway factory.
func NewSessionService(store driven.CredentialsStore, factory driven.GatewayFactory) *SessionService {
	return &SessionService{
		store:      store,
		newGateway: factory,
	}
}

// Login validates the token against the hosting API and persists it.
func (s *SessionService) Login(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", domain.ErrInvalidInput)
	}

	gateway := s.newGateway(token)
	user, err := gateway.ValidateToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("validate token: %w", err)
	}

	if err := s.store.SetGitHubToken(token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	s.session = &domain.Session{Token: token, User: *user}
	s.gateway = gateway
	s.snapshot = nil
	logger.Info("logged in as %s", user.Login)
	return s.session, nil
}

// Resume revalidates the stored token at startup. An invalid token is
// cleared so the user returns to login.
func (s *SessionService) Resume(ctx context.Context) (*domain.Session, error) {
	token := s.store.GitHubToken()
	if token == "" {
		return nil, domain.ErrAuthRequired
	}

	session, err := s.Login(ctx, token)
	if err != nil {
		logger.Warn("stored token rejected, clearing: %v", err)
		if clearErr := s.store.ClearGitHubToken(); clearErr != nil {
			return nil, fmt.Errorf("clear rejected token: %w", clearErr)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthInvalid, err)
	}
	return session, nil
}

// Logout destroys the session and removes the stored token.
func (s *SessionService) Logout() error {
	s.session = nil
	s.gateway = nil
	s.snapshot = nil
	if err := s.store.ClearGitHubToken(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Current returns the active session, or nil.
func (s *SessionService) Current() *domain.Session {
	return s.session
}

// Gateway returns the authenticated gateway, or nil before login.
func (s *SessionService) Gateway() driven.RepoGateway {
	return s.gateway
}

// RateLimit reports the most recently observed call quota. Before
// login both counters are unknown.
func (s *SessionService) RateLimit() domain.RateLimit {
	if s.gateway == nil {
		return domain.UnknownRateLimit()
	}
	return s.gateway.RateLimit()
}

// SetSnapshot publishes a freshly built snapshot.
func (s *SessionService) SetSnapshot(snap *domain.RepositorySnapshot) {
	s.snapshot = snap
}

// Snapshot returns the current snapshot, or nil.
func (s *SessionService) Snapshot() *domain.RepositorySnapshot {
	return s.snapshot
}
