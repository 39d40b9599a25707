package driving

import (
	"context"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driven"
)

// SessionService owns the session credential, the rate limit counters,
// and the current repository snapshot. All three are replaced
// wholesale, never incrementally mutated.
type SessionService interface {
	// Login validates the token against the hosting API and persists
	// it on success.
	Login(ctx context.Context, token string) (*domain.Session, error)

	// Resume revalidates a previously stored token at startup. A
	// rejected token is cleared and domain.ErrAuthInvalid returned; a
	// missing token returns domain.ErrAuthRequired.
	Resume(ctx context.Context) (*domain.Session, error)

	// Logout destroys the session and removes the stored token.
	Logout() error

	// Current returns the active session, or nil.
	Current() *domain.Session

	// Gateway returns the authenticated API gateway, or nil before
	// login.
	Gateway() driven.RepoGateway

	// RateLimit reports the most recently observed call quota.
	RateLimit() domain.RateLimit

	// SetSnapshot publishes a freshly built snapshot.
	SetSnapshot(snap *domain.RepositorySnapshot)

	// Snapshot returns the current snapshot, or nil.
	Snapshot() *domain.RepositorySnapshot
}
