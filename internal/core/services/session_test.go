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

func TestSessionLogin(t *testing.T) {
	gateway := &fakeGateway{}
	store := &fakeStore{}
	svc := NewSessionService(store, func(string) driven.RepoGateway { return gateway })

	session, err := svc.Login(context.Background(), "tok123")
	require.NoError(t, err)

	assert.Equal(t, "octocat", session.User.Login)
	assert.Equal(t, "tok123", session.Token)
	assert.Equal(t, "tok123", store.githubToken)
	assert.Same(t, session, svc.Current())
	assert.NotNil(t, svc.Gateway())
}

func TestSessionLoginEmptyToken(t *testing.T) {
	svc := NewSessionService(&fakeStore{}, func(string) driven.RepoGateway { return &fakeGateway{} })

	_, err := svc.Login(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionLoginRejectedToken(t *testing.T) {
	gateway := &fakeGateway{
		validateTokenFn: func(context.Context) (*domain.User, error) {
			return nil, errors.New("401 bad credentials")
		},
	}
	store := &fakeStore{}
	svc := NewSessionService(store, func(string) driven.RepoGateway { return gateway })

	_, err := svc.Login(context.Background(), "bad")
	require.Error(t, err)
	assert.Empty(t, store.githubToken)
	assert.Nil(t, svc.Current())
}

func TestSessionResumeNoToken(t *testing.T) {
	svc := NewSessionService(&fakeStore{}, func(string) driven.RepoGateway { return &fakeGateway{} })

	_, err := svc.Resume(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestSessionResumeValidToken(t *testing.T) {
	store := &fakeStore{githubToken: "stored"}
	svc := NewSessionService(store, func(string) driven.RepoGateway { return &fakeGateway{} })

	session, err := svc.Resume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored", session.Token)
}

func TestSessionResumeRejectedTokenCleared(t *testing.T) {
	gateway := &fakeGateway{
		validateTokenFn: func(context.Context) (*domain.User, error) {
			return nil, errors.New("401 bad credentials")
		},
	}
	store := &fakeStore{githubToken: "stale"}
	svc := NewSessionService(store, func(string) driven.RepoGateway { return gateway })

	_, err := svc.Resume(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
	assert.Empty(t, store.githubToken)
}

func TestSessionLogout(t *testing.T) {
	svc, store := newLoggedInSession(&fakeGateway{})
	svc.SetSnapshot(&domain.RepositorySnapshot{Owner: "o", Repo: "r"})

	require.NoError(t, svc.Logout())

	assert.Nil(t, svc.Current())
	assert.Nil(t, svc.Gateway())
	assert.Nil(t, svc.Snapshot())
	assert.Empty(t, store.githubToken)
}

func TestSessionRateLimitBeforeLogin(t *testing.T) {
	svc := NewSessionService(&fakeStore{}, func(string) driven.RepoGateway { return &fakeGateway{} })

	rl := svc.RateLimit()
	assert.Equal(t, domain.RateLimitUnknown, rl.Limit)
	assert.Equal(t, domain.RateLimitUnknown, rl.Remaining)
	assert.Equal(t, "N/A / N/A", rl.String())
}

func TestSessionRateLimitAfterLogin(t *testing.T) {
	svc, _ := newLoggedInSession(&fakeGateway{})

	rl := svc.RateLimit()
	assert.Equal(t, 5000, rl.Limit)
	assert.Equal(t, "4999 / 5000", rl.String())
}
