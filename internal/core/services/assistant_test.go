package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driven"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
)

// fakeContent resolves every path to a canned string.
type fakeContent struct {
	generation uint64
}

var _ driving.ContentService = (*fakeContent)(nil)

func (c *fakeContent) Resolve(_ context.Context, _ *domain.RepositorySnapshot, path string) (string, uint64) {
	c.generation++
	return fmt.Sprintf("contents of %s", path), c.generation
}

func (c *fakeContent) Latest() uint64 { return c.generation }

func newAssistant(model *fakeModel, store *fakeStore) *AssistantService {
	return NewAssistantService(store, func(string) driven.AssistantModel { return model }, &fakeContent{})
}

func TestSaveKey(t *testing.T) {
	store := &fakeStore{}
	svc := newAssistant(&fakeModel{}, store)

	require.NoError(t, svc.SaveKey(context.Background(), "key123"))
	assert.Equal(t, "key123", store.assistantKey)
	assert.True(t, svc.KeyConfigured())
}

func TestSaveKeyRejected(t *testing.T) {
	store := &fakeStore{}
	svc := newAssistant(&fakeModel{pingErr: errors.New("403 forbidden")}, store)

	err := svc.SaveKey(context.Background(), "badkey")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAssistantKeyInvalid)
	assert.Empty(t, store.assistantKey)
	assert.False(t, svc.KeyConfigured())
}

func TestSaveKeyEmpty(t *testing.T) {
	svc := newAssistant(&fakeModel{}, &fakeStore{})

	err := svc.SaveKey(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAskWithoutKey(t *testing.T) {
	svc := newAssistant(&fakeModel{}, &fakeStore{})

	_, err := svc.Ask(context.Background(), &domain.RepositorySnapshot{}, []string{"main.go"}, "what does this do?")
	assert.ErrorIs(t, err, domain.ErrAssistantUnavailable)
}

func TestAskRequiresQuestionAndFiles(t *testing.T) {
	svc := newAssistant(&fakeModel{}, &fakeStore{assistantKey: "key"})

	_, err := svc.Ask(context.Background(), &domain.RepositorySnapshot{}, nil, "question")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Ask(context.Background(), &domain.RepositorySnapshot{}, []string{"main.go"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAskBuildsContextPrompt(t *testing.T) {
	model := &fakeModel{}
	svc := newAssistant(model, &fakeStore{assistantKey: "key"})

	reply, err := svc.Ask(
		context.Background(),
		&domain.RepositorySnapshot{},
		[]string{"src/a.go", "src/b.go"},
		"how do these interact?",
	)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleModel, reply.Role)
	assert.Equal(t, "a reply", reply.Text)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "CONTEXT: You are an expert programmer")
	assert.Contains(t, prompt, "--- FILE: src/a.go ---\n```\ncontents of src/a.go\n```\n\n")
	assert.Contains(t, prompt, "--- FILE: src/b.go ---")
	assert.Contains(t, prompt, "QUESTION: how do these interact?")

	transcript := svc.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, domain.RoleUser, transcript[0].Role)
	assert.Equal(t, "how do these interact?", transcript[0].Text)
	assert.NotEmpty(t, transcript[0].ID)
	assert.Equal(t, reply, transcript[1])
}

func TestAskGenerationFailureDegradesToTranscript(t *testing.T) {
	model := &fakeModel{
		generateFn: func(context.Context, string) (string, error) {
			return "", errors.New("upstream timeout")
		},
	}
	svc := newAssistant(model, &fakeStore{assistantKey: "key"})

	reply, err := svc.Ask(context.Background(), &domain.RepositorySnapshot{}, []string{"a.go"}, "q")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "Sorry, an error occurred: upstream timeout")
}

func TestAskInvalidKeyClearsStore(t *testing.T) {
	model := &fakeModel{
		generateFn: func(context.Context, string) (string, error) {
			return "", fmt.Errorf("%w: rejected", domain.ErrAssistantKeyInvalid)
		},
	}
	store := &fakeStore{assistantKey: "stale"}
	svc := newAssistant(model, store)

	reply, err := svc.Ask(context.Background(), &domain.RepositorySnapshot{}, []string{"a.go"}, "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAssistantKeyInvalid)
	assert.Contains(t, reply.Text, "re-enter a valid key")
	assert.Empty(t, store.assistantKey)
	assert.False(t, svc.KeyConfigured())
}
