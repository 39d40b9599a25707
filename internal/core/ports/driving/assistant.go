package driving

import (
	"context"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

// AssistantService orchestrates the chat assistant: key lifecycle,
// multi-file context assembly, and the transcript.
type AssistantService interface {
	// KeyConfigured reports whether a validated API key is stored.
	KeyConfigured() bool

	// SaveKey validates the key with a trivial model lookup and
	// persists it. A rejected key is not stored and
	// domain.ErrAssistantKeyInvalid is returned.
	SaveKey(ctx context.Context, key string) error

	// ClearKey removes the stored key, forcing re-entry.
	ClearKey() error

	// Ask embeds the selected files' content into the prompt, in
	// user-selection order, and appends the user message and the
	// model reply to the transcript. Generation failures degrade to a
	// transcript entry; an invalid-key failure additionally clears
	// the stored key and returns domain.ErrAssistantKeyInvalid so the
	// caller can force key re-entry.
	Ask(ctx context.Context, snap *domain.RepositorySnapshot, paths []string, question string) (domain.ChatMessage, error)

	// Transcript returns the chat history in order.
	Transcript() []domain.ChatMessage
}
