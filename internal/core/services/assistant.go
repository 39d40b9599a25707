package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driven"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/repoviz-cli/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// contextPreamble frames the concatenated file blocks for the model.
const contextPreamble = "CONTEXT: You are an expert programmer and AI assistant. " +
	"The user has provided the following file(s) from a GitHub repository. " +
	"Answer the user's question based on the content of these files.\n\n"

// AssistantService bridges the chat assistant: it assembles file
// context through the content resolver, forwards to the generative
// model, and keeps the transcript.
type AssistantService struct {
	store    driven.CredentialsStore
	newModel driven.AssistantFactory
	content  driving.ContentService

	model      driven.AssistantModel
	transcript []domain.ChatMessage
}

// NewAssistantService creates an assistant service. The model is built
// lazily from the stored key via the factory.
func NewAssistantService(store driven.CredentialsStore, factory driven.AssistantFactory, content driving.ContentService) *AssistantService {
	return &AssistantService{
		store:    store,
		newModel: factory,
		content:  content,
	}
}

// KeyConfigured reports whether an API key is stored.
func (a *AssistantService) KeyConfigured() bool {
	return a.store.AssistantKey() != ""
}

// SaveKey validates the key with a trivial model lookup and persists
// it. A rejected key is not stored.
func (a *AssistantService) SaveKey(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", domain.ErrInvalidInput)
	}

	model := a.newModel(key)
	if err := model.Ping(ctx); err != nil {
		logger.Warn("assistant key validation failed: %v", err)
		return fmt.Errorf("%w: %v", domain.ErrAssistantKeyInvalid, err)
	}

	if err := a.store.SetAssistantKey(key); err != nil {
		return fmt.Errorf("store assistant key: %w", err)
	}
	a.model = model
	return nil
}

// ClearKey removes the stored key and drops the model.
func (a *AssistantService) ClearKey() error {
	a.model = nil
	if err := a.store.ClearAssistantKey(); err != nil {
		return fmt.Errorf("clear assistant key: %w", err)
	}
	return nil
}

// Ask builds the context prompt from the selected files, forwards it
// to the model, and appends both sides to the transcript. Generation
// failures degrade to a transcript entry; an invalid key additionally
// clears the stored key and reports domain.ErrAssistantKeyInvalid so
// the caller forces re-entry.
func (a *AssistantService) Ask(ctx context.Context, snap *domain.RepositorySnapshot, paths []string, question string) (domain.ChatMessage, error) {
	if question == "" || len(paths) == 0 {
		return domain.ChatMessage{}, fmt.Errorf("%w: question and file selection required", domain.ErrInvalidInput)
	}

	model, err := a.ensureModel()
	if err != nil {
		return domain.ChatMessage{}, err
	}

	a.append(domain.RoleUser, question)

	prompt := a.buildPrompt(ctx, snap, paths, question)
	logger.Debug("assistant prompt: %d files, %d bytes", len(paths), len(prompt))

	text, err := model.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrAssistantKeyInvalid) {
			reply := a.append(domain.RoleModel, "It seems the API key is invalid. Please re-enter a valid key to continue.")
			if clearErr := a.ClearKey(); clearErr != nil {
				logger.Warn("clear rejected assistant key: %v", clearErr)
			}
			return reply, domain.ErrAssistantKeyInvalid
		}
		return a.append(domain.RoleModel, fmt.Sprintf("Sorry, an error occurred: %v", err)), nil
	}

	return a.append(domain.RoleModel, text), nil
}

// Transcript returns the chat history in order.
func (a *AssistantService) Transcript() []domain.ChatMessage {
	return a.transcript
}

func (a *AssistantService) ensureModel() (driven.AssistantModel, error) {
	if a.model != nil {
		return a.model, nil
	}
	key := a.store.AssistantKey()
	if key == "" {
		return nil, domain.ErrAssistantUnavailable
	}
	a.model = a.newModel(key)
	return a.model, nil
}

// buildPrompt embeds each selected file's resolved content inside a
// fenced block tagged with its path, in user-selection order. Content
// failures arrive as placeholder strings and are embedded as-is.
func (a *AssistantService) buildPrompt(ctx context.Context, snap *domain.RepositorySnapshot, paths []string, question string) string {
	var b strings.Builder
	b.WriteString(contextPreamble)
	for _, path := range paths {
		content, _ := a.content.Resolve(ctx, snap, path)
		fmt.Fprintf(&b, "--- FILE: %s ---\n```\n%s\n```\n\n", path, content)
	}
	fmt.Fprintf(&b, "QUESTION: %s", question)
	return b.String()
}

func (a *AssistantService) append(role domain.ChatRole, text string) domain.ChatMessage {
	msg := domain.ChatMessage{
		ID:   uuid.NewString(),
		Role: role,
		Text: text,
	}
	a.transcript = append(a.transcript, msg)
	return msg
}
