package driven

import "context"

// AssistantModel is a narrow interface over a generative-text API.
// Only the data shaping that feeds it is in scope; the model itself is
// an external service.
type AssistantModel interface {
	// Generate produces a text completion for a prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Ping validates the API key with a trivial model lookup, without
	// running inference.
	Ping(ctx context.Context) error

	// ModelName returns the model identifier in use.
	ModelName() string
}

// AssistantFactory builds an assistant model bound to an API key.
type AssistantFactory func(apiKey string) AssistantModel
