package driven

// CredentialsStore persists the two session credentials: the
// source-control token and the assistant API key. Each is a bare
// string under its own fixed key, no versioning or schema.
type CredentialsStore interface {
	// GitHubToken returns the stored token, or "" when absent.
	GitHubToken() string

	// SetGitHubToken stores the token.
	SetGitHubToken(token string) error

	// ClearGitHubToken removes the stored token.
	ClearGitHubToken() error

	// AssistantKey returns the stored assistant API key, or "".
	AssistantKey() string

	// SetAssistantKey stores the assistant API key.
	SetAssistantKey(key string) error

	// ClearAssistantKey removes the stored assistant API key.
	ClearAssistantKey() error
}
