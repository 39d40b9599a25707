package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRepoURL indicates a repository URL whose path does not
	// contain at least an owner and a repository name.
	ErrInvalidRepoURL = errors.New("invalid repository URL")

	// ErrNoDefaultBranch indicates the repository metadata did not carry
	// a default branch, so the tree cannot be fetched.
	ErrNoDefaultBranch = errors.New("could not determine default branch")

	// Authentication errors.

	// ErrAuthRequired indicates no token is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the stored or supplied token was rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Assistant errors.

	// ErrAssistantUnavailable indicates no assistant API key is configured.
	ErrAssistantUnavailable = errors.New("assistant unavailable")

	// ErrAssistantKeyInvalid indicates the assistant API key was rejected
	// by the provider. The stored key is cleared and must be re-entered.
	ErrAssistantKeyInvalid = errors.New("assistant API key invalid")
)
