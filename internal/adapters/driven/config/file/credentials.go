package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// Fixed storage keys. Each credential is a bare string under its own
// key, no versioning or schema.
const (
	keyGitHubToken  = "github_token"
	keyAssistantKey = "gemini_api_key"
)

// CredentialsStore is a TOML-file implementation of
// driven.CredentialsStore. Credentials are stored in
// ~/.repoviz/credentials.toml with owner-only permissions.
type CredentialsStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]string
}

// NewCredentialsStore creates a TOML-based credentials store.
// If configDir is empty, defaults to ~/.repoviz.
func NewCredentialsStore(configDir string) (*CredentialsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".repoviz")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &CredentialsStore{
		filePath: filepath.Join(configDir, "credentials.toml"),
		data:     make(map[string]string),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// GitHubToken returns the stored token, or "" when absent.
func (s *CredentialsStore) GitHubToken() string {
	return s.get(keyGitHubToken)
}

// SetGitHubToken stores the token.
func (s *CredentialsStore) SetGitHubToken(token string) error {
	return s.set(keyGitHubToken, token)
}

// ClearGitHubToken removes the stored token.
func (s *CredentialsStore) ClearGitHubToken() error {
	return s.delete(keyGitHubToken)
}

// AssistantKey returns the stored assistant API key, or "".
func (s *CredentialsStore) AssistantKey() string {
	return s.get(keyAssistantKey)
}

// SetAssistantKey stores the assistant API key.
func (s *CredentialsStore) SetAssistantKey(key string) error {
	return s.set(keyAssistantKey, key)
}

// ClearAssistantKey removes the stored assistant API key.
func (s *CredentialsStore) ClearAssistantKey() error {
	return s.delete(keyAssistantKey)
}

func (s *CredentialsStore) get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key]
}

func (s *CredentialsStore) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.save()
}

func (s *CredentialsStore) delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

// load reads the credentials file. A missing file is not an error.
func (s *CredentialsStore) load() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	return toml.Unmarshal(raw, &s.data)
}

// save writes the credentials file. Caller must hold the write lock.
func (s *CredentialsStore) save() error {
	raw, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, raw, 0600)
}
