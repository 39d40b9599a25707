package file

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewCredentialsStore(dir)
	require.NoError(t, err)

	assert.Empty(t, store.GitHubToken())
	assert.Empty(t, store.AssistantKey())

	require.NoError(t, store.SetGitHubToken("gh-token"))
	require.NoError(t, store.SetAssistantKey("gem-key"))

	assert.Equal(t, "gh-token", store.GitHubToken())
	assert.Equal(t, "gem-key", store.AssistantKey())
}

func TestCredentialsStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewCredentialsStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetGitHubToken("gh-token"))

	reopened, err := NewCredentialsStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "gh-token", reopened.GitHubToken())
}

func TestCredentialsStoreClear(t *testing.T) {
	store, err := NewCredentialsStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SetGitHubToken("gh-token"))
	require.NoError(t, store.ClearGitHubToken())
	assert.Empty(t, store.GitHubToken())

	// Clearing an absent key is a no-op, not an error.
	require.NoError(t, store.ClearAssistantKey())
}

func TestCredentialsStoreFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions only")
	}

	dir := t.TempDir()
	store, err := NewCredentialsStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetGitHubToken("secret"))

	info, err := os.Stat(filepath.Join(dir, "credentials.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCredentialsStoreIgnoresMissingFile(t *testing.T) {
	// A fresh directory with no credentials file is a valid empty store.
	store, err := NewCredentialsStore(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, store.GitHubToken())
}
