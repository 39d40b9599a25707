package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
	}{
		{
			name:      "plain repository URL",
			url:       "https://github.com/golang/go",
			wantOwner: "golang",
			wantRepo:  "go",
		},
		{
			name:      "trailing slash",
			url:       "https://github.com/golang/go/",
			wantOwner: "golang",
			wantRepo:  "go",
		},
		{
			name:      "deep link keeps first two segments",
			url:       "https://github.com/golang/go/tree/master/src",
			wantOwner: "golang",
			wantRepo:  "go",
		},
		{
			name:      "surrounding whitespace",
			url:       "  https://github.com/golang/go  ",
			wantOwner: "golang",
			wantRepo:  "go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
		})
	}
}

func TestParseRepoURLInvalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "no path", url: "https://github.com"},
		{name: "owner only", url: "https://github.com/golang"},
		{name: "root slash", url: "https://github.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseRepoURL(tt.url)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRepoURL)
		})
	}
}
