package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseRepoURL extracts the owner and repository name from a repository
// URL. The URL path must contain at least two segments; the first two
// are owner and repository. Anything else is a validation failure,
// reported before any network call is made.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	u, parseErr := url.Parse(strings.TrimSpace(raw))
	if parseErr != nil {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
	}

	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
	}

	return parts[0], parts[1], nil
}
