package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/repoviz-cli/internal/logger"
)

// Ensure ContentService implements the interface.
var _ driving.ContentService = (*ContentService)(nil)

// MaxContentBytes is the size ceiling above which file content is not
// fetched or decoded.
const MaxContentBytes = 1_000_000

// Content placeholders. Every failure mode resolves to one of these;
// nothing below this boundary reaches the view as an error.
const (
	// PlaceholderTooLarge is returned for blobs over MaxContentBytes,
	// without any network call.
	PlaceholderTooLarge = "[Error: this file is larger than 1 MB and cannot be displayed.]"

	// PlaceholderUndecodable is returned when base64 or UTF-8 decoding
	// fails.
	PlaceholderUndecodable = "[Error: could not decode file content. It may be binary or use an unsupported encoding.]"
)

// ContentService resolves single-file content lazily: size ceiling
// first, then fetch, then base64 → UTF-8 decode, degrading to
// placeholder strings on every failure path.
type ContentService struct {
	session driving.SessionService

	// generation stamps each resolve so a slow stale fetch cannot
	// clobber the display state of a newer one.
	generation atomic.Uint64
}

// NewContentService creates a content service bound to a session.
func NewContentService(session driving.SessionService) *ContentService {
	return &ContentService{session: session}
}

// Latest returns the generation of the most recent request.
func (c *ContentService) Latest() uint64 {
	return c.generation.Load()
}

// Resolve returns the decoded text for a path, or a placeholder. The
// generation stamp is taken when the request starts; callers compare
// it against Latest before applying the result.
func (c *ContentService) Resolve(ctx context.Context, snap *domain.RepositorySnapshot, path string) (string, uint64) {
	gen := c.generation.Add(1)
	return c.resolve(ctx, snap, path), gen
}

func (c *ContentService) resolve(ctx context.Context, snap *domain.RepositorySnapshot, path string) string {
	if snap == nil || path == "" {
		return "[Error: invalid file path provided.]"
	}

	if entry := snap.Entry(path); entry != nil && entry.Size > MaxContentBytes {
		logger.Debug("skipping oversized file %s (%s)", path, domain.FormatBytes(entry.Size))
		return PlaceholderTooLarge
	}

	gateway := c.session.Gateway()
	if gateway == nil {
		return fmt.Sprintf("[Error: failed to fetch content for %s. The file might be inaccessible.]", path)
	}

	content, err := gateway.GetFileContent(ctx, snap.Owner, snap.Repo, path)
	if err != nil {
		logger.Warn("fetch content %s: %v", path, err)
		return fmt.Sprintf("[Error: failed to fetch content for %s. The file might be inaccessible.]", path)
	}

	if content.Encoding != "base64" || content.Content == "" {
		return fmt.Sprintf("[Error: content of type %q is not available in a readable format.]", content.Type)
	}

	raw, err := base64.StdEncoding.DecodeString(stripNewlines(content.Content))
	if err != nil {
		return PlaceholderUndecodable
	}
	if !utf8.Valid(raw) {
		return PlaceholderUndecodable
	}
	return string(raw)
}

// stripNewlines removes the line breaks the contents endpoint embeds
// in its base64 payload.
func stripNewlines(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}
