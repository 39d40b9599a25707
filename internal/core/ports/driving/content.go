package driving

import (
	"context"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

// ContentService fetches and decodes single-file content on demand.
// It never fails past its boundary: every failure mode resolves to a
// descriptive placeholder string so the surrounding view is never
// interrupted by a content fetch.
type ContentService interface {
	// Resolve returns the decoded text for a path, or a placeholder.
	// The returned generation is a per-request stamp that orders all
	// resolves through the service. The counter is shared by every
	// caller, so a consumer issuing competing requests must track its
	// own request sequence rather than compare against Latest().
	Resolve(ctx context.Context, snap *domain.RepositorySnapshot, path string) (text string, generation uint64)

	// Latest returns the generation of the most recent request.
	Latest() uint64
}
