package driving

import (
	"context"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

// VisualizerService turns a repository URL into a complete snapshot.
type VisualizerService interface {
	// Visualize validates the URL, fetches repository metadata, issues
	// the dependent fetches concurrently, and returns an atomically
	// built snapshot. Any single fetch failure aborts the aggregate;
	// no partial snapshot is ever returned.
	Visualize(ctx context.Context, repoURL string) (*domain.RepositorySnapshot, error)
}
