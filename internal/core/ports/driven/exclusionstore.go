package driven

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// ExclusionStore persists fragment and crate exclusions.
// Excluded fragments are skipped during scans; records from excluded
// crates are dropped before indexing.
type ExclusionStore interface {
	// Add creates a new exclusion.
	Add(ctx context.Context, exclusion *domain.Exclusion) error

	// Remove deletes an exclusion by ID.
	Remove(ctx context.Context, id string) error

	// GetBySourceID returns all exclusions for a source.
	GetBySourceID(ctx context.Context, sourceID string) ([]domain.Exclusion, error)

	// IsExcluded checks if a fragment URI is excluded for a source.
	IsExcluded(ctx context.Context, sourceID, uri string) (bool, error)

	// ExcludedCrates returns the crates excluded for a source, sorted.
	ExcludedCrates(ctx context.Context, sourceID string) ([]string, error)

	// List returns all exclusions.
	List(ctx context.Context) ([]domain.Exclusion, error)
}
