package driven

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// ImplementorStore persists decoded implementor records.
// Backed by SQLite for metadata storage.
type ImplementorStore interface {
	// ReplaceFragment atomically swaps the records previously decoded
	// from a fragment (keyed by source and URI) for the given set.
	// Rescanning a fragment is therefore idempotent.
	ReplaceFragment(ctx context.Context, sourceID, uri string, imps []domain.Implementor) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.Implementor, error)

	// Query returns records matching the options, ordered by crate
	// then signature. A zero Limit means no limit.
	Query(ctx context.Context, opts domain.QueryOptions) ([]domain.Implementor, error)

	// ListByCrate returns all records for a crate within a trait
	// registry, ordered by signature.
	ListByCrate(ctx context.Context, traitPath, crate string) ([]domain.Implementor, error)

	// CrateCounts returns per-crate record counts across all traits,
	// ordered by crate name.
	CrateCounts(ctx context.Context) ([]CrateCount, error)

	// TraitCounts returns per-trait record counts, ordered by trait path.
	TraitCounts(ctx context.Context) ([]TraitCount, error)

	// DeleteBySource removes all records produced by a source.
	DeleteBySource(ctx context.Context, sourceID string) error

	// DeleteFragment removes the records decoded from one fragment.
	DeleteFragment(ctx context.Context, sourceID, uri string) error
}

// CrateCount pairs a crate name with its record count.
type CrateCount struct {
	// Crate is the crate name.
	Crate string

	// Records is the number of implementor records under the crate.
	Records int

	// Traits is the number of distinct trait registries the crate
	// appears in.
	Traits int
}

// TraitCount pairs a trait path with its record count.
type TraitCount struct {
	// TraitPath is the fully qualified trait path.
	TraitPath string

	// Records is the number of implementor records for the trait.
	Records int

	// Crates is the number of distinct crates registering impls.
	Crates int
}
