package driving

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// QueryService provides implementor lookups to external actors.
type QueryService interface {
	// Query returns records matching the options, with source names
	// resolved for display. The pattern is substring-matched against
	// type paths and signature text; empty matches everything.
	Query(ctx context.Context, pattern string, opts domain.QueryOptions) ([]domain.QueryResult, error)

	// Get retrieves a single record by ID.
	Get(ctx context.Context, id string) (*domain.Implementor, error)

	// Registry assembles the canonical Registry aggregate for one
	// trait: crates sorted, records deduplicated and in canonical
	// order. Returns ErrNotFound when the trait is not indexed.
	Registry(ctx context.Context, traitPath string) (*domain.Registry, error)

	// Crates returns per-crate summaries of the index.
	Crates(ctx context.Context) ([]CrateSummary, error)

	// Traits returns per-trait summaries of the index.
	Traits(ctx context.Context) ([]TraitSummary, error)
}

// CrateSummary describes one crate's presence in the index.
type CrateSummary struct {
	// Crate is the crate name.
	Crate string

	// Records is the number of implementor records under the crate.
	Records int

	// Traits is the number of distinct trait registries the crate
	// appears in.
	Traits int
}

// TraitSummary describes one trait registry in the index.
type TraitSummary struct {
	// TraitPath is the fully qualified trait path.
	TraitPath string

	// Records is the number of implementor records for the trait.
	Records int

	// Crates is the number of distinct crates registering impls.
	Crates int
}
