package driving

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// SourceService manages source configurations.
type SourceService interface {
	// Add creates a new source configuration.
	Add(ctx context.Context, source domain.Source) error

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Update modifies an existing source configuration.
	Update(ctx context.Context, source domain.Source) error

	// Remove deletes a source and its indexed records.
	Remove(ctx context.Context, id string) error

	// ValidateConfig validates source configuration for a connector type.
	// Returns an error if required fields are missing or invalid.
	ValidateConfig(ctx context.Context, connectorType string, config map[string]string) error

	// Exclude marks a fragment or crate to be skipped during scans.
	// Records already indexed for an excluded fragment are removed.
	Exclude(ctx context.Context, exclusion domain.Exclusion) error

	// Unexclude removes an exclusion by ID.
	Unexclude(ctx context.Context, id string) error

	// ListExclusions returns the exclusions for a source.
	ListExclusions(ctx context.Context, sourceID string) ([]domain.Exclusion, error)
}

// ConnectorRegistry provides information about available connector types.
type ConnectorRegistry interface {
	// List returns all available connector types.
	List() []domain.ConnectorType

	// Get returns a specific connector type by ID.
	Get(id string) (*domain.ConnectorType, error)
}
