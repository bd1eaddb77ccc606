package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages source configurations.
type SourceService struct {
	sourceStore       driven.SourceStore
	scanStore         driven.ScanStateStore
	implStore         driven.ImplementorStore
	exclusionStore    driven.ExclusionStore
	schedulerStore    driven.SchedulerStore
	connectorRegistry driving.ConnectorRegistry
}

// NewSourceService creates a new source service.
func NewSourceService(
	sourceStore driven.SourceStore,
	scanStore driven.ScanStateStore,
	implStore driven.ImplementorStore,
) *SourceService {
	return &SourceService{
		sourceStore: sourceStore,
		scanStore:   scanStore,
		implStore:   implStore,
	}
}

// SetConnectorRegistry sets the connector registry for config validation.
func (s *SourceService) SetConnectorRegistry(registry driving.ConnectorRegistry) {
	s.connectorRegistry = registry
}

// SetExclusionStore sets the exclusion store so Remove can clean up
// a source's exclusions.
func (s *SourceService) SetExclusionStore(store driven.ExclusionStore) {
	s.exclusionStore = store
}

// SetSchedulerStore sets the scheduler store so Remove can clean up
// a source's rescan task.
func (s *SourceService) SetSchedulerStore(store driven.SchedulerStore) {
	s.schedulerStore = store
}

// Add creates a new source configuration.
func (s *SourceService) Add(ctx context.Context, source domain.Source) error {
	if s.sourceStore == nil {
		return domain.ErrNotImplemented
	}
	if source.ID == "" {
		return domain.ErrInvalidInput
	}
	// Check if already exists
	existing, err := s.sourceStore.Get(ctx, source.ID)
	if err == nil && existing != nil {
		return domain.ErrAlreadyExists
	}
	return s.sourceStore.Save(ctx, source)
}

// Get retrieves a source by ID.
func (s *SourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	if s.sourceStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sourceStore.Get(ctx, id)
}

// List returns all configured sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	if s.sourceStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sourceStore.List(ctx)
}

// Update modifies an existing source configuration.
func (s *SourceService) Update(ctx context.Context, source domain.Source) error {
	if s.sourceStore == nil {
		return domain.ErrNotImplemented
	}
	if source.ID == "" {
		return domain.ErrInvalidInput
	}
	// Verify source exists
	_, err := s.sourceStore.Get(ctx, source.ID)
	if err != nil {
		return domain.ErrNotFound
	}
	return s.sourceStore.Save(ctx, source)
}

// Remove deletes a source and its indexed records. Dependent state is
// cleaned up best-effort before the source itself goes.
func (s *SourceService) Remove(ctx context.Context, id string) error {
	if s.sourceStore == nil {
		return domain.ErrNotImplemented
	}
	if s.implStore != nil {
		//nolint:errcheck // Intentionally ignore errors to continue cleanup
		_ = s.implStore.DeleteBySource(ctx, id)
	}
	if s.scanStore != nil {
		//nolint:errcheck // Intentionally ignore errors to continue cleanup
		_ = s.scanStore.Delete(ctx, id)
	}
	if s.exclusionStore != nil {
		if exclusions, err := s.exclusionStore.GetBySourceID(ctx, id); err == nil {
			for i := range exclusions {
				//nolint:errcheck // Intentionally ignore errors to continue cleanup
				_ = s.exclusionStore.Remove(ctx, exclusions[i].ID)
			}
		}
	}
	if s.schedulerStore != nil {
		//nolint:errcheck // Intentionally ignore errors to continue cleanup
		_ = s.schedulerStore.DeleteTask(ctx, id)
	}
	return s.sourceStore.Delete(ctx, id)
}

// Exclude marks a fragment or crate to be skipped during scans.
// A fragment exclusion also removes its already-indexed records; a
// crate exclusion takes effect on the next scan of the source.
func (s *SourceService) Exclude(ctx context.Context, exclusion domain.Exclusion) error {
	if s.exclusionStore == nil {
		return domain.ErrNotImplemented
	}
	if err := exclusion.Validate(); err != nil {
		return err
	}
	if _, err := s.Get(ctx, exclusion.SourceID); err != nil {
		return err
	}
	if exclusion.ID == "" {
		exclusion.ID = uuid.NewString()
	}
	if exclusion.ExcludedAt.IsZero() {
		exclusion.ExcludedAt = time.Now()
	}
	if err := s.exclusionStore.Add(ctx, &exclusion); err != nil {
		return fmt.Errorf("add exclusion: %w", err)
	}
	if exclusion.URI != "" && s.implStore != nil {
		if err := s.implStore.DeleteFragment(ctx, exclusion.SourceID, exclusion.URI); err != nil {
			return fmt.Errorf("remove excluded records: %w", err)
		}
	}
	return nil
}

// Unexclude removes an exclusion by ID.
func (s *SourceService) Unexclude(ctx context.Context, id string) error {
	if s.exclusionStore == nil {
		return domain.ErrNotImplemented
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.exclusionStore.Remove(ctx, id)
}

// ListExclusions returns the exclusions for a source.
func (s *SourceService) ListExclusions(ctx context.Context, sourceID string) ([]domain.Exclusion, error) {
	if s.exclusionStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.exclusionStore.GetBySourceID(ctx, sourceID)
}

// ValidateConfig validates source configuration for a connector type.
func (s *SourceService) ValidateConfig(_ context.Context, connectorType string, config map[string]string) error {
	if s.connectorRegistry == nil {
		return domain.ErrNotImplemented
	}

	// Get connector type definition from registry
	connType, err := s.connectorRegistry.Get(connectorType)
	if err != nil {
		return fmt.Errorf("unknown connector type %q: %w", connectorType, err)
	}

	// Validate required config keys are present
	var missingKeys []string
	for _, key := range connType.ConfigKeys {
		if key.Required {
			value, exists := config[key.Key]
			if !exists || value == "" {
				missingKeys = append(missingKeys, key.Key)
			}
		}
	}

	if len(missingKeys) > 0 {
		return fmt.Errorf("missing required config keys: %v", missingKeys)
	}

	return nil
}
