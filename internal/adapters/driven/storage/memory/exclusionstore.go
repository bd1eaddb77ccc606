package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// Ensure ExclusionStore implements the interface.
var _ driven.ExclusionStore = (*ExclusionStore)(nil)

// ExclusionStore is an in-memory implementation of driven.ExclusionStore.
type ExclusionStore struct {
	mu         sync.RWMutex
	exclusions map[string]domain.Exclusion
}

// NewExclusionStore creates a new in-memory exclusion store.
func NewExclusionStore() *ExclusionStore {
	return &ExclusionStore{
		exclusions: make(map[string]domain.Exclusion),
	}
}

// Add creates a new exclusion.
func (s *ExclusionStore) Add(_ context.Context, exclusion *domain.Exclusion) error {
	if exclusion == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exclusions[exclusion.ID] = *exclusion
	return nil
}

// Remove deletes an exclusion by ID.
func (s *ExclusionStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.exclusions, id)
	return nil
}

// GetBySourceID returns all exclusions for a source.
func (s *ExclusionStore) GetBySourceID(_ context.Context, sourceID string) ([]domain.Exclusion, error) {
	s.mu.RLock()
	result := make([]domain.Exclusion, 0)
	for _, exclusion := range s.exclusions {
		if exclusion.SourceID == sourceID {
			result = append(result, exclusion)
		}
	}
	s.mu.RUnlock()

	sortExclusions(result)
	return result, nil
}

// IsExcluded checks if a fragment URI is excluded for a source.
func (s *ExclusionStore) IsExcluded(_ context.Context, sourceID, uri string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, exclusion := range s.exclusions {
		if exclusion.SourceID == sourceID && exclusion.URI != "" && exclusion.URI == uri {
			return true, nil
		}
	}
	return false, nil
}

// ExcludedCrates returns the crates excluded for a source, sorted.
func (s *ExclusionStore) ExcludedCrates(_ context.Context, sourceID string) ([]string, error) {
	s.mu.RLock()
	seen := make(map[string]bool)
	for _, exclusion := range s.exclusions {
		if exclusion.SourceID == sourceID && exclusion.Crate != "" {
			seen[exclusion.Crate] = true
		}
	}
	s.mu.RUnlock()

	crates := make([]string, 0, len(seen))
	for crate := range seen {
		crates = append(crates, crate)
	}
	sort.Strings(crates)
	return crates, nil
}

// List returns all exclusions.
func (s *ExclusionStore) List(_ context.Context) ([]domain.Exclusion, error) {
	s.mu.RLock()
	result := make([]domain.Exclusion, 0, len(s.exclusions))
	for _, exclusion := range s.exclusions {
		result = append(result, exclusion)
	}
	s.mu.RUnlock()

	sortExclusions(result)
	return result, nil
}

// sortExclusions orders exclusions by creation time, then ID.
func sortExclusions(exclusions []domain.Exclusion) {
	sort.Slice(exclusions, func(i, j int) bool {
		if !exclusions[i].ExcludedAt.Equal(exclusions[j].ExcludedAt) {
			return exclusions[i].ExcludedAt.Before(exclusions[j].ExcludedAt)
		}
		return exclusions[i].ID < exclusions[j].ID
	})
}
