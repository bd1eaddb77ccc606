package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// Ensure ImplementorStore implements the interface.
var _ driven.ImplementorStore = (*ImplementorStore)(nil)

// ImplementorStore is an in-memory implementation of driven.ImplementorStore.
type ImplementorStore struct {
	mu      sync.RWMutex
	records map[string]domain.Implementor
}

// NewImplementorStore creates a new in-memory implementor store.
func NewImplementorStore() *ImplementorStore {
	return &ImplementorStore{
		records: make(map[string]domain.Implementor),
	}
}

// ReplaceFragment atomically swaps the records decoded from a fragment.
func (s *ImplementorStore) ReplaceFragment(_ context.Context, sourceID, uri string, imps []domain.Implementor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, record := range s.records {
		if record.SourceID == sourceID && record.URI == uri {
			delete(s.records, id)
		}
	}

	for _, imp := range imps {
		imp.SourceID = sourceID
		imp.URI = uri
		s.records[imp.ID] = imp
	}
	return nil
}

// Get retrieves a record by ID.
func (s *ImplementorStore) Get(_ context.Context, id string) (*domain.Implementor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Query returns records matching the options, ordered by crate then signature.
func (s *ImplementorStore) Query(_ context.Context, opts domain.QueryOptions) ([]domain.Implementor, error) {
	crateFilter := make(map[string]bool, len(opts.Crates))
	for _, crate := range opts.Crates {
		crateFilter[crate] = true
	}

	s.mu.RLock()
	result := make([]domain.Implementor, 0)
	for _, imp := range s.records {
		if opts.TraitPath != "" && imp.TraitPath != opts.TraitPath {
			continue
		}
		if len(crateFilter) > 0 && !crateFilter[imp.Crate] {
			continue
		}
		if opts.Applicability != "" && imp.Applicability != opts.Applicability {
			continue
		}
		if !opts.IncludeSynthetic && imp.Synthetic {
			continue
		}
		result = append(result, imp)
	}
	s.mu.RUnlock()

	sortImplementors(result)

	if opts.Offset > 0 {
		if opts.Offset >= len(result) {
			return nil, nil
		}
		result = result[opts.Offset:]
	}
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

// ListByCrate returns all records for a crate within a trait registry.
func (s *ImplementorStore) ListByCrate(_ context.Context, traitPath, crate string) ([]domain.Implementor, error) {
	s.mu.RLock()
	result := make([]domain.Implementor, 0)
	for _, imp := range s.records {
		if imp.TraitPath == traitPath && imp.Crate == crate {
			result = append(result, imp)
		}
	}
	s.mu.RUnlock()

	sortImplementors(result)
	return result, nil
}

// CrateCounts returns per-crate record counts across all traits.
func (s *ImplementorStore) CrateCounts(_ context.Context) ([]driven.CrateCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make(map[string]int)
	traits := make(map[string]map[string]bool)
	for _, imp := range s.records {
		records[imp.Crate]++
		if traits[imp.Crate] == nil {
			traits[imp.Crate] = make(map[string]bool)
		}
		traits[imp.Crate][imp.TraitPath] = true
	}

	counts := make([]driven.CrateCount, 0, len(records))
	for crate, n := range records {
		counts = append(counts, driven.CrateCount{
			Crate:   crate,
			Records: n,
			Traits:  len(traits[crate]),
		})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Crate < counts[j].Crate })
	return counts, nil
}

// TraitCounts returns per-trait record counts.
func (s *ImplementorStore) TraitCounts(_ context.Context) ([]driven.TraitCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make(map[string]int)
	crates := make(map[string]map[string]bool)
	for _, imp := range s.records {
		records[imp.TraitPath]++
		if crates[imp.TraitPath] == nil {
			crates[imp.TraitPath] = make(map[string]bool)
		}
		crates[imp.TraitPath][imp.Crate] = true
	}

	counts := make([]driven.TraitCount, 0, len(records))
	for traitPath, n := range records {
		counts = append(counts, driven.TraitCount{
			TraitPath: traitPath,
			Records:   n,
			Crates:    len(crates[traitPath]),
		})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].TraitPath < counts[j].TraitPath })
	return counts, nil
}

// DeleteBySource removes all records produced by a source.
func (s *ImplementorStore) DeleteBySource(_ context.Context, sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, record := range s.records {
		if record.SourceID == sourceID {
			delete(s.records, id)
		}
	}
	return nil
}

// DeleteFragment removes the records decoded from one fragment.
func (s *ImplementorStore) DeleteFragment(_ context.Context, sourceID, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, record := range s.records {
		if record.SourceID == sourceID && record.URI == uri {
			delete(s.records, id)
		}
	}
	return nil
}

// sortImplementors orders records by crate, signature text, then ID.
func sortImplementors(imps []domain.Implementor) {
	sort.Slice(imps, func(i, j int) bool {
		if imps[i].Crate != imps[j].Crate {
			return imps[i].Crate < imps[j].Crate
		}
		if imps[i].Text != imps[j].Text {
			return imps[i].Text < imps[j].Text
		}
		return imps[i].ID < imps[j].ID
	})
}
