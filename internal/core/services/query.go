package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService serves implementor lookups from the index.
type QueryService struct {
	implStore   driven.ImplementorStore
	sourceStore driven.SourceStore
}

// NewQueryService creates a new query service.
func NewQueryService(implStore driven.ImplementorStore, sourceStore driven.SourceStore) *QueryService {
	return &QueryService{
		implStore:   implStore,
		sourceStore: sourceStore,
	}
}

// Query returns records matching the pattern and options. The pattern is
// substring-matched case-insensitively against signature text and type
// paths; an empty pattern matches everything. Limit and Offset apply to
// the matched set, so they are withheld from the store query.
func (s *QueryService) Query(ctx context.Context, pattern string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
	limit, offset := opts.Limit, opts.Offset
	opts.Limit, opts.Offset = 0, 0

	imps, err := s.implStore.Query(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(pattern))
	matched := make([]domain.Implementor, 0, len(imps))
	for _, imp := range imps {
		if matchesPattern(&imp, needle) {
			matched = append(matched, imp)
		}
	}

	if offset > 0 {
		if offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[offset:]
		}
	}
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	// Resolve source names once per source for display
	names := make(map[string]string)
	results := make([]domain.QueryResult, 0, len(matched))
	for _, imp := range matched {
		name, seen := names[imp.SourceID]
		if !seen {
			if src, err := s.sourceStore.Get(ctx, imp.SourceID); err == nil {
				name = src.Name
			}
			names[imp.SourceID] = name
		}
		results = append(results, domain.QueryResult{
			Implementor: imp,
			SourceName:  name,
		})
	}

	return results, nil
}

// Get retrieves a single record by ID.
func (s *QueryService) Get(ctx context.Context, id string) (*domain.Implementor, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.implStore.Get(ctx, id)
}

// Registry assembles the canonical Registry aggregate for one trait.
func (s *QueryService) Registry(ctx context.Context, traitPath string) (*domain.Registry, error) {
	if traitPath == "" {
		return nil, domain.ErrInvalidInput
	}
	return assembleRegistry(ctx, s.implStore, traitPath, nil)
}

// Crates returns per-crate summaries of the index.
func (s *QueryService) Crates(ctx context.Context) ([]driving.CrateSummary, error) {
	counts, err := s.implStore.CrateCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("crate counts: %w", err)
	}

	summaries := make([]driving.CrateSummary, len(counts))
	for i, c := range counts {
		summaries[i] = driving.CrateSummary{
			Crate:   c.Crate,
			Records: c.Records,
			Traits:  c.Traits,
		}
	}
	return summaries, nil
}

// Traits returns per-trait summaries of the index.
func (s *QueryService) Traits(ctx context.Context) ([]driving.TraitSummary, error) {
	counts, err := s.implStore.TraitCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("trait counts: %w", err)
	}

	summaries := make([]driving.TraitSummary, len(counts))
	for i, c := range counts {
		summaries[i] = driving.TraitSummary{
			TraitPath: c.TraitPath,
			Records:   c.Records,
			Crates:    c.Crates,
		}
	}
	return summaries, nil
}

// matchesPattern reports whether a record matches the lowercased needle.
func matchesPattern(imp *domain.Implementor, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(imp.Text), needle) {
		return true
	}
	for _, tp := range imp.TypePaths {
		if strings.Contains(strings.ToLower(tp), needle) {
			return true
		}
	}
	return false
}
