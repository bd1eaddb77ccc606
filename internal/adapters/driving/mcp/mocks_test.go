package mcp

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	results []domain.QueryResult
	imp     *domain.Implementor
	crates  []driving.CrateSummary
	traits  []driving.TraitSummary
	err     error

	lastPattern string
	lastOpts    domain.QueryOptions
}

func (m *mockQueryService) Query(
	_ context.Context,
	pattern string,
	opts domain.QueryOptions,
) ([]domain.QueryResult, error) {
	m.lastPattern = pattern
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockQueryService) Get(_ context.Context, _ string) (*domain.Implementor, error) {
	return m.imp, m.err
}

func (m *mockQueryService) Registry(_ context.Context, traitPath string) (*domain.Registry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return domain.NewRegistry(traitPath), nil
}

func (m *mockQueryService) Crates(_ context.Context) ([]driving.CrateSummary, error) {
	return m.crates, m.err
}

func (m *mockQueryService) Traits(_ context.Context) ([]driving.TraitSummary, error) {
	return m.traits, m.err
}

// mockLintService is a mock implementation of driving.LintService.
type mockLintService struct {
	report *domain.Report
	err    error
}

func (m *mockLintService) Lint(_ context.Context, _ driving.LintOptions) (*domain.Report, error) {
	return m.report, m.err
}

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []domain.Source
	source  *domain.Source
	err     error
}

func (m *mockSourceService) Add(_ context.Context, _ domain.Source) error {
	return m.err
}

func (m *mockSourceService) Get(_ context.Context, _ string) (*domain.Source, error) {
	return m.source, m.err
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSourceService) Update(_ context.Context, _ domain.Source) error {
	return m.err
}

func (m *mockSourceService) ValidateConfig(_ context.Context, _ string, _ map[string]string) error {
	return m.err
}

func (m *mockSourceService) Exclude(_ context.Context, _ domain.Exclusion) error {
	return m.err
}

func (m *mockSourceService) Unexclude(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSourceService) ListExclusions(_ context.Context, _ string) ([]domain.Exclusion, error) {
	return nil, m.err
}
