package cli

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/traitdex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
	"github.com/custodia-labs/traitdex/internal/core/services"
)

var errMockFailure = errors.New("mock failure")

// setupTestServices installs working mock services and returns a
// cleanup function restoring the previous wiring.
func setupTestServices() func() {
	old := Services{
		ScanOrchestrator:  scanOrchestrator,
		QueryService:      queryService,
		LintService:       lintService,
		ExportService:     exportService,
		SourceService:     sourceService,
		SettingsService:   settingsService,
		WatchService:      watchService,
		Scheduler:         scheduler,
		ConnectorRegistry: connectorRegistry,
	}

	SetServices(Services{
		ScanOrchestrator:  &mockScanOrchestrator{},
		QueryService:      &mockQueryService{},
		LintService:       &mockLintService{},
		ExportService:     &mockExportService{},
		SourceService:     &mockSourceService{},
		SettingsService:   services.NewSettingsService(memory.NewConfigStore()),
		ConnectorRegistry: &mockConnectorRegistry{},
	})

	return func() {
		SetServices(old)
	}
}

// Query service mocks.

type mockQueryService struct{}

func (m *mockQueryService) Query(_ context.Context, _ string, _ domain.QueryOptions) ([]domain.QueryResult, error) {
	return []domain.QueryResult{
		{
			Implementor: domain.Implementor{
				ID:            "rec-1",
				Crate:         "actix_http",
				TraitPath:     "core::marker::Send",
				Text:          "impl<T> Send for Dispatcher<T> where T: Send",
				Applicability: domain.ApplicabilityConditional,
				TypePaths:     []string{"actix_http::h1::dispatcher::Dispatcher"},
			},
			SourceName: "local docs",
		},
	}, nil
}

func (m *mockQueryService) Get(_ context.Context, _ string) (*domain.Implementor, error) {
	return nil, domain.ErrNotFound
}

func (m *mockQueryService) Registry(_ context.Context, traitPath string) (*domain.Registry, error) {
	return domain.NewRegistry(traitPath), nil
}

func (m *mockQueryService) Crates(_ context.Context) ([]driving.CrateSummary, error) {
	return []driving.CrateSummary{
		{Crate: "actix_http", Records: 12, Traits: 3},
		{Crate: "actix_web", Records: 7, Traits: 2},
	}, nil
}

func (m *mockQueryService) Traits(_ context.Context) ([]driving.TraitSummary, error) {
	return []driving.TraitSummary{
		{TraitPath: "core::marker::Send", Records: 11, Crates: 2},
		{TraitPath: "core::marker::Sync", Records: 8, Crates: 2},
	}, nil
}

type mockQueryServiceError struct {
	mockQueryService
}

func (m *mockQueryServiceError) Query(_ context.Context, _ string, _ domain.QueryOptions) ([]domain.QueryResult, error) {
	return nil, errMockFailure
}

func (m *mockQueryServiceError) Crates(_ context.Context) ([]driving.CrateSummary, error) {
	return nil, errMockFailure
}

func (m *mockQueryServiceError) Traits(_ context.Context) ([]driving.TraitSummary, error) {
	return nil, errMockFailure
}

// Scan orchestrator mocks.

type mockScanOrchestrator struct{}

func (m *mockScanOrchestrator) Scan(_ context.Context, _ string) error {
	return nil
}

func (m *mockScanOrchestrator) ScanAll(_ context.Context) error {
	return nil
}

func (m *mockScanOrchestrator) Status(_ context.Context, _ string) (*driving.ScanStatus, error) {
	return nil, nil
}

type mockScanOrchestratorError struct {
	mockScanOrchestrator
}

func (m *mockScanOrchestratorError) Scan(_ context.Context, _ string) error {
	return errMockFailure
}

func (m *mockScanOrchestratorError) ScanAll(_ context.Context) error {
	return errMockFailure
}

// Lint service mocks.

type mockLintService struct{}

func (m *mockLintService) Lint(_ context.Context, _ driving.LintOptions) (*domain.Report, error) {
	return &domain.Report{GeneratedAt: time.Now()}, nil
}

type mockLintServiceFindings struct{}

func (m *mockLintServiceFindings) Lint(_ context.Context, _ driving.LintOptions) (*domain.Report, error) {
	report := &domain.Report{GeneratedAt: time.Now()}
	report.Add(domain.Finding{
		Rule:      "duplicate-signature",
		Severity:  domain.SeverityError,
		Crate:     "actix_web",
		Signature: "impl Clone for HttpServer",
		Message:   "signature registered twice",
	})
	report.Add(domain.Finding{
		Rule:     "empty-crate",
		Severity: domain.SeverityWarning,
		Crate:    "actix_rt",
		Message:  "crate registers no impls",
	})
	return report, nil
}

// Export service mocks.

type mockExportService struct{}

func (m *mockExportService) Emit(_ context.Context, _ driving.EmitOptions) ([]byte, error) {
	return []byte("(function() {var implementors = Object.fromEntries([]);})()\n"), nil
}

func (m *mockExportService) TraitPaths(_ context.Context) ([]string, error) {
	return []string{"core::marker::Send", "core::marker::Sync"}, nil
}

type mockExportServiceError struct{}

func (m *mockExportServiceError) Emit(_ context.Context, _ driving.EmitOptions) ([]byte, error) {
	return nil, errMockFailure
}

func (m *mockExportServiceError) TraitPaths(_ context.Context) ([]string, error) {
	return nil, errMockFailure
}

// Source service mocks.

type mockSourceService struct {
	gotExclusion domain.Exclusion
	unexcludedID string
}

func (m *mockSourceService) Add(_ context.Context, _ domain.Source) error {
	return nil
}

func (m *mockSourceService) Get(_ context.Context, id string) (*domain.Source, error) {
	return &domain.Source{ID: id, Type: "filesystem", Name: "Local Docs"}, nil
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return []domain.Source{
		{
			ID:     "source-123",
			Type:   "filesystem",
			Name:   "Local Docs",
			Config: map[string]string{"path": "/tmp/doc"},
		},
	}, nil
}

func (m *mockSourceService) Update(_ context.Context, _ domain.Source) error {
	return nil
}

func (m *mockSourceService) Remove(_ context.Context, _ string) error {
	return nil
}

func (m *mockSourceService) ValidateConfig(_ context.Context, _ string, _ map[string]string) error {
	return nil
}

func (m *mockSourceService) Exclude(_ context.Context, exclusion domain.Exclusion) error {
	m.gotExclusion = exclusion
	return nil
}

func (m *mockSourceService) Unexclude(_ context.Context, id string) error {
	m.unexcludedID = id
	return nil
}

func (m *mockSourceService) ListExclusions(_ context.Context, sourceID string) ([]domain.Exclusion, error) {
	return []domain.Exclusion{
		{ID: "excl-1", SourceID: sourceID, Crate: "actix_http", Reason: "vendored"},
		{ID: "excl-2", SourceID: sourceID, URI: "trait.impl/core/marker/trait.Send.js"},
	}, nil
}

type mockSourceServiceEmpty struct {
	mockSourceService
}

func (m *mockSourceServiceEmpty) List(_ context.Context) ([]domain.Source, error) {
	return nil, nil
}

func (m *mockSourceServiceEmpty) ListExclusions(_ context.Context, _ string) ([]domain.Exclusion, error) {
	return nil, nil
}

type mockSourceServiceError struct {
	mockSourceService
}

func (m *mockSourceServiceError) List(_ context.Context) ([]domain.Source, error) {
	return nil, errMockFailure
}

func (m *mockSourceServiceError) Remove(_ context.Context, _ string) error {
	return errMockFailure
}

func (m *mockSourceServiceError) Exclude(_ context.Context, _ domain.Exclusion) error {
	return errMockFailure
}

func (m *mockSourceServiceError) Unexclude(_ context.Context, _ string) error {
	return errMockFailure
}

func (m *mockSourceServiceError) ListExclusions(_ context.Context, _ string) ([]domain.Exclusion, error) {
	return nil, errMockFailure
}

// Connector registry mocks.

type mockConnectorRegistry struct{}

func (m *mockConnectorRegistry) List() []domain.ConnectorType {
	return []domain.ConnectorType{
		{
			ID:          "filesystem",
			Name:        "Local Filesystem",
			Description: "Scan a local rustdoc output tree",
			ConfigKeys: []domain.ConfigKey{
				{Key: "path", Label: "Documentation root", Required: true},
			},
		},
		{
			ID:           "github",
			Name:         "GitHub Pages",
			Description:  "Scan rustdoc published to a GitHub branch",
			RequiresAuth: true,
			ConfigKeys: []domain.ConfigKey{
				{Key: "owner", Label: "Repository owner", Required: true},
				{Key: "repo", Label: "Repository name", Required: true},
				{Key: "branch", Label: "Branch", Default: "gh-pages"},
				{Key: "token", Label: "Access token", Secret: true},
			},
		},
	}
}

func (m *mockConnectorRegistry) Get(id string) (*domain.ConnectorType, error) {
	for _, ct := range m.List() {
		if ct.ID == id {
			return &ct, nil
		}
	}
	return nil, domain.ErrNotFound
}

type mockConnectorRegistryEmpty struct{}

func (m *mockConnectorRegistryEmpty) List() []domain.ConnectorType {
	return nil
}

func (m *mockConnectorRegistryEmpty) Get(_ string) (*domain.ConnectorType, error) {
	return nil, domain.ErrNotFound
}
