// Package tui provides an interactive terminal user interface for traitdex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query provides implementor lookups.
	Query driving.QueryService

	// Source manages source configurations.
	Source driving.SourceService

	// Scan orchestrates fragment scanning.
	Scan driving.ScanOrchestrator

	// Lint checks indexed registries against invariants.
	Lint driving.LintService

	// ConnectorRegistry provides available connector types.
	ConnectorRegistry driving.ConnectorRegistry

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	query driving.QueryService,
	source driving.SourceService,
	scan driving.ScanOrchestrator,
) *Ports {
	return &Ports{
		Query:  query,
		Source: source,
		Scan:   scan,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Source == nil {
		return ErrMissingSourceService
	}
	if p.Scan == nil {
		return ErrMissingScanOrchestrator
	}
	return nil
}
