package mcp

import (
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers implementor lookups.
	Query driving.QueryService

	// Lint checks the index against registry invariants.
	Lint driving.LintService

	// Source manages source configurations.
	Source driving.SourceService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Lint and Source are optional
	return nil
}
