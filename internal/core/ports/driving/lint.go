package driving

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// LintService checks indexed records against registry invariants.
type LintService interface {
	// Lint runs all checks and returns the findings.
	Lint(ctx context.Context, opts LintOptions) (*domain.Report, error)
}

// LintOptions configures a lint run.
type LintOptions struct {
	// Crates restricts checking to specific crates. Empty checks all.
	Crates []string

	// TraitPath restricts checking to one trait registry. Empty checks all.
	TraitPath string
}
