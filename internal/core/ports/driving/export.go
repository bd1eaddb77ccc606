package driving

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// ExportService renders indexed registries back into fragment form.
type ExportService interface {
	// Emit renders one trait registry in the requested flavor.
	// Output is canonical: identical index content yields identical
	// bytes regardless of scan order.
	Emit(ctx context.Context, opts EmitOptions) ([]byte, error)

	// TraitPaths returns the trait registries available to emit.
	TraitPaths(ctx context.Context) ([]string, error)
}

// EmitOptions configures an emit run.
type EmitOptions struct {
	// TraitPath selects the trait registry to render.
	TraitPath string

	// Flavor selects the output format. Defaults to FlavorLegacyJS.
	Flavor domain.Flavor

	// Crates restricts output to specific crates. Empty emits all.
	Crates []string
}
