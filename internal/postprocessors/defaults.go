package postprocessors

import (
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
	"github.com/custodia-labs/traitdex/internal/postprocessors/annotate"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("annotate", buildAnnotate)
}

// buildAnnotate creates an annotate processor from generic config.
// Supported config keys:
//   - strict (bool): Fail the fragment on invalid records (default: false)
func buildAnnotate(cfg map[string]any) (driven.RecordProcessor, error) {
	var opts []annotate.Option

	if cfg != nil {
		if strict, ok := cfg["strict"].(bool); ok && strict {
			opts = append(opts, annotate.WithStrict())
		}
	}

	return annotate.New(opts...), nil
}
