package driven

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// RecordProcessor enriches decoded records before persistence.
// Processors are chained in a pipeline (e.g., annotation, pruning).
type RecordProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes the originating fragment and the records decoded
	// from it, and returns the records to carry forward. A processor
	// may rewrite, drop, or add records.
	Process(ctx context.Context, frag *domain.RawFragment, imps []domain.Implementor) ([]domain.Implementor, error)
}

// RecordPipeline chains multiple RecordProcessors.
type RecordPipeline interface {
	// Process runs the records through all processors in order.
	// Returns the final records after all processing.
	Process(ctx context.Context, frag *domain.RawFragment, imps []domain.Implementor) ([]domain.Implementor, error)
}
