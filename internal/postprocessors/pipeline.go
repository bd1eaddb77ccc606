// Package postprocessors provides record processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// Pipeline chains multiple RecordProcessors and runs them in order.
// It implements the RecordPipeline interface.
type Pipeline struct {
	processors []driven.RecordProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.RecordProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the records through all processors in order.
// Each processor receives the previous processor's output.
func (p *Pipeline) Process(ctx context.Context, frag *domain.RawFragment, imps []domain.Implementor) ([]domain.Implementor, error) {
	if frag == nil {
		return nil, fmt.Errorf("fragment is nil")
	}

	for _, processor := range p.processors {
		var err error
		imps, err = processor.Process(ctx, frag, imps)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return imps, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.RecordProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
