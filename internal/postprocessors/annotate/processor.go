// Package annotate provides a record processor that derives the
// fields decoders leave blank: tri-state applicability and generic
// parameter names. Explicit values (from the JSON interchange format)
// are preserved.
package annotate

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// Processor fills derived fields on decoded records.
// It implements the RecordProcessor interface.
type Processor struct {
	strict bool
}

// Option configures the annotate processor.
type Option func(*Processor)

// WithStrict makes the processor fail on records that violate
// registry invariants instead of passing them through.
func WithStrict() Option {
	return func(p *Processor) {
		p.strict = true
	}
}

// New creates a new annotate processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "annotate"
}

// Process derives applicability and generics for each record that
// lacks them. In strict mode, records failing validation abort the
// fragment.
func (p *Processor) Process(_ context.Context, _ *domain.RawFragment, imps []domain.Implementor) ([]domain.Implementor, error) {
	out := make([]domain.Implementor, 0, len(imps))
	for _, imp := range imps {
		if imp.Applicability == "" {
			imp.Applicability = domain.ClassifyApplicability(imp.Text)
		}
		if imp.Generics == nil {
			imp.Generics = domain.ExtractGenerics(imp.Text)
		}
		if p.strict {
			if err := imp.Validate(); err != nil {
				return nil, err
			}
		}
		out = append(out, imp)
	}
	return out, nil
}
