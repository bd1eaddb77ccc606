package decoders

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
	"github.com/custodia-labs/traitdex/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.DecoderRegistry = (*Registry)(nil)

// Registry selects decoders by content sniffing.
// Decoders are tried in priority order; the first whose Sniff accepts
// the content wins.
type Registry struct {
	mu       sync.RWMutex
	decoders []driven.Decoder
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a decoder to the registry.
func (r *Registry) Register(decoder driven.Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders = append(r.decoders, decoder)
	sort.SliceStable(r.decoders, func(a, b int) bool {
		return r.decoders[a].Priority() > r.decoders[b].Priority()
	})
}

// Decode parses a raw fragment using the best matching decoder.
// Returns ErrUnknownFlavor when no decoder recognises the content.
func (r *Registry) Decode(ctx context.Context, raw *domain.RawFragment) (*driven.DecodeResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	decoders := make([]driven.Decoder, len(r.decoders))
	copy(decoders, r.decoders)
	r.mu.RUnlock()

	for _, decoder := range decoders {
		if !decoder.Sniff(raw.Content) {
			continue
		}
		logger.Debug("decoding %s as %s", raw.URI, decoder.Flavor())
		return decoder.Decode(ctx, raw)
	}

	return nil, fmt.Errorf("%s: %w", raw.URI, domain.ErrUnknownFlavor)
}

// SupportedFlavors returns all flavors that can be decoded, in
// priority order.
func (r *Registry) SupportedFlavors() []domain.Flavor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flavors := make([]domain.Flavor, 0, len(r.decoders))
	for _, decoder := range r.decoders {
		flavors = append(flavors, decoder.Flavor())
	}
	return flavors
}
