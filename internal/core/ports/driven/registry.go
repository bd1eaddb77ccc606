package driven

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// DecoderRegistry selects the appropriate decoder for a fragment.
// It maintains a priority-ordered list of decoders and dispatches
// based on content sniffing.
type DecoderRegistry interface {
	// Decode parses a raw fragment using the best matching decoder.
	// Selection priority: highest-priority decoder whose Sniff accepts
	// the content. Returns ErrUnknownFlavor when nothing matches.
	Decode(ctx context.Context, raw *domain.RawFragment) (*DecodeResult, error)

	// Register adds a decoder to the registry.
	Register(decoder Decoder)

	// SupportedFlavors returns all flavors that can be decoded.
	SupportedFlavors() []domain.Flavor
}
