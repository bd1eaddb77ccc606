package driven

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// Decoder parses registry fragments of one flavor into implementor
// records. Each decoder handles a specific on-disk format (legacy
// implementors JS, modern trait.impl JS, plain JSON).
type Decoder interface {
	// Flavor returns the fragment format this decoder handles.
	Flavor() domain.Flavor

	// Sniff reports whether the content looks like this decoder's
	// flavor. Sniffing inspects structure, it never executes the
	// fragment.
	Sniff(content []byte) bool

	// Priority returns the selection priority (higher = preferred).
	// Format-specific decoders should return 50-89.
	// Fallback decoders should return 1-9.
	Priority() int

	// Decode parses a raw fragment into implementor records.
	Decode(ctx context.Context, raw *domain.RawFragment) (*DecodeResult, error)
}

// DecodeResult contains the output of decoding one fragment.
type DecodeResult struct {
	// Flavor is the format the fragment was decoded as.
	Flavor domain.Flavor

	// Implementors are the decoded records in fragment order.
	// IDs and timestamps are not set; the scan pipeline assigns them.
	Implementors []domain.Implementor

	// Warnings are non-fatal anomalies found while decoding, such as
	// a crate key assigned twice in one fragment.
	Warnings []string
}
