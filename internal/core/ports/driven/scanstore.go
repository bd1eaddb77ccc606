package driven

import (
	"context"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// ScanStateStore persists scan progress.
type ScanStateStore interface {
	// Save stores or updates scan state.
	Save(ctx context.Context, state domain.ScanState) error

	// Get retrieves scan state for a source.
	Get(ctx context.Context, sourceID string) (*domain.ScanState, error)

	// Delete removes scan state for a source.
	Delete(ctx context.Context, sourceID string) error
}
