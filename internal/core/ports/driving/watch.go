package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// WatchService keeps the index current while fragments change on disk.
type WatchService interface {
	// Watch follows a source until the context is cancelled, decoding
	// and indexing fragments as they change. Events describe each
	// processed change.
	Watch(ctx context.Context, sourceID string) (<-chan WatchEvent, error)
}

// WatchEvent describes one processed fragment change.
type WatchEvent struct {
	// SourceID identifies the watched source.
	SourceID string

	// Type is the kind of change observed.
	Type domain.ChangeType

	// URI locates the changed fragment.
	URI string

	// TraitPath is the registry the fragment belongs to.
	TraitPath string

	// Records is the number of records indexed from the fragment.
	// Zero for deletions.
	Records int

	// At is when the change was processed.
	At time.Time

	// Err carries a processing failure, nil on success.
	Err error
}
