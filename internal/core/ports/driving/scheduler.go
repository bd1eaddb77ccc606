package driving

import "context"

// Scheduler runs background periodic rescans for configured sources.
type Scheduler interface {
	// Start begins running scheduled rescans.
	// Blocks until context is cancelled or an error occurs.
	Start(ctx context.Context) error

	// Stop gracefully stops, waiting for in-flight rescans to finish.
	Stop() error
}
