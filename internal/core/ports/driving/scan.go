package driving

import "context"

// ScanOrchestrator coordinates fragment scanning from sources.
type ScanOrchestrator interface {
	// Scan triggers a scan for a source.
	Scan(ctx context.Context, sourceID string) error

	// ScanAll triggers a scan for all configured sources.
	ScanAll(ctx context.Context) error

	// Status returns scan status for a source.
	Status(ctx context.Context, sourceID string) (*ScanStatus, error)
}

// ScanStatus represents the current state of a scan operation.
type ScanStatus struct {
	// SourceID identifies the source.
	SourceID string

	// Running indicates if a scan is currently in progress.
	Running bool

	// FragmentsProcessed is the count of fragments decoded.
	FragmentsProcessed int

	// RecordsIndexed is the count of implementor records stored.
	RecordsIndexed int

	// ErrorCount is the number of errors encountered.
	ErrorCount int
}
