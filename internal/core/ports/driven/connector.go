package driven

import (
	"context"
	"errors"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// Connector fetches registry fragments from a source.
// Each connector type (filesystem, github) implements this interface.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// SourceID returns the configured source ID.
	SourceID() string

	// Capabilities returns what this connector supports.
	Capabilities() ConnectorCapabilities

	// Validate checks if the connector is properly configured.
	// Performs a lightweight check to verify the connector is ready to scan.
	// For API connectors, this typically makes a test API call.
	// For filesystem, this checks the doc root exists and is readable.
	// Returns nil if ready to scan, error describing the problem otherwise.
	Validate(ctx context.Context) error

	// FullScan fetches all registry fragments from the source.
	// Returns channels for fragments and errors.
	FullScan(ctx context.Context) (<-chan domain.RawFragment, <-chan error)

	// IncrementalScan fetches only fragments changed since the last scan.
	// Only available if SupportsIncremental is true.
	// Connectors that support cursor return should send ScanComplete on the
	// error channel upon successful completion.
	IncrementalScan(ctx context.Context, state domain.ScanState) (<-chan domain.FragmentChange, <-chan error)

	// Watch listens for real-time fragment changes.
	// Only available if SupportsWatch is true.
	Watch(ctx context.Context) (<-chan domain.FragmentChange, error)

	// Close releases resources.
	Close() error
}

// ConnectorCapabilities describes what a connector supports.
type ConnectorCapabilities struct {
	// SupportsIncremental indicates the connector can fetch only changes.
	SupportsIncremental bool

	// SupportsWatch indicates the connector can push real-time events.
	SupportsWatch bool

	// RequiresAuth indicates the connector needs authentication.
	// False for local connectors like filesystem.
	RequiresAuth bool

	// SupportsValidation indicates Validate() performs actual validation.
	// When true, Validate() makes a real check (e.g., API call, path check).
	SupportsValidation bool

	// SupportsCursorReturn indicates IncrementalScan can return an updated
	// cursor via the ScanComplete sentinel on the error channel.
	SupportsCursorReturn bool

	// SupportsRateLimiting indicates the connector handles rate limiting
	// internally. Helps the orchestrator understand connector behaviour.
	SupportsRateLimiting bool

	// SupportsPagination indicates the connector handles paginated APIs.
	// Connectors handle pagination internally; this is informational.
	SupportsPagination bool
}

// ScanComplete is sent on the error channel when a scan completes
// successfully. Carries the new cursor state for incremental scans.
type ScanComplete struct {
	NewCursor string
}

// Error implements the error interface.
// This allows ScanComplete to be sent on the error channel.
func (ScanComplete) Error() string {
	return "scan complete"
}

// IsScanComplete checks if an error is actually a successful completion.
// Returns the ScanComplete and true if it is, nil and false otherwise.
func IsScanComplete(err error) (*ScanComplete, bool) {
	var sc *ScanComplete
	if errors.As(err, &sc) {
		return sc, true
	}
	return nil, false
}
