package domain

import (
	"fmt"
	"strings"
	"time"
)

// Source represents a configured fragment location.
// Each source produces registry fragments via a connector.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Type identifies the connector type (e.g., "filesystem", "github").
	Type string

	// Name is the human-readable name for this source.
	Name string

	// Config contains connector-specific configuration.
	Config map[string]string

	// CreatedAt is when the source was created.
	CreatedAt time.Time

	// UpdatedAt is when the source was last updated.
	UpdatedAt time.Time
}

// DisplayName returns the source name with a location hint if provided.
// Used for display in CLI/TUI where the location helps identify the source.
// If the hint is already present in the name, it is not appended again.
func (s *Source) DisplayName(hint string) string {
	if hint != "" && !strings.Contains(s.Name, hint) {
		return fmt.Sprintf("%s - %s", s.Name, hint)
	}
	return s.Name
}

// ScanState tracks the scan progress for a source.
type ScanState struct {
	// SourceID links to the Source being scanned.
	SourceID string

	// Cursor is an opaque token for incremental scans. The filesystem
	// connector stores a modification timestamp, the github connector
	// a commit SHA.
	Cursor string

	// LastScan is when the last successful scan completed.
	LastScan time.Time
}
