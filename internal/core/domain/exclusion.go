package domain

import "time"

// Exclusion represents a fragment or crate excluded from indexing.
// Excluded fragments are skipped during scans; records owned by an
// excluded crate are dropped before they reach the index.
type Exclusion struct {
	// ID is the unique identifier for the exclusion.
	ID string

	// SourceID links to the Source this exclusion applies to.
	SourceID string

	// URI matches one fragment location. Empty when the exclusion
	// is crate-wide.
	URI string

	// Crate matches every record owned by the crate, across all of
	// the source's fragments. Empty when the exclusion targets a
	// single fragment.
	Crate string

	// Reason is an optional explanation for the exclusion.
	Reason string

	// ExcludedAt is when the exclusion was created.
	ExcludedAt time.Time
}

// Validate checks that the exclusion targets exactly one of a fragment
// URI or a crate.
func (e *Exclusion) Validate() error {
	if e.SourceID == "" {
		return ErrInvalidInput
	}
	if (e.URI == "") == (e.Crate == "") {
		return ErrInvalidInput
	}
	return nil
}

// Target returns what the exclusion matches, for display.
func (e *Exclusion) Target() string {
	if e.Crate != "" {
		return "crate:" + e.Crate
	}
	return e.URI
}
