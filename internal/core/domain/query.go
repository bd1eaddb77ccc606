package domain

// QueryOptions configures an implementor lookup.
type QueryOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// Crates filters to specific crates.
	Crates []string

	// TraitPath filters to a specific trait registry.
	TraitPath string

	// Applicability filters to a specific tri-state, empty for all.
	Applicability Applicability

	// IncludeSynthetic includes compiler-generated impls. When false,
	// only hand-written impls are returned.
	IncludeSynthetic bool
}

// QueryResult represents a single lookup hit.
type QueryResult struct {
	// Implementor is the matched record.
	Implementor Implementor

	// SourceName is the display name of the source the record came from.
	SourceName string
}
