package domain

// Flavor identifies the on-disk format of a registry fragment.
type Flavor string

const (
	// FlavorLegacyJS is the implementors/*.js format: an assignment to
	// an implementors object followed by a register/pending callback.
	FlavorLegacyJS Flavor = "legacy-js"

	// FlavorModernJS is the trait.impl/*.js format: Object.fromEntries
	// over nested arrays with a fragment-length trailer comment.
	FlavorModernJS Flavor = "modern-js"

	// FlavorJSON is the plain JSON interchange format produced by
	// the emit command.
	FlavorJSON Flavor = "json"
)

// RawFragment represents opaque registry bytes fetched by a connector.
// It is the connector's output before decoding.
type RawFragment struct {
	// SourceID links to the Source that produced this fragment.
	SourceID string

	// URI is the original location (file path, URL, etc).
	URI string

	// TraitPath is the trait the fragment registers implementors for,
	// derived from the fragment's path within the doc tree
	// (implementors/core/marker/trait.Send.js -> core::marker::Send).
	TraitPath string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains connector-specific key-value pairs.
	Metadata map[string]any
}

// ChangeType represents the type of fragment change.
type ChangeType int

const (
	// ChangeCreated indicates a new fragment.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified fragment.
	ChangeUpdated

	// ChangeDeleted indicates a removed fragment.
	ChangeDeleted
)

// FragmentChange represents a change event from a connector.
// Used for incremental scans and watch operations.
type FragmentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Fragment is the affected fragment.
	Fragment RawFragment
}
