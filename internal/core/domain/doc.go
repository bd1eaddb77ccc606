// Package domain defines the core business entities for Traitdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Implementor: A single trait implementation record for a type
//   - Registry: The crate-keyed collection of implementor records for one trait
//   - RawFragment: Opaque registry bytes fetched by a connector
//   - Source: A configured location that produces fragments
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
