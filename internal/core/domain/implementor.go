package domain

import "time"

// Applicability describes whether a marker trait applies to a type.
// Rustdoc emits three states: unconditional impls, negative impls
// (impl !Trait), and impls constrained by a where clause.
type Applicability string

const (
	// ApplicabilityAlways indicates an unconditional positive impl.
	ApplicabilityAlways Applicability = "always"

	// ApplicabilityNever indicates a negative impl (impl !Trait for T).
	ApplicabilityNever Applicability = "never"

	// ApplicabilityConditional indicates the impl holds only under
	// the bounds of a where clause.
	ApplicabilityConditional Applicability = "conditional"
)

// Valid reports whether the applicability is one of the three known states.
func (a Applicability) Valid() bool {
	switch a {
	case ApplicabilityAlways, ApplicabilityNever, ApplicabilityConditional:
		return true
	}
	return false
}

// Implementor represents a single trait implementation record.
// It is the canonical representation after decoding a registry fragment.
type Implementor struct {
	// ID is the unique identifier for the record.
	ID string

	// Crate is the name of the crate that owns the impl.
	// Registries are keyed by crate; an empty crate is invalid.
	Crate string

	// TraitPath is the fully qualified path of the trait the record
	// belongs to (e.g., "core::marker::Send").
	TraitPath string

	// Text is the rendered impl signature with markup stripped
	// (e.g., "impl<T> Send for Dispatcher<T> where T: Send").
	Text string

	// Synthetic indicates the impl was generated by the compiler
	// (auto traits) rather than written by hand.
	Synthetic bool

	// Applicability is the tri-state marker applicability derived
	// from the signature.
	Applicability Applicability

	// TypePaths lists the fully qualified paths of the implementing
	// types (e.g., "actix_http::h1::dispatcher::Dispatcher").
	TypePaths []string

	// Generics lists the generic parameter names introduced by the
	// impl header, in declaration order.
	Generics []string

	// SourceID links to the Source whose fragment produced this record.
	SourceID string

	// URI is the location of the fragment the record was decoded from.
	URI string

	// CreatedAt is when the record was first indexed.
	CreatedAt time.Time

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time
}

// SignatureKey returns the whitespace-normalised signature text.
// Two records under the same crate are duplicates when their
// signature keys match.
func (i *Implementor) SignatureKey() string {
	return NormalizeSignature(i.Text)
}

// PrimaryType returns the first implementing type path, or empty
// string if the record carries none.
func (i *Implementor) PrimaryType() string {
	if len(i.TypePaths) == 0 {
		return ""
	}
	return i.TypePaths[0]
}

// Validate checks the record against registry invariants.
func (i *Implementor) Validate() error {
	if i.Crate == "" {
		return ErrEmptyCrate
	}
	if NormalizeSignature(i.Text) == "" {
		return ErrEmptySignature
	}
	if !i.Applicability.Valid() {
		return ErrInvalidInput
	}
	return nil
}
