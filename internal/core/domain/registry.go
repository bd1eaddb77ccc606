package domain

import "sort"

// Registry is the crate-keyed collection of implementor records for
// a single trait. It mirrors the structure rustdoc ships to the
// browser: one entry per crate, each holding that crate's impls.
type Registry struct {
	// TraitPath identifies the trait this registry describes.
	TraitPath string

	records map[string][]Implementor
	seen    map[string]map[string]struct{}
}

// NewRegistry creates an empty registry for the given trait.
func NewRegistry(traitPath string) *Registry {
	return &Registry{
		TraitPath: traitPath,
		records:   make(map[string][]Implementor),
		seen:      make(map[string]map[string]struct{}),
	}
}

// Register adds a record to the registry. It rejects records with an
// empty crate name and records whose signature already exists under
// the crate.
func (r *Registry) Register(imp Implementor) error {
	if imp.Crate == "" {
		return ErrEmptyCrate
	}
	key := imp.SignatureKey()
	if key == "" {
		return ErrEmptySignature
	}
	if _, dup := r.seen[imp.Crate][key]; dup {
		return ErrDuplicateRecord
	}
	if r.seen[imp.Crate] == nil {
		r.seen[imp.Crate] = make(map[string]struct{})
	}
	r.seen[imp.Crate][key] = struct{}{}
	r.records[imp.Crate] = append(r.records[imp.Crate], imp)
	return nil
}

// Merge folds another registry's records into this one. Records whose
// signature already exists under the same crate are skipped, so merging
// the same fragment twice is a no-op.
func (r *Registry) Merge(other *Registry) int {
	if other == nil {
		return 0
	}
	added := 0
	for _, crate := range other.Crates() {
		for _, imp := range other.Records(crate) {
			if err := r.Register(imp); err == nil {
				added++
			}
		}
	}
	return added
}

// Crates returns the crate names present in the registry, sorted.
func (r *Registry) Crates() []string {
	crates := make([]string, 0, len(r.records))
	for crate := range r.records {
		crates = append(crates, crate)
	}
	sort.Strings(crates)
	return crates
}

// Records returns the implementor records for a crate in insertion
// order. The returned slice is a copy.
func (r *Registry) Records(crate string) []Implementor {
	recs := r.records[crate]
	if recs == nil {
		return nil
	}
	out := make([]Implementor, len(recs))
	copy(out, recs)
	return out
}

// Contains reports whether a record with the given signature exists
// under the crate.
func (r *Registry) Contains(crate, text string) bool {
	_, ok := r.seen[crate][NormalizeSignature(text)]
	return ok
}

// Len returns the total number of records across all crates.
func (r *Registry) Len() int {
	n := 0
	for _, recs := range r.records {
		n += len(recs)
	}
	return n
}

// Canonicalize sorts each crate's records by signature text, then by
// primary type path. Emitters rely on this to produce identical output
// for identical logical content regardless of scan order.
func (r *Registry) Canonicalize() {
	for crate := range r.records {
		recs := r.records[crate]
		sort.SliceStable(recs, func(a, b int) bool {
			ka, kb := recs[a].SignatureKey(), recs[b].SignatureKey()
			if ka != kb {
				return ka < kb
			}
			return recs[a].PrimaryType() < recs[b].PrimaryType()
		})
	}
}
