package domain

import "strings"

// Registry directory names used by the two rustdoc layouts.
const (
	// LegacyRegistryDir is the root directory of legacy fragments.
	LegacyRegistryDir = "implementors"

	// ModernRegistryDir is the root directory of modern fragments.
	ModernRegistryDir = "trait.impl"
)

// TraitPathFromURI derives the trait path from a fragment location.
// Both layouts encode the path as directories under the registry root
// with a "trait.<Name>.js" leaf:
//
//	implementors/core/marker/trait.Send.js -> core::marker::Send
//	trait.impl/core/marker/trait.Sync.js   -> core::marker::Sync
//
// Returns empty string when the URI does not follow the layout.
func TraitPathFromURI(uri string) string {
	norm := strings.ReplaceAll(uri, "\\", "/")
	segs := strings.Split(norm, "/")

	root := -1
	for i, seg := range segs {
		if seg == LegacyRegistryDir || seg == ModernRegistryDir {
			root = i
		}
	}
	if root < 0 || root == len(segs)-1 {
		return ""
	}

	leaf := segs[len(segs)-1]
	name, ok := strings.CutPrefix(leaf, "trait.")
	if !ok {
		return ""
	}
	name, ok = strings.CutSuffix(name, ".js")
	if !ok {
		return ""
	}

	parts := append([]string{}, segs[root+1:len(segs)-1]...)
	parts = append(parts, name)
	return strings.Join(parts, "::")
}
