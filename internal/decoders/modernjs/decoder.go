// Package modernjs decodes the trait.impl/*.js registry fragments
// emitted by current rustdoc. A fragment builds the implementors
// object from nested arrays and hands it to window.register_implementors,
// falling back to pending_implementors when the page has not loaded yet:
//
//	(function() {
//	    var implementors = Object.fromEntries([["actix_http",[
//	        ["impl !Send for Extensions",1,["actix_http::extensions::Extensions"]]
//	    ]]]);
//	    ...
//	})()
//	//{"start":57,"fragment_lengths":[123]}
//
// Each entry is [signature, synthetic flag, type paths]; trailing
// elements vary across toolchain versions and are matched by shape.
// The decoder never executes any JavaScript.
package modernjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles modern trait.impl fragments.
type Decoder struct{}

// New creates a new modern fragment decoder.
func New() *Decoder {
	return &Decoder{}
}

// Flavor returns the fragment format this decoder handles.
func (d *Decoder) Flavor() domain.Flavor {
	return domain.FlavorModernJS
}

// Sniff reports whether the content builds its registry via
// Object.fromEntries.
func (d *Decoder) Sniff(content []byte) bool {
	return bytes.Contains(content, []byte("Object.fromEntries"))
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 70
}

// Pre-compiled regular expressions for fragment parsing performance.
var (
	fromEntriesHead = regexp.MustCompile(`Object\.fromEntries\(\s*`)
	allTags         = regexp.MustCompile(`<[^>]+>`)
)

// Decode parses a modern fragment into implementor records.
func (d *Decoder) Decode(_ context.Context, raw *domain.RawFragment) (*driven.DecodeResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	traitPath := raw.TraitPath
	if traitPath == "" {
		traitPath = domain.TraitPathFromURI(raw.URI)
	}

	head := fromEntriesHead.FindIndex(raw.Content)
	if head == nil {
		return nil, fmt.Errorf("%s: %w", raw.URI, domain.ErrUnknownFlavor)
	}

	payload, err := extractArray(raw.Content[head[1]:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", raw.URI, err)
	}

	var pairs []any
	if err := json.Unmarshal(payload, &pairs); err != nil {
		return nil, fmt.Errorf("%s: %w", raw.URI, domain.ErrMalformedFragment)
	}

	var imps []domain.Implementor
	for _, pair := range pairs {
		kv, ok := pair.([]any)
		if !ok || len(kv) < 2 {
			return nil, fmt.Errorf("%s: %w", raw.URI, domain.ErrMalformedFragment)
		}
		crate, ok := kv[0].(string)
		if !ok {
			return nil, fmt.Errorf("%s: %w", raw.URI, domain.ErrMalformedFragment)
		}
		if crate == "" {
			return nil, fmt.Errorf("%s: %w", raw.URI, domain.ErrEmptyCrate)
		}
		entries, ok := kv[1].([]any)
		if !ok {
			return nil, fmt.Errorf("%s: crate %q: %w", raw.URI, crate, domain.ErrMalformedFragment)
		}

		for _, entry := range entries {
			text, synthetic, types, ok := decodeEntry(entry)
			if !ok {
				continue
			}
			imps = append(imps, domain.Implementor{
				Crate:     crate,
				TraitPath: traitPath,
				Text:      text,
				Synthetic: synthetic,
				TypePaths: types,
				SourceID:  raw.SourceID,
				URI:       raw.URI,
			})
		}
	}

	return &driven.DecodeResult{
		Flavor:       domain.FlavorModernJS,
		Implementors: imps,
	}, nil
}

// extractArray returns the balanced JSON array at the start of b,
// brackets inside string literals included.
func extractArray(b []byte) ([]byte, error) {
	if len(b) == 0 || b[0] != '[' {
		return nil, domain.ErrMalformedFragment
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return b[:i+1], nil
			}
		}
	}
	return nil, domain.ErrMalformedFragment
}

// decodeEntry extracts signature text, the synthetic flag, and type
// paths from one entry. A bare string is a signature with no flags.
// For arrays the first string is the signature; the remaining elements
// are matched by shape so version differences in field order do not
// break decoding. Unrecognised shapes report ok=false and are skipped.
func decodeEntry(entry any) (text string, synthetic bool, types []string, ok bool) {
	if s, isStr := entry.(string); isStr {
		return cleanMarkup(s), false, nil, s != ""
	}
	arr, isArr := entry.([]any)
	if !isArr || len(arr) == 0 {
		return "", false, nil, false
	}
	rawText, isStr := arr[0].(string)
	if !isStr || rawText == "" {
		return "", false, nil, false
	}

	for _, elem := range arr[1:] {
		switch v := elem.(type) {
		case bool:
			synthetic = v
		case float64:
			synthetic = v != 0
		case []any:
			for _, t := range v {
				if s, isPath := t.(string); isPath {
					types = append(types, s)
				}
			}
		}
	}
	return cleanMarkup(rawText), synthetic, types, true
}

// cleanMarkup strips HTML tags, decodes entities, and collapses
// whitespace. Tags are removed before entity decoding so that
// entity-encoded generics (&lt;T&gt;) survive as text.
func cleanMarkup(s string) string {
	s = allTags.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
