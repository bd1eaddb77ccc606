// Package legacyjs decodes the implementors/*.js registry fragments
// rustdoc shipped before the trait.impl layout. A fragment assigns one
// array per crate to a shared implementors object and hands it to
// window.register_implementors, falling back to pending_implementors
// when the page has not loaded yet:
//
//	implementors["actix_http"] = [{"text":"impl !Send for Extensions",
//	    "synthetic":true,"types":["actix_http::extensions::Extensions"]}];
//
// Older toolchains emitted bare HTML strings instead of objects. The
// decoder accepts both without executing any JavaScript.
package legacyjs

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

// Decoder handles legacy implementors fragments.
type Decoder struct{}

// New creates a new legacy fragment decoder.
func New() *Decoder {
	return &Decoder{}
}

// Flavor returns the fragment format this decoder handles.
func (d *Decoder) Flavor() domain.Flavor {
	return domain.FlavorLegacyJS
}

// Sniff reports whether the content carries legacy crate assignments.
func (d *Decoder) Sniff(content []byte) bool {
	return bytes.Contains(content, []byte(`implementors["`)) &&
		!bytes.Contains(content, []byte("Object.fromEntries"))
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 60
}

// Pre-compiled regular expressions for fragment parsing performance.
var (
	assignHead = regexp.MustCompile(`implementors\["([^"]*)"\]\s*=\s*`)
	allTags    = regexp.MustCompile(`<[^>]+>`)
)

// Decode parses a legacy fragment into implementor records.
// Each crate assignment becomes one batch of records; entries may be
// bare HTML strings or {"text","synthetic","types"} objects.
func (d *Decoder) Decode(_ context.Context, raw *domain.RawFragment) (*driven.DecodeResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	traitPath := raw.TraitPath
	if traitPath == "" {
		traitPath = domain.TraitPathFromURI(raw.URI)
	}

	// A crate assigned twice in one fragment keeps only the last
	// assignment, with a warning.
	batches := make(map[string][]domain.Implementor)
	var crateOrder []string
	var warnings []string

	heads := assignHead.FindAllSubmatchIndex(raw.Content, -1)
	for _, head := range heads {
		crate := string(raw.Content[head[2]:head[3]])
		if crate == "" {
			return nil, fmt.Errorf("%s: %w", raw.URI, domain.ErrEmptyCrate)
		}

		payload, err := extractArray(raw.Content[head[1]:])
		if err != nil {
			return nil, fmt.Errorf("%s: crate %q: %w", raw.URI, crate, err)
		}

		var entries []any
		if err := json.Unmarshal(payload, &entries); err != nil {
			return nil, fmt.Errorf("%s: crate %q: %w", raw.URI, crate, domain.ErrMalformedFragment)
		}

		if _, seen := batches[crate]; seen {
			warnings = append(warnings, fmt.Sprintf("%s: crate %q assigned more than once, keeping last", raw.URI, crate))
		} else {
			crateOrder = append(crateOrder, crate)
		}

		var batch []domain.Implementor
		for _, entry := range entries {
			text, synthetic, types, ok := decodeEntry(entry)
			if !ok {
				continue
			}
			batch = append(batch, domain.Implementor{
				Crate:     crate,
				TraitPath: traitPath,
				Text:      text,
				Synthetic: synthetic,
				TypePaths: types,
				SourceID:  raw.SourceID,
				URI:       raw.URI,
			})
		}
		batches[crate] = batch
	}

	var imps []domain.Implementor
	for _, crate := range crateOrder {
		imps = append(imps, batches[crate]...)
	}

	return &driven.DecodeResult{
		Flavor:       domain.FlavorLegacyJS,
		Implementors: imps,
		Warnings:     warnings,
	}, nil
}

// extractArray returns the balanced JSON array at the start of b,
// brackets inside string literals included. The fragment tail (the
// register_implementors call) follows the array and is ignored.
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
// paths from one array entry. Unrecognised shapes report ok=false and
// are skipped.
func decodeEntry(entry any) (text string, synthetic bool, types []string, ok bool) {
	switch v := entry.(type) {
	case string:
		return cleanMarkup(v), false, nil, v != ""
	case map[string]any:
		rawText, _ := v["text"].(string)
		if rawText == "" {
			return "", false, nil, false
		}
		synthetic, _ = v["synthetic"].(bool)
		if arr, isArr := v["types"].([]any); isArr {
			for _, t := range arr {
				if s, isStr := t.(string); isStr {
					types = append(types, s)
				}
			}
		}
		return cleanMarkup(rawText), synthetic, types, true
	}
	return "", false, nil, false
}

// cleanMarkup strips HTML tags, decodes entities, and collapses
// whitespace. Tags are removed before entity decoding so that
// entity-encoded generics (&lt;T&gt;) survive as text.
func cleanMarkup(s string) string {
	s = allTags.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
