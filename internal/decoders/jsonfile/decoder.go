// Package jsonfile decodes the plain JSON interchange format that
// `traitdex emit --flavor json` produces. The format carries the
// decoded registry verbatim, so round-tripping through emit and scan
// is lossless:
//
//	{
//	  "trait": "core::marker::Send",
//	  "crates": {
//	    "actix_http": [
//	      {"text":"impl !Send for Extensions","synthetic":true,
//	       "applicability":"never","types":["actix_http::extensions::Extensions"]}
//	    ]
//	  }
//	}
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles JSON interchange fragments.
type Decoder struct{}

// New creates a new JSON fragment decoder.
func New() *Decoder {
	return &Decoder{}
}

// Flavor returns the fragment format this decoder handles.
func (d *Decoder) Flavor() domain.Flavor {
	return domain.FlavorJSON
}

// Sniff reports whether the content is a JSON registry document.
func (d *Decoder) Sniff(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	return len(trimmed) > 0 && trimmed[0] == '{' && bytes.Contains(trimmed, []byte(`"crates"`))
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 50
}

// registryFile is the interchange document shape.
type registryFile struct {
	Trait  string                 `json:"trait"`
	Crates map[string][]entryFile `json:"crates"`
}

// entryFile is one implementor record in interchange form.
type entryFile struct {
	Text          string   `json:"text"`
	Synthetic     bool     `json:"synthetic"`
	Applicability string   `json:"applicability,omitempty"`
	Types         []string `json:"types,omitempty"`
	Generics      []string `json:"generics,omitempty"`
}

// Decode parses a JSON fragment into implementor records.
// An explicit trait field overrides the path-derived trait.
func (d *Decoder) Decode(_ context.Context, raw *domain.RawFragment) (*driven.DecodeResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	var file registryFile
	if err := json.Unmarshal(raw.Content, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", raw.URI, domain.ErrMalformedFragment)
	}

	traitPath := file.Trait
	if traitPath == "" {
		traitPath = raw.TraitPath
	}

	crates := make([]string, 0, len(file.Crates))
	for crate := range file.Crates {
		if crate == "" {
			return nil, fmt.Errorf("%s: %w", raw.URI, domain.ErrEmptyCrate)
		}
		crates = append(crates, crate)
	}
	sort.Strings(crates)

	var imps []domain.Implementor
	for _, crate := range crates {
		for _, entry := range file.Crates[crate] {
			applicability := domain.Applicability(entry.Applicability)
			if !applicability.Valid() {
				applicability = ""
			}
			imps = append(imps, domain.Implementor{
				Crate:         crate,
				TraitPath:     traitPath,
				Text:          entry.Text,
				Synthetic:     entry.Synthetic,
				Applicability: applicability,
				TypePaths:     entry.Types,
				Generics:      entry.Generics,
				SourceID:      raw.SourceID,
				URI:           raw.URI,
			})
		}
	}

	return &driven.DecodeResult{
		Flavor:       domain.FlavorJSON,
		Implementors: imps,
	}, nil
}
