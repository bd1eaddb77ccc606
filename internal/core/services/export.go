package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
	"github.com/custodia-labs/traitdex/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// Fragment shim shared by both JS flavors. The registry object is
// handed to the viewer if it is already listening, parked otherwise.
const registerTail = `if (window.register_implementors) {window.register_implementors(implementors);} else {(window.pending_implementors = window.pending_implementors || []).push(implementors);}`

// modernPrefix opens a trait.impl fragment. Its length is the "start"
// value in the trailer.
const modernPrefix = `(function() {var implementors = Object.fromEntries([`

// ExportService renders indexed registries back into fragment form.
type ExportService struct {
	implStore driven.ImplementorStore
}

// NewExportService creates a new export service.
func NewExportService(implStore driven.ImplementorStore) *ExportService {
	return &ExportService{implStore: implStore}
}

// Emit renders one trait registry in the requested flavor. Output is
// canonical: crates sorted, records sorted by normalised signature then
// primary type, duplicates and unregistrable records dropped. Identical
// index content therefore yields identical bytes regardless of scan
// order.
func (s *ExportService) Emit(ctx context.Context, opts driving.EmitOptions) ([]byte, error) {
	if opts.TraitPath == "" {
		return nil, fmt.Errorf("trait path required: %w", domain.ErrInvalidInput)
	}

	flavor := opts.Flavor
	if flavor == "" {
		flavor = domain.FlavorLegacyJS
	}

	registry, err := assembleRegistry(ctx, s.implStore, opts.TraitPath, opts.Crates)
	if err != nil {
		return nil, err
	}

	switch flavor {
	case domain.FlavorLegacyJS:
		return renderLegacy(registry)
	case domain.FlavorModernJS:
		return renderModern(registry)
	case domain.FlavorJSON:
		return renderJSON(registry)
	default:
		return nil, fmt.Errorf("flavor %q: %w", flavor, domain.ErrUnsupportedType)
	}
}

// TraitPaths returns the trait registries available to emit, sorted.
func (s *ExportService) TraitPaths(ctx context.Context) ([]string, error) {
	counts, err := s.implStore.TraitCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("trait counts: %w", err)
	}

	paths := make([]string, len(counts))
	for i, c := range counts {
		paths[i] = c.TraitPath
	}
	return paths, nil
}

// assembleRegistry builds the canonical Registry aggregate for a trait
// from an index. Records that cannot be registered (duplicates, empty
// keys) are dropped with a debug note; lint is the tool that reports
// them.
func assembleRegistry(ctx context.Context, implStore driven.ImplementorStore, traitPath string, crates []string) (*domain.Registry, error) {
	imps, err := implStore.Query(ctx, domain.QueryOptions{
		TraitPath:        traitPath,
		Crates:           crates,
		IncludeSynthetic: true,
	})
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	if len(imps) == 0 {
		return nil, fmt.Errorf("trait %s: %w", traitPath, domain.ErrNotFound)
	}

	registry := domain.NewRegistry(traitPath)
	for _, imp := range imps {
		if err := registry.Register(imp); err != nil {
			if errors.Is(err, domain.ErrDuplicateRecord) {
				logger.Debug("Registry assembly drops duplicate %q in %s", imp.Text, imp.Crate)
				continue
			}
			logger.Debug("Registry assembly drops unregistrable record %q: %v", imp.Text, err)
		}
	}
	registry.Canonicalize()
	return registry, nil
}

// legacyEntry is one record in implementors/ fragment form.
type legacyEntry struct {
	Text      string   `json:"text"`
	Synthetic bool     `json:"synthetic"`
	Types     []string `json:"types"`
}

// renderLegacy writes an implementors/ style fragment: one array
// assignment per crate inside the registration shim. Signature text is
// entity-encoded the way rustdoc ships it; decoders strip raw angle
// brackets as markup, so generics must travel as &lt;T&gt;.
func renderLegacy(registry *domain.Registry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("(function() {var implementors = {};\n")

	for _, crate := range registry.Crates() {
		records := registry.Records(crate)
		entries := make([]string, 0, len(records))
		for _, imp := range records {
			entry, err := marshalCompact(legacyEntry{
				Text:      escapeMarkup(imp.Text),
				Synthetic: imp.Synthetic,
				Types:     typesOrEmpty(imp),
			})
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", crate, err)
			}
			entries = append(entries, entry)
		}

		key, err := marshalCompact(crate)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", crate, err)
		}
		fmt.Fprintf(&buf, "implementors[%s] = [%s];\n", key, strings.Join(entries, ","))
	}

	buf.WriteString(registerTail)
	buf.WriteString("})()")
	return buf.Bytes(), nil
}

// renderModern writes a trait.impl style fragment: crate fragments
// inside Object.fromEntries, followed by the merge trailer. The trailer
// records where the first fragment starts and how long each fragment
// is; every length counts the fragment bytes plus the single delimiter
// byte that terminates it (the comma between fragments, the closing
// bracket after the last), so the fragments can be sliced back out of
// the file without parsing it.
func renderModern(registry *domain.Registry) ([]byte, error) {
	crates := registry.Crates()
	fragments := make([]string, 0, len(crates))
	for _, crate := range crates {
		fragment, err := renderModernFragment(registry, crate)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}

	var buf bytes.Buffer
	buf.WriteString(modernPrefix)
	buf.WriteString(strings.Join(fragments, ","))
	buf.WriteString("]);")
	buf.WriteString(registerTail)
	buf.WriteString("})()")

	lengths := make([]string, len(fragments))
	for i, fragment := range fragments {
		lengths[i] = strconv.Itoa(len(fragment) + 1)
	}
	fmt.Fprintf(&buf, "\n//{\"start\":%d,\"fragment_lengths\":[%s]}", len(modernPrefix), strings.Join(lengths, ","))

	return buf.Bytes(), nil
}

// renderModernFragment writes one crate's ["crate",[entries]] fragment.
// Entries are [signature, synthetic flag, type paths] arrays; signature
// text is entity-encoded like the legacy flavor.
func renderModernFragment(registry *domain.Registry, crate string) (string, error) {
	records := registry.Records(crate)
	entries := make([]string, 0, len(records))
	for _, imp := range records {
		synthetic := 0
		if imp.Synthetic {
			synthetic = 1
		}
		entry, err := marshalCompact([]any{escapeMarkup(imp.Text), synthetic, typesOrEmpty(imp)})
		if err != nil {
			return "", fmt.Errorf("render %s: %w", crate, err)
		}
		entries = append(entries, entry)
	}

	key, err := marshalCompact(crate)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", crate, err)
	}
	return fmt.Sprintf("[%s,[%s]]", key, strings.Join(entries, ",")), nil
}

// jsonRegistry is the interchange document shape. It mirrors what the
// jsonfile decoder reads so emitted output scans back in losslessly.
type jsonRegistry struct {
	Trait  string                 `json:"trait"`
	Crates map[string][]jsonEntry `json:"crates"`
}

// jsonEntry is one implementor record in interchange form.
type jsonEntry struct {
	Text          string   `json:"text"`
	Synthetic     bool     `json:"synthetic"`
	Applicability string   `json:"applicability,omitempty"`
	Types         []string `json:"types,omitempty"`
	Generics      []string `json:"generics,omitempty"`
}

// renderJSON writes the canonical JSON interchange document. Map keys
// marshal sorted, so output is deterministic.
func renderJSON(registry *domain.Registry) ([]byte, error) {
	doc := jsonRegistry{
		Trait:  registry.TraitPath,
		Crates: make(map[string][]jsonEntry, registry.Len()),
	}

	for _, crate := range registry.Crates() {
		records := registry.Records(crate)
		entries := make([]jsonEntry, 0, len(records))
		for _, imp := range records {
			entries = append(entries, jsonEntry{
				Text:          imp.Text,
				Synthetic:     imp.Synthetic,
				Applicability: string(imp.Applicability),
				Types:         imp.TypePaths,
				Generics:      imp.Generics,
			})
		}
		doc.Crates[crate] = entries
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return buf.Bytes(), nil
}

// typesOrEmpty returns the record's type paths, never nil, so JS
// flavors always carry an array.
func typesOrEmpty(imp domain.Implementor) []string {
	if imp.TypePaths == nil {
		return []string{}
	}
	return imp.TypePaths
}

// markupEscaper entity-encodes the characters decoders treat as markup.
var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeMarkup entity-encodes signature text for the JS flavors.
// The JSON flavor carries plain text and does not use this.
func escapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}

// marshalCompact marshals without HTML escaping, so generics in
// signatures stay readable (impl<T> rather than impl<T>).
func marshalCompact(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
