package domain

import "strings"

// NormalizeSignature collapses runs of whitespace into single spaces
// and trims the result. Fragments render the same impl with differing
// whitespace across rustdoc versions; comparisons use this form.
func NormalizeSignature(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ClassifyApplicability derives the tri-state marker applicability
// from a signature. A negative impl ("impl !Send for T") never
// applies, a where clause makes the impl conditional, anything else
// applies unconditionally.
func ClassifyApplicability(text string) Applicability {
	sig := NormalizeSignature(text)
	if isNegativeImpl(sig) {
		return ApplicabilityNever
	}
	if strings.Contains(sig, " where ") || strings.HasSuffix(sig, " where") {
		return ApplicabilityConditional
	}
	return ApplicabilityAlways
}

// isNegativeImpl reports whether the signature negates the trait.
// The bang sits directly before the trait name, after the generic
// header if one is present: "impl !Send for T", "impl<T> !Sync for Foo<T>".
func isNegativeImpl(sig string) bool {
	rest, ok := strings.CutPrefix(sig, "impl")
	if !ok {
		return false
	}
	rest = skipGenericHeader(rest)
	return strings.HasPrefix(strings.TrimLeft(rest, " "), "!")
}

// ExtractGenerics returns the generic parameter names introduced by
// the impl header, in declaration order. Lifetimes keep their leading
// tick; bounds and defaults are dropped.
//
//	impl<'a, T: Clone, const N: usize> ... -> ["'a", "T", "N"]
func ExtractGenerics(text string) []string {
	sig := NormalizeSignature(text)
	rest, ok := strings.CutPrefix(sig, "impl")
	if !ok || !strings.HasPrefix(rest, "<") {
		return nil
	}

	header, ok := genericHeader(rest)
	if !ok {
		return nil
	}

	var names []string
	for _, param := range splitTopLevel(header, ',') {
		if name := genericParamName(param); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// genericHeader returns the contents of the angle-bracketed header at
// the start of rest, without the brackets. Nested brackets are kept.
// The ">" of a "->" return arrow, as in Fn() -> u32 bounds, is not a
// closing bracket.
func genericHeader(rest string) (string, bool) {
	depth := 0
	for i, r := range rest {
		switch r {
		case '<':
			depth++
		case '>':
			if returnArrow(rest, i) {
				continue
			}
			depth--
			if depth == 0 {
				return rest[1:i], true
			}
		}
	}
	return "", false
}

// skipGenericHeader returns the signature after the impl's generic
// header, or the input unchanged when no header is present.
func skipGenericHeader(rest string) string {
	if !strings.HasPrefix(rest, "<") {
		return rest
	}
	depth := 0
	for i, r := range rest {
		switch r {
		case '<':
			depth++
		case '>':
			if returnArrow(rest, i) {
				continue
			}
			depth--
			if depth == 0 {
				return rest[i+1:]
			}
		}
	}
	return rest
}

// returnArrow reports whether the '>' at index i closes a "->" arrow
// rather than an angle bracket.
func returnArrow(s string, i int) bool {
	return i > 0 && s[i-1] == '-'
}

// splitTopLevel splits s on sep, ignoring separators nested inside
// angle brackets or parentheses.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<', '(', '[':
			depth++
		case '>':
			if !returnArrow(s, i) {
				depth--
			}
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// genericParamName extracts the bare parameter name from a single
// generic parameter declaration.
func genericParamName(param string) string {
	param = strings.TrimSpace(param)
	if param == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(param, "const "); ok {
		param = rest
	}
	// Drop bounds ("T: Clone") and defaults ("B = BoxBody").
	if idx := strings.IndexAny(param, ":="); idx >= 0 {
		param = param[:idx]
	}
	return strings.TrimSpace(param)
}
