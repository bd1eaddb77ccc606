package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driven"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// Ensure LintService implements the interface.
var _ driving.LintService = (*LintService)(nil)

// Lint rule identifiers. Stable so callers can filter on them.
const (
	RuleEmptyCrate         = "empty-crate"
	RuleDuplicateSignature = "duplicate-signature"
	RuleApplicabilityText  = "applicability-text"
	RuleTypePath           = "type-path"
	RuleTraitLocation      = "trait-location"
	RuleNormalisedOrder    = "normalised-order"
)

// LintService checks indexed records against registry invariants.
type LintService struct {
	implStore driven.ImplementorStore
}

// NewLintService creates a new lint service.
func NewLintService(implStore driven.ImplementorStore) *LintService {
	return &LintService{implStore: implStore}
}

// recordGroup is one crate's records within one trait registry.
type recordGroup struct {
	traitPath string
	crate     string
	records   []domain.Implementor
}

// Lint runs all checks over the index and returns the findings.
// Findings are appended rule by rule, each rule walking records in
// store order (crate, then signature text).
func (s *LintService) Lint(ctx context.Context, opts driving.LintOptions) (*domain.Report, error) {
	imps, err := s.implStore.Query(ctx, domain.QueryOptions{
		TraitPath:        opts.TraitPath,
		Crates:           opts.Crates,
		IncludeSynthetic: true,
	})
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	groups := groupRecords(imps)
	report := &domain.Report{GeneratedAt: time.Now()}

	checkCrateKeys(report, imps)
	checkDuplicateSignatures(report, groups)
	checkApplicability(report, imps)
	checkTypePaths(report, imps)
	checkTraitLocation(report, imps)
	checkNormalisedOrder(report, groups)

	return report, nil
}

// groupRecords buckets records per trait registry and crate, ordered by
// trait path then crate. Records within a group keep store order.
func groupRecords(imps []domain.Implementor) []recordGroup {
	buckets := make(map[string]*recordGroup)
	for _, imp := range imps {
		key := imp.TraitPath + "\x00" + imp.Crate
		group, ok := buckets[key]
		if !ok {
			group = &recordGroup{traitPath: imp.TraitPath, crate: imp.Crate}
			buckets[key] = group
		}
		group.records = append(group.records, imp)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]recordGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, *buckets[key])
	}
	return groups
}

// checkCrateKeys flags records with an empty crate key. Such records
// cannot be registered and would corrupt a merged registry.
func checkCrateKeys(report *domain.Report, imps []domain.Implementor) {
	for _, imp := range imps {
		if strings.TrimSpace(imp.Crate) != "" {
			continue
		}
		report.Add(domain.Finding{
			Rule:      RuleEmptyCrate,
			Severity:  domain.SeverityError,
			Signature: domain.NormalizeSignature(imp.Text),
			Message:   "record has an empty crate key",
			URI:       imp.URI,
		})
	}
}

// checkDuplicateSignatures flags repeated normalised signatures within
// one crate's list for a trait.
func checkDuplicateSignatures(report *domain.Report, groups []recordGroup) {
	for _, group := range groups {
		seen := make(map[string]bool, len(group.records))
		for _, imp := range group.records {
			key := domain.NormalizeSignature(imp.Text)
			if !seen[key] {
				seen[key] = true
				continue
			}
			report.Add(domain.Finding{
				Rule:      RuleDuplicateSignature,
				Severity:  domain.SeverityError,
				Crate:     group.crate,
				Signature: key,
				Message:   fmt.Sprintf("duplicate signature in %s registry", group.traitPath),
				URI:       imp.URI,
			})
		}
	}
}

// checkApplicability flags records whose stored tri-state disagrees
// with what the signature text implies.
func checkApplicability(report *domain.Report, imps []domain.Implementor) {
	for _, imp := range imps {
		expected := domain.ClassifyApplicability(imp.Text)
		if imp.Applicability == expected {
			continue
		}
		got := string(imp.Applicability)
		if got == "" {
			got = "unset"
		}
		report.Add(domain.Finding{
			Rule:      RuleApplicabilityText,
			Severity:  domain.SeverityWarning,
			Crate:     imp.Crate,
			Signature: domain.NormalizeSignature(imp.Text),
			Message:   fmt.Sprintf("applicability is %s but signature implies %s", got, expected),
			URI:       imp.URI,
		})
	}
}

// checkTypePaths flags empty type paths and paths whose leading segment
// is not a plausible crate identifier.
func checkTypePaths(report *domain.Report, imps []domain.Implementor) {
	for _, imp := range imps {
		for _, tp := range imp.TypePaths {
			var message string
			switch {
			case strings.TrimSpace(tp) == "":
				message = "empty type path"
			case !isCrateIdent(leadingSegment(tp)):
				message = fmt.Sprintf("type path %q does not start with a crate identifier", tp)
			default:
				continue
			}
			report.Add(domain.Finding{
				Rule:      RuleTypePath,
				Severity:  domain.SeverityWarning,
				Crate:     imp.Crate,
				Signature: domain.NormalizeSignature(imp.Text),
				Message:   message,
				URI:       imp.URI,
			})
		}
	}
}

// checkTraitLocation flags records whose trait path disagrees with the
// fragment location they were decoded from. JSON exports carry no trait
// in their path and are skipped.
func checkTraitLocation(report *domain.Report, imps []domain.Implementor) {
	for _, imp := range imps {
		derived := domain.TraitPathFromURI(imp.URI)
		if derived == "" || derived == imp.TraitPath {
			continue
		}
		report.Add(domain.Finding{
			Rule:      RuleTraitLocation,
			Severity:  domain.SeverityWarning,
			Crate:     imp.Crate,
			Signature: domain.NormalizeSignature(imp.Text),
			Message:   fmt.Sprintf("record claims %s but fragment location implies %s", imp.TraitPath, derived),
			URI:       imp.URI,
		})
	}
}

// checkNormalisedOrder flags crates whose raw-text ordering differs
// from normalised signature ordering. Emit sorts by normalised key, so
// such crates are reordered relative to their indexed order. Advisory
// only; usually caused by irregular whitespace in signatures.
func checkNormalisedOrder(report *domain.Report, groups []recordGroup) {
	for _, group := range groups {
		for i := 1; i < len(group.records); i++ {
			prev := domain.NormalizeSignature(group.records[i-1].Text)
			curr := domain.NormalizeSignature(group.records[i].Text)
			if prev <= curr {
				continue
			}
			report.Add(domain.Finding{
				Rule:     RuleNormalisedOrder,
				Severity: domain.SeverityInfo,
				Crate:    group.crate,
				Message:  fmt.Sprintf("%s records leave normalised order at %q", group.traitPath, curr),
				URI:      group.records[i].URI,
			})
			break
		}
	}
}

// leadingSegment returns the first :: segment of a type path.
func leadingSegment(path string) string {
	if i := strings.Index(path, "::"); i >= 0 {
		return path[:i]
	}
	return path
}

// isCrateIdent reports whether s is a plausible crate identifier:
// letters, digits and underscores, not starting with a digit.
func isCrateIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
