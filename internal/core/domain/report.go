package domain

import "time"

// Severity grades a lint finding.
type Severity string

const (
	// SeverityError marks invariant violations. An index with error
	// findings would not round-trip through rustdoc's merge logic.
	SeverityError Severity = "error"

	// SeverityWarning marks suspicious but loadable content.
	SeverityWarning Severity = "warning"

	// SeverityInfo marks observations with no corrective action.
	SeverityInfo Severity = "info"
)

// Finding is a single lint result against an indexed record.
type Finding struct {
	// Rule identifies the check that produced the finding.
	Rule string

	// Severity grades the finding.
	Severity Severity

	// Crate is the crate the offending record belongs to.
	Crate string

	// Signature is the normalised signature of the offending record.
	// Empty for crate-level findings.
	Signature string

	// Message is the human-readable description.
	Message string

	// URI locates the fragment the record came from, when known.
	URI string
}

// Report aggregates lint findings for one run.
type Report struct {
	// GeneratedAt is when the lint run completed.
	GeneratedAt time.Time

	// Findings lists all results, in rule order then crate order.
	Findings []Finding
}

// Add appends a finding to the report.
func (r *Report) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// HasErrors reports whether any finding is an error.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CountBySeverity returns the number of findings per severity.
func (r *Report) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}
