package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// QueryInput is the input schema for the query_implementors tool.
type QueryInput struct {
	Pattern       string `json:"pattern,omitempty" jsonschema:"substring matched against impl signatures and type paths; empty matches everything"`
	Crate         string `json:"crate,omitempty" jsonschema:"restrict results to one crate"`
	Trait         string `json:"trait,omitempty" jsonschema:"restrict results to one trait path, e.g. core::marker::Send"`
	Applicability string `json:"applicability,omitempty" jsonschema:"filter by applicability: always, never or conditional"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// QueryOutput is the output schema for the query_implementors tool.
type QueryOutput struct {
	Results []ImplementorOutput `json:"results"`
	Count   int                 `json:"count"`
}

// ImplementorOutput represents a single implementor record.
type ImplementorOutput struct {
	Crate         string   `json:"crate"`
	Trait         string   `json:"trait"`
	Text          string   `json:"text"`
	Applicability string   `json:"applicability"`
	Synthetic     bool     `json:"synthetic"`
	TypePaths     []string `json:"type_paths,omitempty"`
	Generics      []string `json:"generics,omitempty"`
	SourceName    string   `json:"source_name,omitempty"`
}

// CratesOutput is the output schema for the list_crates tool.
type CratesOutput struct {
	Crates []CrateOutput `json:"crates"`
	Count  int           `json:"count"`
}

// CrateOutput summarises one crate's presence in the index.
type CrateOutput struct {
	Crate   string `json:"crate"`
	Records int    `json:"records"`
	Traits  int    `json:"traits"`
}

// LintInput is the input schema for the lint_index tool.
type LintInput struct {
	Crate string `json:"crate,omitempty" jsonschema:"restrict checking to one crate"`
	Trait string `json:"trait,omitempty" jsonschema:"restrict checking to one trait path"`
}

// LintOutput is the output schema for the lint_index tool.
type LintOutput struct {
	Findings []FindingOutput `json:"findings"`
	Errors   int             `json:"errors"`
	Warnings int             `json:"warnings"`
}

// FindingOutput represents a single lint finding.
type FindingOutput struct {
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Crate     string `json:"crate,omitempty"`
	Signature string `json:"signature,omitempty"`
	Message   string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_implementors",
		Description: "Search the trait-implementor index by signature, crate, trait or type path",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_crates",
		Description: "List the crates present in the index with record counts",
	}, s.handleListCrates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lint_index",
		Description: "Check the indexed registries against their structural invariants",
	}, s.handleLint)
}

// handleQuery handles the query_implementors tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	opts := domain.QueryOptions{
		Limit:            limit,
		TraitPath:        input.Trait,
		Applicability:    domain.Applicability(input.Applicability),
		IncludeSynthetic: true,
	}
	if input.Crate != "" {
		opts.Crates = []string{input.Crate}
	}

	results, err := s.ports.Query.Query(ctx, input.Pattern, opts)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Results: make([]ImplementorOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		imp := results[i].Implementor
		output.Results[i] = ImplementorOutput{
			Crate:         imp.Crate,
			Trait:         imp.TraitPath,
			Text:          imp.Text,
			Applicability: string(imp.Applicability),
			Synthetic:     imp.Synthetic,
			TypePaths:     imp.TypePaths,
			Generics:      imp.Generics,
			SourceName:    results[i].SourceName,
		}
	}

	return nil, output, nil
}

// handleListCrates handles the list_crates tool invocation.
func (s *Server) handleListCrates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, CratesOutput, error) {
	crates, err := s.ports.Query.Crates(ctx)
	if err != nil {
		return nil, CratesOutput{}, err
	}

	output := CratesOutput{
		Crates: make([]CrateOutput, len(crates)),
		Count:  len(crates),
	}
	for i, crate := range crates {
		output.Crates[i] = CrateOutput{
			Crate:   crate.Crate,
			Records: crate.Records,
			Traits:  crate.Traits,
		}
	}

	return nil, output, nil
}

// handleLint handles the lint_index tool invocation.
func (s *Server) handleLint(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LintInput,
) (*mcp.CallToolResult, LintOutput, error) {
	if s.ports.Lint == nil {
		return nil, LintOutput{}, domain.ErrNotImplemented
	}

	opts := driving.LintOptions{TraitPath: input.Trait}
	if input.Crate != "" {
		opts.Crates = []string{input.Crate}
	}

	report, err := s.ports.Lint.Lint(ctx, opts)
	if err != nil {
		return nil, LintOutput{}, err
	}

	output := LintOutput{
		Findings: make([]FindingOutput, len(report.Findings)),
	}
	for i, f := range report.Findings {
		output.Findings[i] = FindingOutput{
			Rule:      f.Rule,
			Severity:  string(f.Severity),
			Crate:     f.Crate,
			Signature: f.Signature,
			Message:   f.Message,
		}
		switch f.Severity {
		case domain.SeverityError:
			output.Errors++
		case domain.SeverityWarning:
			output.Warnings++
		}
	}

	return nil, output, nil
}
