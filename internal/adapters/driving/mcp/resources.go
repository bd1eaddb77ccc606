package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for traitdex resources.
	uriScheme = "traitdex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing crates.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "crates",
		Name:        "crates",
		Description: "Crates present in the implementor index",
		MIMEType:    "application/json",
	}, s.handleCratesResource)

	// Template for a crate's implementor records.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "crates/{crate}/implementors",
		Name:        "crate-implementors",
		Description: "Implementor records indexed for a specific crate",
		MIMEType:    "application/json",
	}, s.handleImplementorsResource)
}

// handleCratesResource returns the crates present in the index.
func (s *Server) handleCratesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	crates, err := s.ports.Query.Crates(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing crates: %w", err)
	}

	infos := make([]CrateOutput, len(crates))
	for i, crate := range crates {
		infos[i] = CrateOutput{
			Crate:   crate.Crate,
			Records: crate.Records,
			Traits:  crate.Traits,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling crates: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleImplementorsResource returns the records for a specific crate.
func (s *Server) handleImplementorsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract crate from URI: traitdex://crates/{crate}/implementors
	crate := extractCrate(req.Params.URI)
	if crate == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	results, err := s.ports.Query.Query(ctx, "", domain.QueryOptions{
		Crates:           []string{crate},
		IncludeSynthetic: true,
	})
	if err != nil {
		return nil, fmt.Errorf("querying implementors: %w", err)
	}

	infos := make([]ImplementorOutput, len(results))
	for i := range results {
		imp := results[i].Implementor
		infos[i] = ImplementorOutput{
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

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling implementors: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCrate extracts the crate name from a URI like
// traitdex://crates/{crate}/implementors.
func extractCrate(uri string) string {
	const prefix = uriScheme + "crates/"
	const suffix = "/implementors"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
