package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

func TestExtractCrate(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid crate implementors URI",
			uri:      "traitdex://crates/actix_web/implementors",
			expected: "actix_web",
		},
		{
			name:     "invalid prefix",
			uri:      "file://crates/actix_web/implementors",
			expected: "",
		},
		{
			name:     "missing implementors suffix",
			uri:      "traitdex://crates/actix_web",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractCrate(tt.uri))
		})
	}
}

func TestServer_handleCratesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns crate summaries", func(t *testing.T) {
		mockQuery := &mockQueryService{
			crates: []driving.CrateSummary{
				{Crate: "actix_http", Records: 9, Traits: 3},
			},
		}

		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "traitdex://crates"},
		}
		result, err := server.handleCratesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "actix_http")
	})

	t.Run("propagates query errors", func(t *testing.T) {
		mockQuery := &mockQueryService{err: errors.New("store broken")}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "traitdex://crates"},
		}
		_, err = server.handleCratesResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing crates")
	})
}

func TestServer_handleImplementorsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns crate records", func(t *testing.T) {
		mockQuery := &mockQueryService{
			results: []domain.QueryResult{
				{
					Implementor: domain.Implementor{
						Crate:         "actix_web",
						TraitPath:     "core::marker::Sync",
						Text:          "impl !Sync for ResourceMap",
						Applicability: domain.ApplicabilityNever,
					},
				},
			},
		}

		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "traitdex://crates/actix_web/implementors"},
		}
		result, err := server.handleImplementorsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "ResourceMap")
		assert.Equal(t, []string{"actix_web"}, mockQuery.lastOpts.Crates)
	})

	t.Run("rejects malformed URI", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "traitdex://crates/actix_web"},
		}
		_, err = server.handleImplementorsResource(ctx, req)

		assert.Error(t, err)
	})
}
