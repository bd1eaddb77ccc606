// Package mcp provides an MCP (Model Context Protocol) server adapter for
// traitdex. It lets AI assistants query the local trait-implementor index.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
