// Package mcp provides an MCP (Model Context Protocol) server adapter for
// libris. It lets AI assistants read and edit the book catalog.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")
