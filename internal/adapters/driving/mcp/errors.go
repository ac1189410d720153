// Package mcp provides an MCP (Model Context Protocol) server adapter for
// orderform. It lets AI assistants read order-form fields out of deal
// text and compute contract dates and totals.
package mcp

import "errors"

// ErrMissingExtractionService is returned when the extraction service is not provided.
var ErrMissingExtractionService = errors.New("mcp: extraction service is required")

// ErrMissingSchema is returned when the field schema is not provided.
var ErrMissingSchema = errors.New("mcp: field schema is required")
