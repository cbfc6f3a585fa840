// Package mcp exposes the eddkit search helpers and field lookups as tools
// of a Model Context Protocol server.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when a search helper is not provided.
	ErrMissingSearchService = errors.New("mcp: customer, discount and download search are required")

	// ErrMissingFieldService is returned when the field service is not provided.
	ErrMissingFieldService = errors.New("mcp: field service is required")
)
