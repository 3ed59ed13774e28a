// Package mcp provides an MCP (Model Context Protocol) server adapter for slidemerge.
// It lets AI assistants merge and inspect slide decks.
package mcp

import "errors"

// ErrMissingMergeService is returned when the merge service is not provided.
var ErrMissingMergeService = errors.New("mcp: merge service is required")
