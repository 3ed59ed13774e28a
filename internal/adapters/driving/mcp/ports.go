package mcp

import (
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Merge merges decks into their variants.
	Merge driving.MergeService

	// Inspect reports what a merge would do.
	Inspect driving.InspectService

	// History exposes recorded merges.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Merge == nil {
		return ErrMissingMergeService
	}
	// Inspect and History are optional; their tools and resources degrade.
	return nil
}
