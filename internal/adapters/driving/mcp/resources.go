package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for slidemerge resources.
	uriScheme = "slidemerge://"

	// historyLimit caps the runs listed by the history resource.
	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for recent merges.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Most recent merge runs",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// Template for a single run.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{runId}",
		Name:        "merge-run",
		Description: "Details of a recorded merge run",
		MIMEType:    "application/json",
	}, s.handleRunResource)
}

// runInfo is the JSON shape of a recorded merge.
type runInfo struct {
	ID        string            `json:"id"`
	Input     string            `json:"input"`
	Outputs   map[string]string `json:"outputs,omitempty"`
	Excluded  int               `json:"excluded"`
	Passes    int               `json:"passes"`
	Skipped   bool              `json:"skipped,omitempty"`
	Error     string            `json:"error,omitempty"`
	StartedAt string            `json:"started_at"`
}

func newRunInfo(run *domain.MergeRun) runInfo {
	info := runInfo{
		ID:        run.ID,
		Input:     run.Input,
		Excluded:  run.Excluded,
		Passes:    run.Passes,
		Skipped:   run.Skipped,
		Error:     run.Error,
		StartedAt: run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if len(run.Outputs) > 0 {
		info.Outputs = make(map[string]string, len(run.Outputs))
		for v, path := range run.Outputs {
			info.Outputs[v.String()] = path
		}
	}
	return info
}

// handleHistoryResource returns the most recent merge runs.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	runs, err := s.ports.History.List(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		infos[i] = newRunInfo(&runs[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

// handleRunResource returns a single merge run.
func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract runId from URI: slidemerge://history/{runId}
	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	run, err := s.ports.History.Get(ctx, runID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}

	data, err := json.MarshalIndent(newRunInfo(run), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling run: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractRunID extracts the run ID from a URI like slidemerge://history/{runId}.
func extractRunID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
