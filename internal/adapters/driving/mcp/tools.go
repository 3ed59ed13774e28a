package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/merger"
)

// MergeInput is the input schema for the merge_file tool.
type MergeInput struct {
	Path   string `json:"path" jsonschema:"path of the Markdown slide deck to merge"`
	Output string `json:"output,omitempty" jsonschema:"optional path for the site variant"`
}

// MergeOutput is the output schema for the merge_file tool.
type MergeOutput struct {
	Skipped  bool              `json:"skipped"`
	Outputs  map[string]string `json:"outputs,omitempty"`
	Excluded int               `json:"excluded"`
	Passes   int               `json:"passes"`
	Warnings []string          `json:"warnings,omitempty"`
}

// InspectInput is the input schema for the inspect_file tool.
type InspectInput struct {
	Path string `json:"path" jsonschema:"path of the Markdown slide deck to inspect"`
}

// InspectOutput is the output schema for the inspect_file tool.
type InspectOutput struct {
	Lines    int              `json:"lines"`
	Counts   map[string]int   `json:"counts"`
	Excluded []ExcludedOutput `json:"excluded"`
	Passes   int              `json:"passes"`
	Title    string           `json:"title,omitempty"`
	Outline  []domain.Heading `json:"outline,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}

// ExcludedOutput is one line the merge drops from the site and document variants.
type ExcludedOutput struct {
	Line int    `json:"line"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// SimilarityInput is the input schema for the similarity tool.
type SimilarityInput struct {
	A string `json:"a" jsonschema:"first header title"`
	B string `json:"b" jsonschema:"second header title"`
}

// SimilarityOutput is the output schema for the similarity tool.
type SimilarityOutput struct {
	Score float64 `json:"score"`
}

// errInspectUnavailable is returned by inspect_file when no inspect service is configured.
var errInspectUnavailable = errors.New("inspect service not configured")

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "merge_file",
		Description: "Merge a Marp slide deck into site, document and slide variants",
	}, s.handleMerge)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "inspect_file",
		Description: "Report which lines a merge would exclude without writing files",
	}, s.handleInspect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similarity",
		Description: "Character-set similarity of two header titles, as used for duplicate detection",
	}, s.handleSimilarity)
}

// handleMerge handles the merge_file tool invocation.
func (s *Server) handleMerge(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MergeInput,
) (*mcp.CallToolResult, MergeOutput, error) {
	result, err := s.ports.Merge.MergeFile(ctx, input.Path, input.Output)
	if err != nil {
		return nil, MergeOutput{}, err
	}

	output := MergeOutput{
		Skipped:  result.Skipped,
		Excluded: len(result.Excluded),
		Passes:   result.Passes,
	}
	if len(result.Outputs) > 0 {
		output.Outputs = make(map[string]string, len(result.Outputs))
		for v, path := range result.Outputs {
			output.Outputs[v.String()] = path
		}
	}
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, w.Error())
	}

	return nil, output, nil
}

// handleInspect handles the inspect_file tool invocation.
func (s *Server) handleInspect(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InspectInput,
) (*mcp.CallToolResult, InspectOutput, error) {
	if s.ports.Inspect == nil {
		return nil, InspectOutput{}, errInspectUnavailable
	}

	report, err := s.ports.Inspect.Inspect(ctx, input.Path)
	if err != nil {
		return nil, InspectOutput{}, err
	}

	output := InspectOutput{
		Lines:    report.Lines,
		Counts:   make(map[string]int, len(report.Counts)),
		Excluded: make([]ExcludedOutput, len(report.Excluded)),
		Passes:   report.Passes,
		Outline:  report.Outline,
		Warnings: report.Warnings,
	}
	for kind, n := range report.Counts {
		output.Counts[kind.String()] = n
	}
	for i, ex := range report.Excluded {
		output.Excluded[i] = ExcludedOutput{
			Line: ex.Index + 1,
			Kind: ex.Kind.String(),
			Text: ex.Text,
		}
	}
	if report.Prologue != nil {
		output.Title = report.Prologue.Title
	}

	return nil, output, nil
}

// handleSimilarity handles the similarity tool invocation.
func (s *Server) handleSimilarity(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SimilarityInput,
) (*mcp.CallToolResult, SimilarityOutput, error) {
	score := merger.Similarity(merger.HeaderTitle(input.A), merger.HeaderTitle(input.B))
	return nil, SimilarityOutput{Score: score}, nil
}
