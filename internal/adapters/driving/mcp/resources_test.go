package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

func TestExtractRunID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid run URI",
			uri:      "slidemerge://history/run-123",
			expected: "run-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://history/run-123",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "slidemerge://history/run-123/outputs",
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
			result := extractRunID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func sampleRuns() []domain.MergeRun {
	return []domain.MergeRun{
		{
			ID:        "run-1",
			Input:     "/course/week1.md",
			Outputs:   map[domain.Variant]string{domain.VariantSite: "/course/site_week1.md"},
			Excluded:  4,
			Passes:    2,
			StartedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "run-2",
			Input:     "/course/missing.md",
			Error:     "input not found",
			StartedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestServer_handleHistoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil history service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Merge: &mockMergeService{}}, "test")
		require.NoError(t, err)

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("slidemerge://history"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns runs", func(t *testing.T) {
		ports := &Ports{Merge: &mockMergeService{}, History: &mockHistoryService{runs: sampleRuns()}}
		server, err := NewServer(ports, "test")
		require.NoError(t, err)

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("slidemerge://history"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Contains(t, text, "run-1")
		assert.Contains(t, text, "/course/site_week1.md")
		assert.Contains(t, text, `"site"`)
		assert.Contains(t, text, "2026-03-01T10:00:00Z")
		assert.Contains(t, text, "input not found")
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		ports := &Ports{Merge: &mockMergeService{}, History: &mockHistoryService{err: errors.New("database error")}}
		server, err := NewServer(ports, "test")
		require.NoError(t, err)

		_, err = server.handleHistoryResource(ctx, makeReadResourceRequest("slidemerge://history"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing history")
	})
}

func TestServer_handleRunResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil history service returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Merge: &mockMergeService{}}, "test")
		require.NoError(t, err)

		_, err = server.handleRunResource(ctx, makeReadResourceRequest("slidemerge://history/run-1"))

		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		ports := &Ports{Merge: &mockMergeService{}, History: &mockHistoryService{runs: sampleRuns()}}
		server, err := NewServer(ports, "test")
		require.NoError(t, err)

		_, err = server.handleRunResource(ctx, makeReadResourceRequest("slidemerge://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("unknown run returns not found", func(t *testing.T) {
		ports := &Ports{Merge: &mockMergeService{}, History: &mockHistoryService{runs: sampleRuns()}}
		server, err := NewServer(ports, "test")
		require.NoError(t, err)

		_, err = server.handleRunResource(ctx, makeReadResourceRequest("slidemerge://history/nope"))

		require.Error(t, err)
	})

	t.Run("returns run", func(t *testing.T) {
		ports := &Ports{Merge: &mockMergeService{}, History: &mockHistoryService{runs: sampleRuns()}}
		server, err := NewServer(ports, "test")
		require.NoError(t, err)

		result, err := server.handleRunResource(ctx, makeReadResourceRequest("slidemerge://history/run-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "/course/week1.md")
		assert.Contains(t, result.Contents[0].Text, `"excluded": 4`)
	})

	t.Run("returns error on get failure", func(t *testing.T) {
		ports := &Ports{Merge: &mockMergeService{}, History: &mockHistoryService{err: errors.New("storage error")}}
		server, err := NewServer(ports, "test")
		require.NoError(t, err)

		_, err = server.handleRunResource(ctx, makeReadResourceRequest("slidemerge://history/run-1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting run")
	})
}
