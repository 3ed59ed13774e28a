package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

func TestServer_handleMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("returns merge result", func(t *testing.T) {
		mockMerge := &mockMergeService{
			result: &domain.MergeResult{
				Input: "deck.md",
				Outputs: map[domain.Variant]string{
					domain.VariantSite:  "custom.md",
					domain.VariantSlide: "slide_deck.md",
				},
				Excluded: []int{3, 4},
				Passes:   2,
				Warnings: []error{errors.New("line 7: malformed image link")},
			},
		}

		server, err := NewServer(&Ports{Merge: mockMerge}, "test")
		require.NoError(t, err)

		_, output, err := server.handleMerge(ctx, nil, MergeInput{Path: "deck.md", Output: "custom.md"})

		require.NoError(t, err)
		assert.Equal(t, "deck.md", mockMerge.input)
		assert.Equal(t, "custom.md", mockMerge.output)
		assert.False(t, output.Skipped)
		assert.Equal(t, 2, output.Excluded)
		assert.Equal(t, 2, output.Passes)
		assert.Equal(t, "custom.md", output.Outputs["site"])
		assert.Equal(t, "slide_deck.md", output.Outputs["slide"])
		assert.Equal(t, []string{"line 7: malformed image link"}, output.Warnings)
	})

	t.Run("skipped page has no outputs", func(t *testing.T) {
		mockMerge := &mockMergeService{result: &domain.MergeResult{Input: "index.md", Skipped: true}}
		server, err := NewServer(&Ports{Merge: mockMerge}, "test")
		require.NoError(t, err)

		_, output, err := server.handleMerge(ctx, nil, MergeInput{Path: "index.md"})

		require.NoError(t, err)
		assert.True(t, output.Skipped)
		assert.Nil(t, output.Outputs)
	})

	t.Run("returns error on merge failure", func(t *testing.T) {
		mockMerge := &mockMergeService{err: domain.ErrInputNotFound}
		server, err := NewServer(&Ports{Merge: mockMerge}, "test")
		require.NoError(t, err)

		_, _, err = server.handleMerge(ctx, nil, MergeInput{Path: "missing.md"})

		assert.ErrorIs(t, err, domain.ErrInputNotFound)
	})
}

func TestServer_handleInspect(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report", func(t *testing.T) {
		mockInspect := &mockInspectService{
			report: &domain.Inspection{
				Path:   "deck.md",
				Lines:  5,
				Counts: map[domain.LineKind]int{domain.LineHeader: 2, domain.LineSeparator: 3},
				Excluded: []domain.ExcludedLine{
					{Index: 3, Kind: domain.LineSeparator, Text: "---"},
					{Index: 4, Kind: domain.LineHeader, Text: "# Intro"},
				},
				Passes:   2,
				Prologue: &domain.Prologue{Title: "Intro"},
				Outline:  []domain.Heading{{Level: 1, Title: "Intro"}},
			},
		}
		server, err := NewServer(&Ports{Merge: &mockMergeService{}, Inspect: mockInspect}, "test")
		require.NoError(t, err)

		_, output, err := server.handleInspect(ctx, nil, InspectInput{Path: "deck.md"})

		require.NoError(t, err)
		assert.Equal(t, 5, output.Lines)
		assert.Equal(t, 2, output.Counts["header"])
		assert.Equal(t, 3, output.Counts["separator"])
		require.Len(t, output.Excluded, 2)
		assert.Equal(t, ExcludedOutput{Line: 4, Kind: "separator", Text: "---"}, output.Excluded[0])
		assert.Equal(t, "Intro", output.Title)
		assert.Len(t, output.Outline, 1)
	})

	t.Run("nil inspect service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Merge: &mockMergeService{}}, "test")
		require.NoError(t, err)

		_, _, err = server.handleInspect(ctx, nil, InspectInput{Path: "deck.md"})

		assert.ErrorIs(t, err, errInspectUnavailable)
	})

	t.Run("returns error on inspect failure", func(t *testing.T) {
		mockInspect := &mockInspectService{err: errors.New("read failed")}
		server, err := NewServer(&Ports{Merge: &mockMergeService{}, Inspect: mockInspect}, "test")
		require.NoError(t, err)

		_, _, err = server.handleInspect(ctx, nil, InspectInput{Path: "deck.md"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "read failed")
	})
}

func TestServer_handleSimilarity(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Merge: &mockMergeService{}}, "test")
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "Intro", "Intro", 1, 1},
		{"disambiguated headers", "# Networks (1)", "# Networks (2)", 1, 1},
		{"case and markers ignored", "## OSI Model", "osi model", 1, 1},
		{"disjoint", "abc", "xyz", 0, 0},
		{"partial overlap", "Layers", "Players", 0.5, 0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleSimilarity(ctx, nil, SimilarityInput{A: tt.a, B: tt.b})

			require.NoError(t, err)
			assert.GreaterOrEqual(t, output.Score, tt.min)
			assert.LessOrEqual(t, output.Score, tt.max)
		})
	}
}
