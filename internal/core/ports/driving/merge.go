package driving

import (
	"context"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// MergeService merges slide decks into their Site, Document and Slide variants.
type MergeService interface {
	// MergeFile merges a single file. A non-empty output overrides the Site variant path.
	// Ignored pages return a skipped result and no error.
	MergeFile(ctx context.Context, input, output string) (*domain.MergeResult, error)

	// MergeFolder merges every source deck under folder.
	// A failing file does not stop the batch; check BatchResult.OK.
	MergeFolder(ctx context.Context, folder string) (*domain.BatchResult, error)

	// IsSource reports whether path is a deck the merge should process:
	// a Markdown file that is neither a generated variant nor an ignored page.
	IsSource(path string) bool
}

// InspectService reports what a merge would do without writing files.
type InspectService interface {
	// Inspect classifies and deduplicates a file in memory.
	Inspect(ctx context.Context, path string) (*domain.Inspection, error)

	// Nav lists the merged Site pages under folder with their titles.
	Nav(ctx context.Context, folder string) ([]domain.NavEntry, error)
}
