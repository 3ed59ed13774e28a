package driving

import (
	"context"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// BuildService renders merged variants with external tools.
type BuildService interface {
	// Build renders a file, or every Markdown file under a folder.
	// It returns the commands launched.
	Build(ctx context.Context, path string) ([]domain.Command, error)
}

// CleanService removes rendered artifacts.
type CleanService interface {
	// Clean removes the artifacts derived from a file, or every Markdown file under a folder.
	// With merged set the variant files of source decks are removed too.
	Clean(ctx context.Context, path string, merged bool) (*domain.CleanResult, error)
}

// DeployService publishes the generated site.
type DeployService interface {
	// Deploy runs the site deployment in folder.
	Deploy(ctx context.Context, folder string, wait bool) (string, error)
}

// DiagramService exports draw.io diagrams to images.
type DiagramService interface {
	// Export renders every page of every .drawio file under folder.
	// It returns the written image paths.
	Export(ctx context.Context, folder string) ([]string, error)
}

// WatchService re-merges decks when they change.
type WatchService interface {
	// Watch blocks until ctx is cancelled. onMerge is called after every merge attempt.
	Watch(ctx context.Context, folder string, onMerge func(*domain.MergeResult, error)) error
}
