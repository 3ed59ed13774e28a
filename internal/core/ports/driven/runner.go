package driven

import (
	"context"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// CommandRunner runs external binaries such as marp, pandoc, mkdocs and drawio.
type CommandRunner interface {
	// Run executes the command.
	// With Wait set it blocks, returns captured stdout and reports a non-zero
	// exit as an error wrapping domain.ErrExternalTool.
	// Without Wait it returns as soon as the process has started.
	Run(ctx context.Context, cmd domain.Command) (string, error)
}
