package driven

import (
	"context"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// RunStore persists merge history.
type RunStore interface {
	// Save records a merge run.
	Save(ctx context.Context, run *domain.MergeRun) error

	// Get retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	Get(ctx context.Context, id string) (*domain.MergeRun, error)

	// List returns the most recent runs first, at most limit entries.
	// A non-positive limit returns every run.
	List(ctx context.Context, limit int) ([]domain.MergeRun, error)

	// Clear removes every run.
	Clear(ctx context.Context) error
}
