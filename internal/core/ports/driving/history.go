package driving

import (
	"context"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// HistoryService exposes recorded merge runs.
type HistoryService interface {
	// List returns the most recent runs first.
	List(ctx context.Context, limit int) ([]domain.MergeRun, error)

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*domain.MergeRun, error)

	// Clear removes every recorded run.
	Clear(ctx context.Context) error
}
