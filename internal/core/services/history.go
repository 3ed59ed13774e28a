package services

import (
	"context"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driven"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads and clears recorded merge runs.
type HistoryService struct {
	runs driven.RunStore
}

// NewHistoryService creates a history service.
func NewHistoryService(runs driven.RunStore) *HistoryService {
	return &HistoryService{runs: runs}
}

// List returns up to limit runs, newest first. A non-positive limit returns all runs.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.MergeRun, error) {
	return s.runs.List(ctx, limit)
}

// Get returns a run by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.MergeRun, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.runs.Get(ctx, id)
}

// Clear removes all recorded runs.
func (s *HistoryService) Clear(ctx context.Context) error {
	return s.runs.Clear(ctx)
}
