package mcp

import (
	"context"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// mockMergeService is a mock implementation of driving.MergeService.
type mockMergeService struct {
	result *domain.MergeResult
	batch  *domain.BatchResult
	err    error
	input  string
	output string
}

func (m *mockMergeService) MergeFile(_ context.Context, input, output string) (*domain.MergeResult, error) {
	m.input, m.output = input, output
	return m.result, m.err
}

func (m *mockMergeService) MergeFolder(_ context.Context, _ string) (*domain.BatchResult, error) {
	return m.batch, m.err
}

func (m *mockMergeService) IsSource(_ string) bool {
	return true
}

// mockInspectService is a mock implementation of driving.InspectService.
type mockInspectService struct {
	report *domain.Inspection
	nav    []domain.NavEntry
	err    error
}

func (m *mockInspectService) Inspect(_ context.Context, _ string) (*domain.Inspection, error) {
	return m.report, m.err
}

func (m *mockInspectService) Nav(_ context.Context, _ string) ([]domain.NavEntry, error) {
	return m.nav, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs []domain.MergeRun
	err  error
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.MergeRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && len(m.runs) > limit {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.MergeRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	return m.err
}
