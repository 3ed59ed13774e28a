package services

import (
	"context"
	"os"
	"path/filepath"
	stdsync "sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/merger"
)

// mockRunner implements driven.CommandRunner for testing.
type mockRunner struct {
	mu       stdsync.Mutex
	commands []domain.Command
	output   string
	// fail returns an error for a command, or nil to let it succeed.
	fail func(cmd domain.Command) error
	// onRun is called for every successful command.
	onRun func(cmd domain.Command)
}

func (m *mockRunner) Run(_ context.Context, cmd domain.Command) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		if err := m.fail(cmd); err != nil {
			return "", err
		}
	}
	m.commands = append(m.commands, cmd)
	if m.onRun != nil {
		m.onRun(cmd)
	}
	return m.output, nil
}

func (m *mockRunner) Commands() []domain.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Command(nil), m.commands...)
}

// mockRunStore implements driven.RunStore for testing.
type mockRunStore struct {
	mu      stdsync.Mutex
	runs    []domain.MergeRun
	saveErr error
}

func (m *mockRunStore) Save(_ context.Context, run *domain.MergeRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append(m.runs, *run)
	return nil
}

func (m *mockRunStore) Get(_ context.Context, id string) (*domain.MergeRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.runs {
		if m.runs[i].ID == id {
			run := m.runs[i]
			return &run, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRunStore) List(_ context.Context, limit int) ([]domain.MergeRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := append([]domain.MergeRun(nil), m.runs...)
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *mockRunStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = nil
	return nil
}

// writeFile creates a file under dir, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// readLines returns the lines of a merged output file.
func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return merger.SplitLines(string(data))
}
