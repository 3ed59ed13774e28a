package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/slidemerge/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driven"
)

// dbFileName is the history database inside the data directory.
const dbFileName = "history.db"

// Store is a SQLite-backed store for merge history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the history database in dataDir.
// If dataDir is empty, defaults to ~/.slidemerge/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".slidemerge", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// WAL lets a watch process and a history listing share the file
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RunStore returns a RunStore backed by this store.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Save records a merge run, replacing any run with the same ID.
func (s *runStore) Save(ctx context.Context, run *domain.MergeRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	outputs, err := json.Marshal(run.Outputs)
	if err != nil {
		return fmt.Errorf("marshalling outputs: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO merge_runs (id, input, outputs, excluded_count, passes, skipped, error, started_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			input = excluded.input,
			outputs = excluded.outputs,
			excluded_count = excluded.excluded_count,
			passes = excluded.passes,
			skipped = excluded.skipped,
			error = excluded.error,
			started_at = excluded.started_at,
			duration_ns = excluded.duration_ns
	`, run.ID, run.Input, string(outputs), run.Excluded, run.Passes, boolToInt(run.Skipped),
		run.Error, run.StartedAt.UnixNano(), run.Duration.Nanoseconds())
	if err != nil {
		return fmt.Errorf("saving merge run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *runStore) Get(ctx context.Context, id string) (*domain.MergeRun, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, input, outputs, excluded_count, passes, skipped, error, started_at, duration_ns
		FROM merge_runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns the most recent runs first.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.MergeRun, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, input, outputs, excluded_count, passes, skipped, error, started_at, duration_ns
		FROM merge_runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying merge runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.MergeRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating merge runs: %w", err)
	}
	return runs, nil
}

// Clear removes every run.
func (s *runStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM merge_runs"); err != nil {
		return fmt.Errorf("clearing merge runs: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.MergeRun, error) {
	var (
		run        domain.MergeRun
		outputs    string
		skipped    int
		startedNS  int64
		durationNS int64
	)
	err := row.Scan(&run.ID, &run.Input, &outputs, &run.Excluded, &run.Passes, &skipped,
		&run.Error, &startedNS, &durationNS)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning merge run: %w", err)
	}

	if outputs != "" && outputs != "null" {
		if err := json.Unmarshal([]byte(outputs), &run.Outputs); err != nil {
			return nil, fmt.Errorf("unmarshalling outputs: %w", err)
		}
	}
	run.Skipped = skipped != 0
	run.StartedAt = time.Unix(0, startedNS)
	run.Duration = time.Duration(durationNS)
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
