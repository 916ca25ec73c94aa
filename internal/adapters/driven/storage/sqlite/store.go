package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/tweetwatch/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driven"
)

// Ensure the adapters implement the interfaces.
var (
	_ driven.SinkOpener = (*Opener)(nil)
	_ driven.Sink       = (*Store)(nil)
)

// DefaultFileName is the database file created inside the data directory.
const DefaultFileName = "tweets.db"

// Opener creates a Store when the pipeline connects its sink.
type Opener struct {
	path string
}

// NewOpener creates an opener for the database at path.
// If path is empty, defaults to ~/.tweetwatch/data/tweets.db.
func NewOpener(path string) *Opener {
	return &Opener{path: path}
}

// Open creates or migrates the database and starts a new run.
func (o *Opener) Open(ctx context.Context) (driven.Sink, error) {
	s, err := NewStore(ctx, o.path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Store is a SQLite-backed sink.
type Store struct {
	db    *sql.DB
	path  string
	runID string
	now   func() time.Time
}

// NewStore opens the database at path, runs pending migrations and
// registers a new run.
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".tweetwatch", "data", DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:    db,
		path:  path,
		runID: uuid.New().String(),
		now:   time.Now,
	}

	if err := s.migrate(ctx, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		s.runID, s.now().UTC(),
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("registering run: %w", err)
	}

	return s, nil
}

// Name returns the database file path.
func (s *Store) Name() string {
	return s.path
}

// RunID returns the id rows from this process are tagged with.
func (s *Store) RunID() string {
	return s.runID
}

// Append stores the record as the next row.
func (s *Store) Append(ctx context.Context, record domain.TweetRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tweets (run_id, url, handle, created_at, text, received_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.runID, record.URL, record.Handle, record.CreatedAt, record.Text, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting tweet: %w", err)
	}
	return nil
}

// Rows returns every stored row in insertion order.
func (s *Store) Rows(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT url, handle, created_at, text FROM tweets ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying tweets: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var r domain.TweetRecord
		if err := rows.Scan(&r.URL, &r.Handle, &r.CreatedAt, &r.Text); err != nil {
			return nil, fmt.Errorf("scanning tweet: %w", err)
		}
		out = append(out, r.Row())
	}
	return out, rows.Err()
}

// Close marks the run finished and closes the database connection.
func (s *Store) Close() error {
	_, err := s.db.Exec(`UPDATE runs SET ended_at = ? WHERE id = ?`, s.now().UTC(), s.runID)
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}

// migrate runs all pending migrations.
func (s *Store) migrate(ctx context.Context, fsys fs.FS) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
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

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("starting migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}
