// Package sqlite provides the durable DocumentStore backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
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

	"github.com/docstash/docstash/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is a SQLite-backed implementation of driven.DocumentStore.
// SQLite serializes writes, which gives the per-key write ordering the
// store contract requires.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docstash/data/documents.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docstash", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "documents.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// Put stores or overwrites a document.
func (s *Store) Put(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	highlightsJSON, err := marshalHighlights(doc.Highlights)
	if err != nil {
		return fmt.Errorf("marshalling highlights: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, file_name, text, highlights, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			file_name = excluded.file_name,
			text = excluded.text,
			highlights = excluded.highlights,
			created_at = excluded.created_at
	`, doc.ID, doc.FileName, doc.Text, highlightsJSON, doc.CreatedAt.UTC())

	if err != nil {
		return &domain.StoreError{Op: "put", Cause: err}
	}
	return nil
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_name, text, highlights, created_at
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	var highlightsJSON string
	var createdAt sql.NullTime
	if err := row.Scan(&doc.ID, &doc.FileName, &doc.Text, &highlightsJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StoreError{Op: "get", Cause: err}
	}

	if err := json.Unmarshal([]byte(highlightsJSON), &doc.Highlights); err != nil {
		return nil, fmt.Errorf("unmarshalling highlights: %w", err)
	}
	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}

	return &doc, nil
}

// ReplaceHighlights replaces the highlights of an existing document,
// leaving every other column untouched.
func (s *Store) ReplaceHighlights(ctx context.Context, id string, highlights []domain.Highlight) error {
	highlightsJSON, err := marshalHighlights(highlights)
	if err != nil {
		return fmt.Errorf("marshalling highlights: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET highlights = ? WHERE id = ?", highlightsJSON, id)
	if err != nil {
		return &domain.StoreError{Op: "replace highlights", Cause: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.StoreError{Op: "replace highlights", Cause: err}
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// marshalHighlights serializes highlights as a JSON array.
// Nil highlights become an empty array, never JSON null.
func marshalHighlights(highlights []domain.Highlight) (string, error) {
	if highlights == nil {
		highlights = []domain.Highlight{}
	}
	data, err := json.Marshal(highlights)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			version, time.Now().UTC()); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
