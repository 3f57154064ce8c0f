package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

const recordSchema = `
CREATE TABLE IF NOT EXISTS vfs_entries (
	path        TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	parent      TEXT NOT NULL,
	content     TEXT,
	type        TEXT NOT NULL,
	size        INTEGER NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL,
	modified_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vfs_entries_parent ON vfs_entries(parent);
CREATE INDEX IF NOT EXISTS idx_vfs_entries_type ON vfs_entries(type);
`

const selectColumns = "SELECT path, name, parent, content, type, size, created_at, modified_at FROM vfs_entries"

// RecordStore persists VFS entries in a single SQLite table.
type RecordStore struct {
	db *sql.DB
}

// NewRecordStore opens the database at dsn. The dsn can be ":memory:" for
// an in-memory database or a file path.
func NewRecordStore(dsn string) (*RecordStore, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	return &RecordStore{db: db}, nil
}

func (*RecordStore) Name() string {
	return "sqlite"
}

// Open verifies the connection and creates the schema.
func (s *RecordStore) Open(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, recordSchema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

func (s *RecordStore) Close(ctx context.Context) error {
	return s.db.Close()
}

func (s *RecordStore) Put(ctx context.Context, entry *types.Entry) error {
	var content sql.NullString
	if entry.Content != nil {
		content = sql.NullString{String: *entry.Content, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vfs_entries (path, name, parent, content, type, size, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			parent = excluded.parent,
			content = excluded.content,
			type = excluded.type,
			size = excluded.size,
			created_at = excluded.created_at,
			modified_at = excluded.modified_at`,
		entry.Path, entry.Name, entry.Parent, content, entry.Type, entry.Size,
		entry.CreatedAt.UnixNano(), entry.ModifiedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", entry.Path, err)
	}
	return nil
}

func (s *RecordStore) Get(ctx context.Context, path string) (*types.Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE path = ?", path)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}
	return entry, nil
}

func (s *RecordStore) Delete(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM vfs_entries WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

func (s *RecordStore) ListByParent(ctx context.Context, parent string) ([]*types.Entry, error) {
	return s.query(ctx, selectColumns+" WHERE parent = ?", parent)
}

func (s *RecordStore) ListByType(ctx context.Context, typ string) ([]*types.Entry, error) {
	return s.query(ctx, selectColumns+" WHERE type = ?", typ)
}

func (s *RecordStore) Paths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path FROM vfs_entries ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to list paths: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

func (s *RecordStore) query(ctx context.Context, query string, args ...any) ([]*types.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []*types.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*types.Entry, error) {
	var (
		entry             types.Entry
		content           sql.NullString
		created, modified int64
	)
	if err := row.Scan(&entry.Path, &entry.Name, &entry.Parent, &content, &entry.Type, &entry.Size, &created, &modified); err != nil {
		return nil, err
	}
	if content.Valid {
		text := content.String
		entry.Content = &text
	}
	entry.CreatedAt = time.Unix(0, created)
	entry.ModifiedAt = time.Unix(0, modified)
	return &entry, nil
}
