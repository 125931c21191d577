package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// FileRepository records when data files were first seen
type FileRepository struct {
	db  *DB
	now func() time.Time
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *DB) *FileRepository {
	return &FileRepository{db: db, now: time.Now}
}

// FirstSeen registers the file if it is new and returns its first-seen time.
// A new file is published at its modification time when that is earlier than
// now, so files that predate the registry keep their original order.
func (r *FileRepository) FirstSeen(ctx context.Context, name string, modified time.Time) (time.Time, error) {
	now := r.now()
	firstSeen := now
	if !modified.IsZero() && modified.Before(now) {
		firstSeen = modified
	}

	var stored int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO files (name, first_seen_at, modified_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET modified_at = excluded.modified_at
		RETURNING first_seen_at
	`, name, firstSeen.UnixNano(), modified.UnixNano(), now.UnixNano()).Scan(&stored)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to register file %s: %w", name, err)
	}

	return time.Unix(0, stored).UTC(), nil
}

// GetFile retrieves a file record by name
func (r *FileRepository) GetFile(ctx context.Context, name string) (*File, error) {
	var firstSeen, modified, created int64
	err := r.db.QueryRowContext(ctx, `
		SELECT first_seen_at, modified_at, created_at
		FROM files
		WHERE name = ?
	`, name).Scan(&firstSeen, &modified, &created)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	return &File{
		Name:        name,
		FirstSeenAt: time.Unix(0, firstSeen).UTC(),
		ModifiedAt:  time.Unix(0, modified).UTC(),
		CreatedAt:   time.Unix(0, created).UTC(),
	}, nil
}

// Prune removes records of files that are no longer present
func (r *FileRepository) Prune(ctx context.Context, present []string) (int64, error) {
	query := "DELETE FROM files"
	args := make([]any, 0, len(present))
	if len(present) > 0 {
		query += " WHERE name NOT IN (?" + strings.Repeat(", ?", len(present)-1) + ")"
		for _, name := range present {
			args = append(args, name)
		}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune files: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned files: %w", err)
	}

	return removed, nil
}

// GetFileCount returns the number of registered files
func (r *FileRepository) GetFileCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get file count: %w", err)
	}
	return count, nil
}
