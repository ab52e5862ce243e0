package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"TootBot/internal/domain"
	"TootBot/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS posted_entries (
	day        TEXT    NOT NULL,
	kind       TEXT    NOT NULL,
	item       INTEGER NOT NULL,
	status_id  TEXT    NOT NULL,
	url        TEXT    NOT NULL DEFAULT '',
	posted_at  INTEGER NOT NULL,
	PRIMARY KEY (day, kind, item)
)`

// SQLiteRepository persists published posts into a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.PostRepository = (*SQLiteRepository)(nil)

// OpenSQLite opens (and migrates) the history database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return NewSQLiteRepository(db), nil
}

// NewSQLiteRepository wires a sql.DB implementation.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// AlreadyPosted reports whether the item of kind was published on day.
func (r *SQLiteRepository) AlreadyPosted(ctx context.Context, day, kind string, item int) (bool, error) {
	if r.db == nil {
		return false, nil
	}

	query, args, err := sq.Select("COUNT(*)").
		From("posted_entries").
		Where(sq.Eq{"day": day, "kind": kind, "item": item}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("query posted: %w", err)
	}
	return count > 0, nil
}

// SavePosted records a published post.
func (r *SQLiteRepository) SavePosted(ctx context.Context, record domain.PostedRecord) error {
	if r.db == nil {
		return nil
	}

	postedAt := record.PostedAt
	if postedAt.IsZero() {
		postedAt = time.Now()
	}

	query, args, err := sq.Insert("posted_entries").
		Columns("day", "kind", "item", "status_id", "url", "posted_at").
		Values(record.Day, record.Kind, record.Item, record.StatusID, record.URL, postedAt.Unix()).
		Suffix("ON CONFLICT (day, kind, item) DO UPDATE SET status_id = excluded.status_id, url = excluded.url, posted_at = excluded.posted_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert posted: %w", err)
	}
	return nil
}

// History lists the records of day ordered by item.
func (r *SQLiteRepository) History(ctx context.Context, day string) ([]domain.PostedRecord, error) {
	query, args, err := sq.Select("day", "kind", "item", "status_id", "url", "posted_at").
		From("posted_entries").
		Where(sq.Eq{"day": day}).
		OrderBy("kind", "item").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	var result []domain.PostedRecord
	for rows.Next() {
		var (
			rec      domain.PostedRecord
			postedAt int64
		)
		if err := rows.Scan(&rec.Day, &rec.Kind, &rec.Item, &rec.StatusID, &rec.URL, &postedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.PostedAt = time.Unix(postedAt, 0)
		result = append(result, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
