package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/glebarez/go-sqlite"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id         TEXT PRIMARY KEY,
    status     TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    snapshot   TEXT NOT NULL
)`

// Open creates (or opens) the cache database at path and ensures the schema.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return db, nil
}

// SQLiteRepository caches full task snapshots between CLI runs. Rows hold
// the JSON-encoded task so replacement is always whole-record.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.TaskRepository = (*SQLiteRepository)(nil)

// NewSQLiteRepository wires a sql.DB implementation.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts the task snapshot.
func (r *SQLiteRepository) Save(ctx context.Context, task domain.Task) error {
	if r.db == nil {
		return nil
	}

	snapshot, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task %s: %w", task.ID, err)
	}

	query, args, err := sq.Insert("tasks").
		Columns("id", "status", "created_at", "snapshot").
		Values(task.ID, string(task.Status), task.CreatedAt, string(snapshot)).
		Suffix(`ON CONFLICT (id) DO UPDATE
                SET status = excluded.status,
                    snapshot = excluded.snapshot`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert task %s: %w", task.ID, err)
	}

	return nil
}

// List returns all cached tasks, newest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Task, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := sq.Select("snapshot").
		From("tasks").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var task domain.Task
		if err := json.Unmarshal([]byte(raw), &task); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return tasks, nil
}

// Delete drops one cached task.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return nil
	}

	query, args, err := sq.Delete("tasks").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	return nil
}
