package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/zenithtodo/zenith/internal/todo"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS todos (
  id          TEXT PRIMARY KEY,
  text        TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  completed   INTEGER NOT NULL DEFAULT 0,
  priority    TEXT NOT NULL CHECK (priority IN ('High', 'Medium', 'Low')),
  due_date    INTEGER,
  created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at DESC);
`

const sqliteColumns = `id, text, description, completed, priority, due_date, created_at`

// SQLite is a Store backed by a SQLite database file. Timestamps are stored
// as Unix nanoseconds so ordering is exact.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store requires a path")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// A second pooled connection to :memory: would see a different database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

// List implements Store.
func (s *SQLite) List(ctx context.Context) ([]todo.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sqliteColumns+` FROM todos ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	tasks := []todo.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return tasks, nil
}

// Insert implements Store.
func (s *SQLite) Insert(ctx context.Context, t todo.Task) (todo.Task, error) {
	t, err := prepareInsert(t, s.now)
	if err != nil {
		return todo.Task{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO todos (`+sqliteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Text, t.Description, t.Completed, string(t.Priority), nullableNanos(t.DueDate), t.CreatedAt.UnixNano())
	if err != nil {
		return todo.Task{}, fmt.Errorf("failed to insert todo: %w", err)
	}
	return t, nil
}

// Update implements Store. The read and write share a transaction so a
// concurrent delete cannot resurrect the row.
func (s *SQLite) Update(ctx context.Context, id string, p todo.Patch) (todo.Task, error) {
	if !validID(id) {
		return todo.Task{}, ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return todo.Task{}, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	current, err := scanTask(tx.QueryRowContext(ctx, `SELECT `+sqliteColumns+` FROM todos WHERE id = ?`, id))
	if err != nil {
		return todo.Task{}, err
	}

	updated := p.Apply(current)
	_, err = tx.ExecContext(ctx,
		`UPDATE todos SET text = ?, description = ?, completed = ?, priority = ?, due_date = ? WHERE id = ?`,
		updated.Text, updated.Description, updated.Completed, string(updated.Priority), nullableNanos(updated.DueDate), id)
	if err != nil {
		return todo.Task{}, fmt.Errorf("failed to update todo: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return todo.Task{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return updated, nil
}

// Delete implements Store.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping implements Store.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (todo.Task, error) {
	var (
		t         todo.Task
		priority  string
		due       sql.NullInt64
		createdAt int64
	)
	err := row.Scan(&t.ID, &t.Text, &t.Description, &t.Completed, &priority, &due, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return todo.Task{}, ErrNotFound
	}
	if err != nil {
		return todo.Task{}, fmt.Errorf("failed to scan todo: %w", err)
	}
	t.Priority = todo.Priority(priority)
	t.CreatedAt = time.Unix(0, createdAt).UTC()
	if due.Valid {
		d := time.Unix(0, due.Int64).UTC()
		t.DueDate = &d
	}
	return t, nil
}

func nullableNanos(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}
