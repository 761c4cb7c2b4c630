// Package store persists tasks. Backends are selected by connection string.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zenithtodo/zenith/internal/todo"
)

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("todo not found")

// Store is a persistent collection of tasks addressed by id.
type Store interface {
	// List returns every task, newest created first.
	List(ctx context.Context) ([]todo.Task, error)
	// Insert stores a new task. The store assigns the id and, when unset,
	// the creation time. The task must carry a valid priority.
	Insert(ctx context.Context, t todo.Task) (todo.Task, error)
	// Update merges p onto the stored task and returns the result.
	Update(ctx context.Context, id string, p todo.Patch) (todo.Task, error)
	// Delete removes a task permanently.
	Delete(ctx context.Context, id string) error
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the backend named by uri and verifies it is reachable.
//
// Supported forms:
//
//	memory://
//	sqlite://path/to/zenith.db  (sqlite://:memory: for a throwaway database)
//	redis://[:password@]host:port/db, rediss://...
func Open(ctx context.Context, uri string) (Store, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return nil, fmt.Errorf("invalid store uri %q: missing scheme", uri)
	}

	var (
		s   Store
		err error
	)
	switch strings.ToLower(scheme) {
	case "memory":
		s = NewMemory()
	case "sqlite", "sqlite3":
		s, err = OpenSQLite(rest)
	case "redis", "rediss":
		s, err = OpenRedis(uri)
	default:
		return nil, fmt.Errorf("unsupported store scheme %q", scheme)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Ping(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to reach store: %w", err)
	}
	return s, nil
}

// prepareInsert assigns the store-owned fields of a new task. The priority
// is the caller's to choose; the store only checks it.
func prepareInsert(t todo.Task, now func() time.Time) (todo.Task, error) {
	if !t.Priority.Valid() {
		return todo.Task{}, fmt.Errorf("%w: %q", todo.ErrInvalidPriority, t.Priority)
	}
	t.ID = uuid.NewString()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now().UTC()
	}
	return t, nil
}

// validID reports whether id could have been issued by prepareInsert.
// Anything else cannot exist in the store.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
