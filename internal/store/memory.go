package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zenithtodo/zenith/internal/todo"
)

type memoryEntry struct {
	task todo.Task
	seq  uint64
}

// Memory is a process-local Store, used for tests and throwaway servers.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	seq     uint64
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// List implements Store.
func (m *Memory) List(ctx context.Context) ([]todo.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]memoryEntry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	tasks := make([]todo.Task, len(entries))
	for i, e := range entries {
		tasks[i] = e.task
	}
	return tasks, nil
}

// Insert implements Store.
func (m *Memory) Insert(ctx context.Context, t todo.Task) (todo.Task, error) {
	t, err := prepareInsert(t, m.now)
	if err != nil {
		return todo.Task{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.entries[t.ID] = memoryEntry{task: t, seq: m.seq}
	return t, nil
}

// Update implements Store.
func (m *Memory) Update(ctx context.Context, id string, p todo.Patch) (todo.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return todo.Task{}, ErrNotFound
	}
	e.task = p.Apply(e.task)
	m.entries[id] = e
	return e.task, nil
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

// Ping implements Store.
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
