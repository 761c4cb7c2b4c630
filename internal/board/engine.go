// Package board holds the client-side task collection and the state of the
// board around it: the active tab, the search query, the focused task and
// the theme.
package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zenithtodo/zenith/internal/client"
	"github.com/zenithtodo/zenith/internal/prefs"
	"github.com/zenithtodo/zenith/internal/todo"
)

// Repository is the remote task collection. *client.Client satisfies it.
type Repository interface {
	List(ctx context.Context) ([]todo.Task, error)
	Create(ctx context.Context, d todo.Draft) (todo.Task, error)
	Update(ctx context.Context, id string, p todo.Patch) (todo.Task, error)
	Delete(ctx context.Context, id string) error
}

// ThemeStore persists the theme. *prefs.Storage satisfies it.
type ThemeStore interface {
	LoadTheme() (prefs.Theme, error)
	SaveTheme(prefs.Theme) error
}

// Options configures an Engine.
type Options struct {
	// DefaultPriority is applied to drafts that leave priority unset.
	DefaultPriority todo.Priority
	// Themes loads the theme once at construction and saves every change.
	// Nil keeps the theme in memory only.
	Themes ThemeStore
	Logger logrus.FieldLogger
	// Notify is called after every state change, without the lock held.
	Notify func()
	Now    func() time.Time
}

// entry is one task in the collection. pending is an unconfirmed overlay
// painted over the confirmed record while an optimistic write is in flight.
type entry struct {
	task    todo.Task
	pending *todo.Patch
	// seq is the last write issued, applied the last write whose response
	// was taken.
	seq     uint64
	applied uint64
}

func (e *entry) view() todo.Task {
	if e.pending == nil {
		return e.task
	}
	return e.pending.Apply(e.task)
}

// Engine is the single owner of the client-side task collection. It is safe
// for concurrent use; the lock is never held across a remote call.
type Engine struct {
	repo   Repository
	opts   Options
	logger logrus.FieldLogger

	mu      sync.Mutex
	entries []*entry
	tab     Tab
	query   string
	focused string
	theme   prefs.Theme
}

// New creates an engine over repo. The theme is loaded from opts.Themes.
func New(repo Repository, opts Options) (*Engine, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if !opts.DefaultPriority.Valid() {
		return nil, fmt.Errorf("%w: default priority %q", todo.ErrInvalidPriority, opts.DefaultPriority)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	e := &Engine{
		repo:   repo,
		opts:   opts,
		logger: logger.WithField("component", "board"),
		tab:    TabInbox,
		theme:  prefs.ThemeDark,
	}

	if opts.Themes != nil {
		theme, err := opts.Themes.LoadTheme()
		if err != nil {
			e.logger.WithError(err).Warn("Failed to load theme")
		}
		if theme.Valid() {
			e.theme = theme
		}
	}
	return e, nil
}

// DefaultPriority returns the priority applied to new drafts.
func (e *Engine) DefaultPriority() todo.Priority {
	return e.opts.DefaultPriority
}

func (e *Engine) notify() {
	if e.opts.Notify != nil {
		e.opts.Notify()
	}
}

// indexLocked returns the position of id, or -1.
func (e *Engine) indexLocked(id string) int {
	for i, en := range e.entries {
		if en.task.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) dropLocked(id string) {
	if i := e.indexLocked(id); i >= 0 {
		e.entries = append(e.entries[:i], e.entries[i+1:]...)
	}
	if e.focused == id {
		e.focused = ""
	}
}

// Load replaces the collection with the remote one. On failure the current
// collection is kept.
func (e *Engine) Load(ctx context.Context) error {
	tasks, err := e.repo.List(ctx)
	if err != nil {
		e.logger.WithError(err).Error("Error fetching todos")
		return err
	}

	e.mu.Lock()
	e.entries = make([]*entry, 0, len(tasks))
	for _, t := range tasks {
		e.entries = append(e.entries, &entry{task: t})
	}
	if e.focused != "" && e.indexLocked(e.focused) < 0 {
		e.focused = ""
	}
	e.mu.Unlock()

	e.notify()
	return nil
}

// Add creates a task and prepends the stored record. Blank text is rejected
// before any remote call.
func (e *Engine) Add(ctx context.Context, d todo.Draft) (todo.Task, error) {
	d = d.WithDefaults(e.opts.DefaultPriority)
	if err := d.Validate(); err != nil {
		return todo.Task{}, err
	}

	created, err := e.repo.Create(ctx, d)
	if err != nil {
		e.logger.WithError(err).Error("Error adding todo")
		return todo.Task{}, err
	}

	e.mu.Lock()
	e.entries = append([]*entry{{task: created}}, e.entries...)
	e.mu.Unlock()

	e.notify()
	return created, nil
}

// ToggleComplete flips the completed flag of id. The new value is shown
// immediately and reverted if the update fails. Unknown ids are ignored.
func (e *Engine) ToggleComplete(ctx context.Context, id string) error {
	e.mu.Lock()
	i := e.indexLocked(id)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	done := !e.entries[i].view().Completed
	e.mu.Unlock()

	return e.write(ctx, id, todo.CompletedPatch(done), true)
}

// MarkDone completes id through the same optimistic path as ToggleComplete.
func (e *Engine) MarkDone(ctx context.Context, id string) error {
	return e.write(ctx, id, todo.CompletedPatch(true), true)
}

// EditFields sends a partial update and takes the stored record on success.
// Local state is unchanged until the service confirms.
func (e *Engine) EditFields(ctx context.Context, id string, p todo.Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.IsEmpty() {
		return nil
	}
	return e.write(ctx, id, p, false)
}

// write sends p for id. Optimistic writes paint p before the call. A
// response older than one already applied is discarded, so the latest write
// issued wins regardless of arrival order. A not-found response means the
// local record is stale and it is dropped.
func (e *Engine) write(ctx context.Context, id string, p todo.Patch, optimistic bool) error {
	e.mu.Lock()
	i := e.indexLocked(id)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	en := e.entries[i]
	en.seq++
	seq := en.seq
	if optimistic {
		overlay := p
		if en.pending != nil {
			overlay = en.pending.Merge(p)
		}
		en.pending = &overlay
	}
	e.mu.Unlock()

	if optimistic {
		e.notify()
	}

	updated, err := e.repo.Update(ctx, id, p)

	e.mu.Lock()
	if client.IsNotFound(err) {
		e.dropLocked(id)
		e.mu.Unlock()
		e.logger.WithField("id", id).Warn("Todo no longer exists, dropping local copy")
		e.notify()
		return err
	}

	i = e.indexLocked(id)
	if i < 0 {
		e.mu.Unlock()
		return err
	}
	en = e.entries[i]
	latest := seq == en.seq
	switch {
	case err != nil:
		if latest {
			en.pending = nil
		}
	case seq > en.applied:
		en.task = updated
		en.applied = seq
		if latest {
			en.pending = nil
		}
	}
	e.mu.Unlock()

	if err != nil {
		e.logger.WithError(err).WithField("id", id).Error("Error updating todo")
	}
	e.notify()
	return err
}

// Remove deletes id and drops it locally once the service confirms.
func (e *Engine) Remove(ctx context.Context, id string) error {
	err := e.repo.Delete(ctx, id)
	if err != nil && !client.IsNotFound(err) {
		e.logger.WithError(err).WithField("id", id).Error("Error deleting todo")
		return err
	}

	e.mu.Lock()
	e.dropLocked(id)
	e.mu.Unlock()

	e.notify()
	return err
}

// Tasks returns the whole collection as displayed, newest first.
func (e *Engine) Tasks() []todo.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tasksLocked()
}

func (e *Engine) tasksLocked() []todo.Task {
	out := make([]todo.Task, len(e.entries))
	for i, en := range e.entries {
		out[i] = en.view()
	}
	return out
}

// Task looks up id in the collection.
func (e *Engine) Task(id string) (todo.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexLocked(id); i >= 0 {
		return e.entries[i].view(), true
	}
	return todo.Task{}, false
}

// View returns the tasks for the active tab and search query.
func (e *Engine) View() []todo.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DeriveView(e.tasksLocked(), e.tab, e.query, e.opts.Now())
}

// Counts returns the sidebar badge numbers.
func (e *Engine) Counts() Counts {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DeriveCounts(e.tasksLocked(), e.opts.Now())
}

// Title returns the heading for the active tab and query.
func (e *Engine) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Title(e.tab, e.query)
}

// Today returns the engine's reference instant.
func (e *Engine) Today() time.Time {
	return e.opts.Now()
}

func (e *Engine) Tab() Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tab
}

// SetTab switches the active tab.
func (e *Engine) SetTab(tab Tab) {
	e.mu.Lock()
	e.tab = tab
	e.mu.Unlock()
	e.notify()
}

func (e *Engine) Search() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query
}

// SetSearch sets the search query. An empty query restores tab filtering.
func (e *Engine) SetSearch(q string) {
	e.mu.Lock()
	e.query = q
	e.mu.Unlock()
	e.notify()
}

// Focus selects id for a focus session. It reports false for unknown ids.
func (e *Engine) Focus(id string) bool {
	e.mu.Lock()
	ok := e.indexLocked(id) >= 0
	if ok {
		e.focused = id
	}
	e.mu.Unlock()
	if ok {
		e.notify()
	}
	return ok
}

// Unfocus clears the focused task.
func (e *Engine) Unfocus() {
	e.mu.Lock()
	e.focused = ""
	e.mu.Unlock()
	e.notify()
}

// Focused returns the focused task, if any.
func (e *Engine) Focused() (todo.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.focused == "" {
		return todo.Task{}, false
	}
	if i := e.indexLocked(e.focused); i >= 0 {
		return e.entries[i].view(), true
	}
	return todo.Task{}, false
}

func (e *Engine) Theme() prefs.Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme
}

// ToggleTheme flips the theme and saves it. The new theme is kept even if
// saving fails.
func (e *Engine) ToggleTheme() (prefs.Theme, error) {
	e.mu.Lock()
	e.theme = e.theme.Toggle()
	theme := e.theme
	e.mu.Unlock()

	var err error
	if e.opts.Themes != nil {
		if err = e.opts.Themes.SaveTheme(theme); err != nil {
			e.logger.WithError(err).Warn("Failed to save theme")
		}
	}
	e.notify()
	return theme, err
}
