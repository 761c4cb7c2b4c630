// Package msgs defines shared message types passed between TUI views and
// the root model.
package msgs

import (
	"github.com/zenithtodo/zenith/internal/board"
	"github.com/zenithtodo/zenith/internal/todo"
)

// View transition messages

// GoToBoardMsg closes any overlay and returns to the board.
type GoToBoardMsg struct{}

// OpenAddMsg expands the add form.
type OpenAddMsg struct{}

// OpenEditMsg starts editing a task in place.
type OpenEditMsg struct {
	Task todo.Task
}

// OpenFocusMsg opens the focus overlay for a task.
type OpenFocusMsg struct {
	TaskID string
}

// Intents dispatched to the board engine

// AddTaskMsg asks for a new task.
type AddTaskMsg struct {
	Draft todo.Draft
}

// ToggleTaskMsg flips a task's completed flag.
type ToggleTaskMsg struct {
	ID string
}

// EditTaskMsg applies a partial update.
type EditTaskMsg struct {
	ID    string
	Patch todo.Patch
}

// DeleteTaskMsg removes a task.
type DeleteTaskMsg struct {
	ID string
}

// CompleteFocusMsg marks the focused task done and closes the overlay.
type CompleteFocusMsg struct {
	TaskID string
}

// SetTabMsg switches the active tab.
type SetTabMsg struct {
	Tab board.Tab
}

// SetSearchMsg updates the search query.
type SetSearchMsg struct {
	Query string
}

// ToggleThemeMsg flips between the light and dark theme.
type ToggleThemeMsg struct{}

// ReloadMsg refetches the collection.
type ReloadMsg struct{}

// Results and notifications

// ChangedMsg is delivered whenever the engine or focus session changed.
type ChangedMsg struct{}

// LoadedMsg reports the end of a collection fetch.
type LoadedMsg struct {
	Err error
}

// OpDoneMsg reports the end of a remote write.
type OpDoneMsg struct {
	Op  string
	Err error
}
