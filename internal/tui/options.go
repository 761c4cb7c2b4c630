package tui

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zenithtodo/zenith/internal/board"
	"github.com/zenithtodo/zenith/internal/focus"
	"github.com/zenithtodo/zenith/internal/todo"
)

// Options configures TUI startup behavior.
type Options struct {
	Repo   board.Repository
	Themes board.ThemeStore
	// DefaultPriority seeds the add form.
	DefaultPriority todo.Priority
	// FocusMinutes is the initial focus session length.
	FocusMinutes int
	Logger       logrus.FieldLogger
	// Scheduler drives focus ticks. Nil uses focus.TickerScheduler.
	Scheduler focus.Scheduler
	Now       func() time.Time
}
