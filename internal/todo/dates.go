package todo

import "time"

// DueFormat is the layout used for due-date badges.
const DueFormat = "Jan 2"

// HeaderFormat is the layout used for the date under the view title.
const HeaderFormat = "Monday, January 2"

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether due falls on the same calendar day as today.
// An unscheduled task is never due today.
func IsToday(due *time.Time, today time.Time) bool {
	if due == nil {
		return false
	}
	return SameDay(*due, today)
}

// IsUpcoming reports whether due is strictly after the end of today.
func IsUpcoming(due *time.Time, today time.Time) bool {
	if due == nil {
		return false
	}
	return due.After(EndOfDay(today))
}

// IsOverdue reports whether an open task was due before today.
func IsOverdue(t Task, today time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return t.DueDate.Before(StartOfDay(today))
}

// FormatDue renders a due date as a short badge, or "" when unscheduled.
func FormatDue(due *time.Time) string {
	if due == nil {
		return ""
	}
	return due.Local().Format(DueFormat)
}
