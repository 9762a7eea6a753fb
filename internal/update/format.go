package update

import (
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/timeutil"
)

// statusLabel renders the remaining-time column for one list row.
func statusLabel(t model.Task, now time.Time) string {
	if t.Completed {
		return "done"
	}
	if snooze, ok := t.SnoozeTime(); ok && snooze.After(now) {
		return "snoozed " + timeutil.FormatRemaining(snooze.Sub(now))
	}
	if !t.HasDueDate() {
		return "no due date"
	}
	due, ok := t.DueTime()
	if !ok {
		return "bad due date!"
	}
	if !due.After(now) {
		return "overdue " + timeutil.FormatRemaining(now.Sub(due))
	}
	return "due in " + timeutil.FormatRemaining(due.Sub(now))
}

// dueColumn shows the due instant in the local wall clock, or nothing.
func dueColumn(t model.Task) string {
	due, ok := t.DueTime()
	if !ok {
		if t.HasDueDate() {
			return t.DueDate
		}
		return ""
	}
	return due.In(time.Local).Format("2006-01-02 15:04")
}
