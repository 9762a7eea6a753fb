package reminder

import (
	"strings"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/timeutil"
)

// ClearExpiredSnooze re-arms a snoozed task once its snooze window has
// passed, clearing the window and both fired latches so the next evaluation
// can fire again. An unparseable snooze value re-arms the same way. It
// reports whether the task changed and whether the stored value was
// malformed.
func ClearExpiredSnooze(t *model.Task, now time.Time) (cleared bool, malformed bool) {
	if strings.TrimSpace(t.SnoozeUntil) == "" {
		return false, false
	}
	snooze, ok := t.SnoozeTime()
	if ok && snooze.After(now) {
		return false, false
	}
	t.SnoozeUntil = ""
	t.NotifiedForReminder = false
	t.NotifiedForDue = false
	return true, !ok
}

// MarkReminderFired latches the advance reminder after it was presented.
func MarkReminderFired(t *model.Task, now time.Time) {
	t.NotifiedForReminder = true
	t.LastNotifiedAt = timeutil.Format(now)
}

// MarkDueFired latches the due notification. The reminder latch is set as
// well: a task cannot still be awaiting its pre-due reminder once the due
// moment has passed.
func MarkDueFired(t *model.Task, now time.Time) {
	t.NotifiedForDue = true
	t.NotifiedForReminder = true
	t.LastNotifiedAt = timeutil.Format(now)
}

// ApplySnooze grants a snooze window until the given instant and clears
// both latches so evaluation can fire again after expiry.
func ApplySnooze(t *model.Task, until time.Time) {
	t.SnoozeUntil = timeutil.Format(until)
	t.NotifiedForReminder = false
	t.NotifiedForDue = false
}
