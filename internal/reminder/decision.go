package reminder

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

type Outcome int

const (
	// OutcomeNoDueDate means the task has no due date and can never fire.
	OutcomeNoDueDate Outcome = iota
	// OutcomeMalformed means a due date is present but does not parse. The
	// caller must not touch latch state on this outcome.
	OutcomeMalformed
	// OutcomeSuppressed means an active snooze window blocks any firing.
	OutcomeSuppressed
	// OutcomeEvaluated means the timing checks ran; the Reminder and Due
	// flags say what, if anything, should fire.
	OutcomeEvaluated
)

// Decision is the result of evaluating one task at one instant.
type Decision struct {
	Outcome    Outcome
	Reminder   bool
	Due        bool
	DueAt      time.Time
	ReminderAt time.Time
	Reason     string
}

// Fires reports whether anything should be shown for this decision.
func (d Decision) Fires() bool {
	return d.Reminder || d.Due
}

// Evaluate decides whether a reminder or a due notification must fire for
// the task at now. It is pure: it never mutates the task and performs no
// I/O, so calling it twice at the same instant yields the same decision.
func Evaluate(t model.Task, now time.Time) Decision {
	if !t.HasDueDate() {
		return Decision{Outcome: OutcomeNoDueDate}
	}

	due, ok := t.DueTime()
	if !ok {
		return Decision{
			Outcome: OutcomeMalformed,
			Reason:  fmt.Sprintf("task %d has an invalid due date: %q", t.ID, t.DueDate),
		}
	}

	if snooze, ok := t.SnoozeTime(); ok && snooze.After(now) {
		return Decision{Outcome: OutcomeSuppressed, DueAt: due}
	}

	d := Decision{Outcome: OutcomeEvaluated, DueAt: due}

	if t.ReminderOffset >= 0 && !t.Completed && !t.NotifiedForReminder {
		reminderAt := due.Add(-time.Duration(t.ReminderOffset) * time.Second)
		d.ReminderAt = reminderAt
		// The upper bound keeps a pre-due reminder from firing after the
		// due moment itself; that case becomes a due notification.
		if !reminderAt.After(now) && now.Before(due) {
			d.Reminder = true
		}
	}

	if !due.After(now) && !t.Completed && !t.NotifiedForDue {
		d.Due = true
		// A due firing subsumes a still-armed reminder: the task cannot be
		// awaiting its pre-due reminder once the due moment has passed, so
		// the reminder fires (and latches) in the same transition.
		if t.ReminderOffset >= 0 && !t.NotifiedForReminder {
			d.Reminder = true
		}
	}

	return d
}
