package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/remindd/internal/timeutil"
)

var ErrInvalidPriority = errors.New("model: invalid task priority")

// NoReminder disables the advance reminder; 0 reminds exactly at the due
// time and a positive value reminds that many seconds before it.
const NoReminder = -1

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting. Unrecognized stored values rank after
// the known ones and are otherwise preserved verbatim.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Task is the canonical record for one tracked item. Timestamp fields hold
// the raw ISO-8601 text from storage; an empty string means absent. Keeping
// the raw text lets callers distinguish an absent value from a malformed one
// when reporting errors.
type Task struct {
	ID                  int64    `json:"id"`
	Text                string   `json:"text"`
	Priority            Priority `json:"priority"`
	DueDate             string   `json:"dueDate"`
	ReminderOffset      int      `json:"reminderOffset"`
	Completed           bool     `json:"completed"`
	CreatedAt           string   `json:"createdAt"`
	SnoozeUntil         string   `json:"snoozeUntil"`
	NotifiedForReminder bool     `json:"notifiedForReminder"`
	NotifiedForDue      bool     `json:"notifiedForDue"`
	LastNotifiedAt      string   `json:"lastNotifiedAt"`
}

// Validate applies creation-time rules only. Records already in storage are
// never re-validated; display falls back gracefully instead.
func (t Task) Validate() error {
	if t.ID <= 0 {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if _, ok := timeutil.Parse(t.CreatedAt); !ok {
		return errors.New("model: task createdAt is required")
	}
	return nil
}

func (t Task) HasDueDate() bool {
	return strings.TrimSpace(t.DueDate) != ""
}

func (t Task) DueTime() (time.Time, bool) {
	return timeutil.Parse(t.DueDate)
}

func (t Task) SnoozeTime() (time.Time, bool) {
	return timeutil.Parse(t.SnoozeUntil)
}

func (t Task) CreatedTime() (time.Time, bool) {
	return timeutil.Parse(t.CreatedAt)
}

// Normalize keeps the reminder configuration consistent with the due date:
// without a due date there is nothing to remind about, so the offset, the
// snooze window and both fired latches are forced back to their inert state.
func (t *Task) Normalize() {
	if t.HasDueDate() {
		return
	}
	t.ReminderOffset = NoReminder
	t.SnoozeUntil = ""
	t.NotifiedForReminder = false
	t.NotifiedForDue = false
}

// MarkCompleted forces both latches and clears any snooze; a completed task
// never notifies.
func (t *Task) MarkCompleted() {
	t.Completed = true
	t.SnoozeUntil = ""
	t.NotifiedForReminder = true
	t.NotifiedForDue = true
}

// MarkIncomplete re-arms the task against its unchanged due date.
func (t *Task) MarkIncomplete() {
	t.Completed = false
	t.NotifiedForReminder = false
	t.NotifiedForDue = false
	t.LastNotifiedAt = ""
}

// ResetNotificationState clears the snooze window, both latches and the
// last-notified marker. Edits call this because a changed due date or offset
// starts a new due cycle.
func (t *Task) ResetNotificationState() {
	t.SnoozeUntil = ""
	t.NotifiedForReminder = false
	t.NotifiedForDue = false
	t.LastNotifiedAt = ""
}
