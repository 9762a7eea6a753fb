package model

import (
	"errors"
	"testing"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:        1707480000000,
		Text:      "File the quarterly report",
		Priority:  PriorityHigh,
		CreatedAt: "2026-02-09T12:00:00+00:00",
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsEmptyText(t *testing.T) {
	task := Task{
		ID:        1,
		Text:      "   ",
		Priority:  PriorityMedium,
		CreatedAt: "2026-02-09T12:00:00+00:00",
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for blank text, got nil")
	}
}

func TestTaskValidateRejectsUnknownPriority(t *testing.T) {
	task := Task{
		ID:        1,
		Text:      "Task",
		Priority:  Priority("Urgent"),
		CreatedAt: "2026-02-09T12:00:00+00:00",
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}
}

func TestNormalizeClearsReminderStateWithoutDueDate(t *testing.T) {
	task := Task{
		ID:                  1,
		Text:                "No deadline",
		Priority:            PriorityLow,
		ReminderOffset:      300,
		SnoozeUntil:         "2026-02-09T13:00:00+00:00",
		NotifiedForReminder: true,
		NotifiedForDue:      true,
		CreatedAt:           "2026-02-09T12:00:00+00:00",
	}
	task.Normalize()
	if task.ReminderOffset != NoReminder {
		t.Fatalf("expected reminder offset %d, got %d", NoReminder, task.ReminderOffset)
	}
	if task.SnoozeUntil != "" || task.NotifiedForReminder || task.NotifiedForDue {
		t.Fatalf("expected snooze and latches cleared, got %+v", task)
	}
}

func TestNormalizeKeepsReminderStateWithDueDate(t *testing.T) {
	task := Task{
		ID:                  1,
		Text:                "Has deadline",
		Priority:            PriorityMedium,
		DueDate:             "2026-02-10T09:00:00+00:00",
		ReminderOffset:      900,
		NotifiedForReminder: true,
		CreatedAt:           "2026-02-09T12:00:00+00:00",
	}
	task.Normalize()
	if task.ReminderOffset != 900 || !task.NotifiedForReminder {
		t.Fatalf("expected reminder state untouched, got %+v", task)
	}
}

func TestMarkCompletedForcesLatchesAndClearsSnooze(t *testing.T) {
	task := Task{
		ID:          1,
		Text:        "Finish it",
		Priority:    PriorityMedium,
		DueDate:     "2026-02-10T09:00:00+00:00",
		SnoozeUntil: "2026-02-09T13:00:00+00:00",
		CreatedAt:   "2026-02-09T12:00:00+00:00",
	}
	task.MarkCompleted()
	if !task.Completed || task.SnoozeUntil != "" {
		t.Fatalf("expected completed with snooze cleared, got %+v", task)
	}
	if !task.NotifiedForReminder || !task.NotifiedForDue {
		t.Fatal("expected both latches forced true on completion")
	}
}

func TestMarkIncompleteReArmsLatches(t *testing.T) {
	task := Task{
		ID:                  1,
		Text:                "Back again",
		Priority:            PriorityMedium,
		DueDate:             "2026-02-10T09:00:00+00:00",
		Completed:           true,
		NotifiedForReminder: true,
		NotifiedForDue:      true,
		LastNotifiedAt:      "2026-02-09T12:00:00+00:00",
		CreatedAt:           "2026-02-09T12:00:00+00:00",
	}
	task.MarkIncomplete()
	if task.Completed || task.NotifiedForReminder || task.NotifiedForDue {
		t.Fatalf("expected latches cleared, got %+v", task)
	}
	if task.LastNotifiedAt != "" {
		t.Fatalf("expected lastNotifiedAt cleared, got %q", task.LastNotifiedAt)
	}
}

func TestPriorityRank(t *testing.T) {
	cases := []struct {
		priority Priority
		want     int
	}{
		{PriorityHigh, 0},
		{PriorityMedium, 1},
		{PriorityLow, 2},
		{Priority("Whatever"), 3},
	}
	for _, tc := range cases {
		if got := tc.priority.Rank(); got != tc.want {
			t.Fatalf("rank of %q: expected %d, got %d", tc.priority, tc.want, got)
		}
	}
}
