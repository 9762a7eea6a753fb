package reminder

import (
	"testing"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

func TestSnoozeUntilRelativeOptions(t *testing.T) {
	now := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	if got := SnoozeUntil(Snooze15Minutes, now); !got.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("unexpected 15m snooze: %v", got)
	}
	if got := SnoozeUntil(Snooze1Hour, now); !got.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected 1h snooze: %v", got)
	}
}

func TestSnoozeUntilTonight(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	morning := time.Date(2026, 2, 9, 10, 0, 0, 0, loc)
	got := SnoozeUntil(SnoozeTonight, morning)
	want := time.Date(2026, 2, 9, 20, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Past 20:00 local, tonight rolls over to tomorrow.
	evening := time.Date(2026, 2, 9, 21, 0, 0, 0, loc)
	got = SnoozeUntil(SnoozeTonight, evening)
	want = time.Date(2026, 2, 10, 20, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSnoozeUntilTomorrowMorning(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 2, 9, 23, 30, 0, 0, loc)
	got := SnoozeUntil(SnoozeTomorrowMorning, now)
	want := time.Date(2026, 2, 10, 9, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOffsetLabel(t *testing.T) {
	if got := OffsetLabel(model.NoReminder); got != "no reminder" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := OffsetLabel(0); got != "at due time" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := OffsetLabel(3600); got != "1 hour before" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := OffsetLabel(123); got != "123 seconds before" {
		t.Fatalf("unexpected label: %q", got)
	}
}
