package reminder

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

type SnoozeOption string

const (
	Snooze15Minutes       SnoozeOption = "15m"
	Snooze1Hour           SnoozeOption = "1h"
	SnoozeTonight         SnoozeOption = "tonight"
	SnoozeTomorrowMorning SnoozeOption = "tomorrow"
)

// SnoozeOptions lists the durations offered on a notification prompt.
var SnoozeOptions = []SnoozeOption{Snooze15Minutes, Snooze1Hour, SnoozeTonight, SnoozeTomorrowMorning}

func (o SnoozeOption) Label() string {
	switch o {
	case Snooze15Minutes:
		return "in 15 minutes"
	case Snooze1Hour:
		return "in 1 hour"
	case SnoozeTonight:
		return "tonight at 20:00"
	case SnoozeTomorrowMorning:
		return "tomorrow at 09:00"
	default:
		return string(o)
	}
}

// SnoozeUntil converts an option into an absolute instant. Wall-clock
// options are computed in now's location, so callers pass a localized now;
// the result is stored as UTC either way.
func SnoozeUntil(o SnoozeOption, now time.Time) time.Time {
	switch o {
	case Snooze1Hour:
		return now.Add(time.Hour)
	case SnoozeTonight:
		year, month, day := now.Date()
		target := time.Date(year, month, day, 20, 0, 0, 0, now.Location())
		if !target.After(now) {
			target = target.AddDate(0, 0, 1)
		}
		return target
	case SnoozeTomorrowMorning:
		tomorrow := now.AddDate(0, 0, 1)
		year, month, day := tomorrow.Date()
		return time.Date(year, month, day, 9, 0, 0, 0, now.Location())
	default:
		return now.Add(15 * time.Minute)
	}
}

// OffsetPreset pairs a reminder offset in seconds with its display label.
type OffsetPreset struct {
	Label   string
	Seconds int
}

// OffsetPresets mirrors the choices offered by the task form.
var OffsetPresets = []OffsetPreset{
	{"no reminder", model.NoReminder},
	{"at due time", 0},
	{"5 minutes before", 300},
	{"15 minutes before", 900},
	{"30 minutes before", 1800},
	{"1 hour before", 3600},
	{"1 day before", 86400},
}

// OffsetLabel names a reminder offset, falling back to a literal rendering
// for values outside the preset list.
func OffsetLabel(seconds int) string {
	for _, preset := range OffsetPresets {
		if preset.Seconds == seconds {
			return preset.Label
		}
	}
	return fmt.Sprintf("%d seconds before", seconds)
}
