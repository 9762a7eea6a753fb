package storage

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/timeutil"
)

// migrateRecords turns raw stored records into valid tasks. Records that are
// not key-value mappings are dropped with a warning; missing, non-numeric or
// duplicate ids are regenerated. Neither condition aborts the load.
func migrateRecords(records []json.RawMessage, now time.Time, log zerolog.Logger) []model.Task {
	out := make([]model.Task, 0, len(records))
	seen := make(map[int64]bool, len(records))
	var maxID int64

	for index, raw := range records {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			log.Warn().Int("index", index).Msg("storage: dropping non-mapping record")
			continue
		}
		task, newMax := migrateRecord(fields, index, seen, maxID, now, log)
		maxID = newMax
		out = append(out, task)
	}
	return out
}

func migrateRecord(fields map[string]any, index int, seen map[int64]bool, maxID int64, now time.Time, log zerolog.Logger) (model.Task, int64) {
	id, ok := coerceID(fields["id"])
	if !ok || seen[id] {
		regenerated := synthesizeID(now, index, seen, maxID)
		log.Warn().
			Any("original_id", fields["id"]).
			Int64("new_id", regenerated).
			Str("text", stringField(fields["text"])).
			Msg("storage: regenerated task id")
		id = regenerated
	}
	seen[id] = true
	if id > maxID {
		maxID = id
	}

	task := model.Task{
		ID:                  id,
		Text:                stringField(fields["text"]),
		Priority:            priorityField(fields["priority"]),
		DueDate:             stringField(fields["dueDate"]),
		ReminderOffset:      offsetField(fields["reminderOffset"]),
		Completed:           boolField(fields["completed"]),
		CreatedAt:           stringField(fields["createdAt"]),
		SnoozeUntil:         stringField(fields["snoozeUntil"]),
		NotifiedForReminder: boolField(fields["notifiedForReminder"]),
		NotifiedForDue:      boolField(fields["notifiedForDue"]),
		LastNotifiedAt:      stringField(fields["lastNotifiedAt"]),
	}
	if strings.TrimSpace(task.CreatedAt) == "" {
		task.CreatedAt = timeutil.Format(now)
	}
	task.Normalize()
	return task, maxID
}

// synthesizeID builds a fresh id from the load instant plus the record's
// position, never below the highest id already seen, then probes upward
// until it is unique within this load pass.
func synthesizeID(now time.Time, index int, seen map[int64]bool, maxID int64) int64 {
	candidate := now.UnixMilli() + int64(index)
	if len(seen) > 0 && maxID+1 > candidate {
		candidate = maxID + 1
	}
	for seen[candidate] {
		candidate++
	}
	return candidate
}

func coerceID(v any) (int64, bool) {
	switch typed := v.(type) {
	case float64:
		return int64(typed), true
	case json.Number:
		if parsed, err := typed.Float64(); err == nil {
			return int64(parsed), true
		}
		return 0, false
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64); err == nil {
			return int64(parsed), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func stringField(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func boolField(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

func priorityField(v any) model.Priority {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return model.Priority(s)
	}
	return model.PriorityMedium
}

// offsetField defaults a missing reminder offset to "at due time" and
// coerces non-numeric values to "no reminder".
func offsetField(v any) int {
	switch typed := v.(type) {
	case nil:
		return 0
	case float64:
		return int(typed)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64); err == nil {
			return int(parsed)
		}
		return model.NoReminder
	default:
		return model.NoReminder
	}
}
