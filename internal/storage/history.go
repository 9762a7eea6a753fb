package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// historyTimeLayout pads the fractional second to a fixed width so the
// stored TEXT column compares correctly with SQL range predicates.
const historyTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	HistoryKindReminder = "reminder"
	HistoryKindDue      = "due"
)

// HistoryEntry records one presented notification. The history is
// informational only; losing it never affects evaluation state.
type HistoryEntry struct {
	TaskID   int64
	TaskText string
	Kind     string
	FiredAt  time.Time
}

type History struct {
	db *sql.DB
}

func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	h := &History{db: db}
	if err := h.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return h, nil
}

func NewHistory(db *sql.DB) (*History, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	h := &History{db: db}
	if err := h.init(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *History) init() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS notification_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id INTEGER NOT NULL,
			task_text TEXT NOT NULL,
			kind TEXT NOT NULL,
			fired_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create history table: %w", err)
	}
	return nil
}

func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) Record(ctx context.Context, in HistoryEntry) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO notification_history (task_id, task_text, kind, fired_at)
		VALUES (?, ?, ?, ?)`,
		in.TaskID, in.TaskText, in.Kind, in.FiredAt.UTC().Format(historyTimeLayout),
	)
	return err
}

// Recent returns the most recently fired notifications, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx, `
		SELECT task_id, task_text, kind, fired_at
		FROM notification_history
		ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HistoryEntry, 0, limit)
	for rows.Next() {
		var entry HistoryEntry
		var fired string
		if err := rows.Scan(&entry.TaskID, &entry.TaskText, &entry.Kind, &fired); err != nil {
			return nil, err
		}
		firedAt, err := time.Parse(historyTimeLayout, fired)
		if err != nil {
			return nil, err
		}
		entry.FiredAt = firedAt
		out = append(out, entry)
	}
	return out, rows.Err()
}

// CountToday reports how many notifications fired since local midnight.
func (h *History) CountToday(ctx context.Context, now time.Time) (int, error) {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	row := h.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notification_history WHERE fired_at >= ?`,
		midnight.UTC().Format(historyTimeLayout),
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
