package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryRecordAndRecent(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

	entries := []HistoryEntry{
		{TaskID: 1, TaskText: "Renew passport", Kind: HistoryKindReminder, FiredAt: base},
		{TaskID: 1, TaskText: "Renew passport", Kind: HistoryKindDue, FiredAt: base.Add(time.Hour)},
		{TaskID: 2, TaskText: "Water plants", Kind: HistoryKindDue, FiredAt: base.Add(2 * time.Hour)},
	}
	for _, e := range entries {
		require.NoError(t, h.Record(ctx, e))
	}

	got, err := h.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Most recent first.
	assert.Equal(t, int64(2), got[0].TaskID)
	assert.Equal(t, HistoryKindDue, got[0].Kind)
	assert.Equal(t, int64(1), got[1].TaskID)
	assert.True(t, got[0].FiredAt.Equal(base.Add(2*time.Hour)))
}

func TestHistoryRecentEmpty(t *testing.T) {
	h := newTestHistory(t)
	got, err := h.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistoryCountTodayAtMidnightBoundary(t *testing.T) {
	// Sub-second instants sharing the midnight second must land on the
	// right side of the cutoff; the stored text has a fixed-width
	// fraction so the SQL comparison stays chronological.
	h := newTestHistory(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	midnight := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	require.NoError(t, h.Record(ctx, HistoryEntry{TaskID: 1, TaskText: "a", Kind: HistoryKindDue, FiredAt: midnight.Add(500 * time.Millisecond)}))
	require.NoError(t, h.Record(ctx, HistoryEntry{TaskID: 2, TaskText: "b", Kind: HistoryKindDue, FiredAt: midnight.Add(-500 * time.Millisecond)}))

	count, err := h.CountToday(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHistoryCountToday(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 9, 18, 0, 0, 0, time.UTC)

	require.NoError(t, h.Record(ctx, HistoryEntry{TaskID: 1, TaskText: "a", Kind: HistoryKindDue, FiredAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, h.Record(ctx, HistoryEntry{TaskID: 2, TaskText: "b", Kind: HistoryKindReminder, FiredAt: now.Add(-time.Hour)}))
	require.NoError(t, h.Record(ctx, HistoryEntry{TaskID: 3, TaskText: "c", Kind: HistoryKindDue, FiredAt: now.Add(-30 * time.Hour)}))

	count, err := h.CountToday(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
