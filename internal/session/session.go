package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/reminder"
	"github.com/sandeepkv93/remindd/internal/storage"
	"github.com/sandeepkv93/remindd/internal/timeutil"
)

var (
	ErrNotFound  = errors.New("session: task not found")
	ErrEmptyText = errors.New("session: task text is required")
	ErrDueInPast = errors.New("session: due date is in the past")
)

// Event is one notification that should be shown to the user.
type Event struct {
	TaskID   int64
	Text     string
	Reminder bool
	Due      bool
	DueAt    time.Time
	FiredAt  time.Time
}

// Response is how the user answered a notification prompt.
type Response int

const (
	RespondComplete Response = iota
	RespondDismiss
	RespondSnooze
)

// Session owns the live task collection. It re-evaluates every task on a
// fixed tick, emits notification events on a channel, and persists the
// collection whenever evaluation or a user operation changed it.
type Session struct {
	mu    sync.Mutex
	tasks []model.Task

	store   *storage.FileStore
	history *storage.History
	log     zerolog.Logger

	interval time.Duration
	clock    func() time.Time

	out     chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64

	// prompting holds ids with an unanswered prompt on screen: evaluation
	// keeps latching for them but emits no second event until Resolve.
	prompting map[int64]bool
	// badDue remembers the last malformed due value warned about per task,
	// so a broken record logs once instead of every tick.
	badDue map[int64]string
}

// New loads the stored collection and prepares a session around it. The
// history store may be nil; notification history is then skipped.
func New(store *storage.FileStore, history *storage.History, interval time.Duration, log zerolog.Logger) *Session {
	if interval <= 0 {
		interval = time.Second
	}
	s := &Session{
		store:     store,
		history:   history,
		log:       log,
		interval:  interval,
		clock:     func() time.Time { return time.Now().UTC() },
		out:       make(chan Event, 16),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		prompting: make(map[int64]bool),
		badDue:    make(map[int64]string),
	}
	s.tasks = store.Load(s.clock())
	return s
}

// Events delivers notification events. The channel is closed on Stop.
func (s *Session) Events() <-chan Event {
	return s.out
}

func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	go s.loop()
}

// Stop ends the evaluation loop and writes the collection out one last
// time so nothing is lost on shutdown.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stopCh)
	s.mu.Unlock()
	<-s.doneCh
	s.persist()
}

// Dropped reports how many events were discarded because the consumer
// was not reading.
func (s *Session) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}

func (s *Session) loop() {
	defer close(s.doneCh)
	defer close(s.out)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.tick(s.clock())
		case <-s.stopCh:
			return
		}
	}
}

// tick runs one evaluation pass over every task: expired snooze windows
// are cleared first, then each task is evaluated and fired notifications
// are latched so they do not repeat. Persistence happens only when the
// pass actually changed something.
func (s *Session) tick(now time.Time) {
	s.mu.Lock()
	changed := false
	var fired []Event
	var entries []storage.HistoryEntry

	for i := range s.tasks {
		t := &s.tasks[i]

		rawSnooze := t.SnoozeUntil
		if cleared, malformed := reminder.ClearExpiredSnooze(t, now); cleared {
			changed = true
			if malformed {
				s.log.Warn().Int64("task_id", t.ID).Str("snooze_until", rawSnooze).
					Msg("session: unparseable snooze value, re-arming task")
			}
		}

		d := reminder.Evaluate(*t, now)
		switch d.Outcome {
		case reminder.OutcomeMalformed:
			if s.badDue[t.ID] != t.DueDate {
				s.badDue[t.ID] = t.DueDate
				s.log.Warn().Int64("task_id", t.ID).Str("due_date", t.DueDate).
					Msg("session: unparseable due date, task cannot notify")
			}
		case reminder.OutcomeEvaluated:
			if !d.Fires() {
				break
			}
			if d.Due {
				reminder.MarkDueFired(t, now)
			} else {
				reminder.MarkReminderFired(t, now)
			}
			changed = true
			if !s.prompting[t.ID] {
				fired = append(fired, Event{
					TaskID:   t.ID,
					Text:     t.Text,
					Reminder: d.Reminder,
					Due:      d.Due,
					DueAt:    d.DueAt,
					FiredAt:  now,
				})
			}
			if d.Reminder {
				entries = append(entries, storage.HistoryEntry{
					TaskID: t.ID, TaskText: t.Text, Kind: storage.HistoryKindReminder, FiredAt: now,
				})
			}
			if d.Due {
				entries = append(entries, storage.HistoryEntry{
					TaskID: t.ID, TaskText: t.Text, Kind: storage.HistoryKindDue, FiredAt: now,
				})
			}
		}
	}
	for _, ev := range fired {
		if s.emitLocked(ev) {
			s.prompting[ev.TaskID] = true
		}
	}
	s.mu.Unlock()

	if changed {
		s.persist()
	}
	s.recordHistory(entries)
}

func (s *Session) emitLocked(ev Event) bool {
	select {
	case s.out <- ev:
		return true
	default:
		atomic.AddUint64(&s.dropped, 1)
		return false
	}
}

func (s *Session) recordHistory(entries []storage.HistoryEntry) {
	if s.history == nil || len(entries) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, e := range entries {
		if err := s.history.Record(ctx, e); err != nil {
			s.log.Warn().Err(err).Int64("task_id", e.TaskID).Msg("session: cannot record notification history")
		}
	}
}

func (s *Session) persist() {
	s.mu.Lock()
	snapshot := make([]model.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.mu.Unlock()

	if err := s.store.Save(snapshot); err != nil {
		s.log.Error().Err(err).Msg("session: cannot save tasks")
	}
}

// NotificationsToday reports how many notifications fired since local
// midnight, or 0 when no history store is attached.
func (s *Session) NotificationsToday() int {
	if s.history == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	count, err := s.history.CountToday(ctx, s.clock().In(time.Local))
	if err != nil {
		s.log.Warn().Err(err).Msg("session: cannot count notification history")
		return 0
	}
	return count
}

// Tasks returns a snapshot of the collection.
func (s *Session) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Add creates a task. A zero due time means no due date; offset is only
// kept when a due date is set. The due date must not already have passed.
func (s *Session) Add(text string, due time.Time, offset int, priority model.Priority) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	if !priority.IsValid() {
		priority = model.PriorityMedium
	}
	now := s.clock()
	if !due.IsZero() && due.Before(now) {
		return model.Task{}, ErrDueInPast
	}

	s.mu.Lock()
	task := model.Task{
		ID:             s.nextIDLocked(now),
		Text:           text,
		Priority:       priority,
		ReminderOffset: offset,
		CreatedAt:      timeutil.Format(now),
	}
	if !due.IsZero() {
		task.DueDate = timeutil.Format(due)
	}
	task.Normalize()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	s.persist()
	return task, nil
}

// Update rewrites a task's user-editable fields. Changing the due date or
// the reminder offset re-arms notification state against the new schedule.
func (s *Session) Update(id int64, text string, due time.Time, offset int, priority model.Priority) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	t := &s.tasks[idx]
	newDue := ""
	if !due.IsZero() {
		newDue = timeutil.Format(due)
	}
	rearm := newDue != t.DueDate || offset != t.ReminderOffset
	t.Text = text
	t.DueDate = newDue
	t.ReminderOffset = offset
	if priority.IsValid() {
		t.Priority = priority
	}
	if rearm {
		t.ResetNotificationState()
	}
	t.Normalize()
	delete(s.badDue, id)
	s.mu.Unlock()

	s.persist()
	return nil
}

func (s *Session) Delete(id int64) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	delete(s.prompting, id)
	delete(s.badDue, id)
	s.mu.Unlock()

	s.persist()
	return nil
}

// ToggleComplete flips completion. Completing forces both latches so the
// task never notifies; un-completing re-arms it against its due date.
func (s *Session) ToggleComplete(id int64) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	t := &s.tasks[idx]
	if t.Completed {
		t.MarkIncomplete()
	} else {
		t.MarkCompleted()
	}
	delete(s.prompting, id)
	s.mu.Unlock()

	s.persist()
	return nil
}

// Resolve answers an open notification prompt. opt is only read for
// RespondSnooze.
func (s *Session) Resolve(id int64, r Response, opt reminder.SnoozeOption) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		delete(s.prompting, id)
		s.mu.Unlock()
		return ErrNotFound
	}
	t := &s.tasks[idx]
	switch r {
	case RespondComplete:
		t.MarkCompleted()
	case RespondSnooze:
		reminder.ApplySnooze(t, reminder.SnoozeUntil(opt, s.clock().In(time.Local)))
	case RespondDismiss:
		// Latches were set when the event fired; nothing more to do.
	}
	delete(s.prompting, id)
	s.mu.Unlock()

	s.persist()
	return nil
}

func (s *Session) indexLocked(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) nextIDLocked(now time.Time) int64 {
	id := now.UnixMilli()
	for s.hasIDLocked(id) {
		id++
	}
	return id
}

func (s *Session) hasIDLocked(id int64) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return true
		}
	}
	return false
}
