package update

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/session"
	"github.com/sandeepkv93/remindd/internal/storage"
	"github.com/sandeepkv93/remindd/internal/timeutil"
)

var testNow = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, tasks []model.Task) Model {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "tasks.json"), zerolog.Nop())
	if tasks != nil {
		if err := store.Save(tasks); err != nil {
			t.Fatalf("seed tasks: %v", err)
		}
	}
	sess := session.New(store, nil, time.Second, zerolog.Nop())
	m := NewModel(sess)
	m.Now = testNow
	m.refreshVisible()
	return m
}

func fixtureTasks() []model.Task {
	return []model.Task{
		{
			ID:        1,
			Text:      "write report",
			Priority:  model.PriorityHigh,
			DueDate:   timeutil.Format(testNow.Add(2 * time.Hour)),
			CreatedAt: timeutil.Format(testNow.Add(-48 * time.Hour)),
		},
		{
			ID:             2,
			Text:           "water plants",
			Priority:       model.PriorityLow,
			ReminderOffset: model.NoReminder,
			CreatedAt:      timeutil.Format(testNow.Add(-24 * time.Hour)),
		},
	}
}

func pressKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t, nil)
	if m.CurrentScreen != ScreenList {
		t.Fatalf("expected list screen, got %q", m.CurrentScreen)
	}
	if m.Filter != model.FilterAll {
		t.Fatalf("expected default filter All, got %q", m.Filter)
	}
	if m.Sort != model.SortDueSoonestFirst {
		t.Fatalf("expected due-soonest sort, got %q", m.Sort)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestListNavigationMovesCursor(t *testing.T) {
	m := newTestModel(t, fixtureTasks())
	if len(m.Visible) != 2 {
		t.Fatalf("expected 2 visible tasks, got %d", len(m.Visible))
	}
	m = pressKey(t, m, "j")
	if m.Cursor != 1 {
		t.Fatalf("expected cursor 1 after j, got %d", m.Cursor)
	}
	m = pressKey(t, m, "j")
	if m.Cursor != 1 {
		t.Fatalf("cursor must stop at the last row, got %d", m.Cursor)
	}
	m = pressKey(t, m, "k")
	if m.Cursor != 0 {
		t.Fatalf("expected cursor 0 after k, got %d", m.Cursor)
	}
}

func TestFilterAndSortCycling(t *testing.T) {
	m := newTestModel(t, fixtureTasks())
	m = pressKey(t, m, "f")
	if m.Filter != model.FilterPending {
		t.Fatalf("expected Pending after one cycle, got %q", m.Filter)
	}
	m = pressKey(t, m, "s")
	if m.Sort != model.SortDueLatestFirst {
		t.Fatalf("expected DueLatestFirst after one cycle, got %q", m.Sort)
	}
}

func TestToggleCompleteFromList(t *testing.T) {
	m := newTestModel(t, fixtureTasks())
	m = pressKey(t, m, "x")
	tasks := m.Session.Tasks()
	var toggled *model.Task
	for i := range tasks {
		if tasks[i].Completed {
			toggled = &tasks[i]
		}
	}
	if toggled == nil {
		t.Fatalf("expected one task completed after toggle")
	}
}

func TestAddFormSubmitCreatesTask(t *testing.T) {
	m := newTestModel(t, nil)
	m = pressKey(t, m, "a")
	if m.CurrentScreen != ScreenForm || !m.Form.Active {
		t.Fatalf("expected form screen after a, got %q", m.CurrentScreen)
	}
	m.Form.textInput.SetValue("buy milk")
	m = pressKey(t, m, "enter")
	if m.CurrentScreen != ScreenList {
		t.Fatalf("expected return to list after save, got %q", m.CurrentScreen)
	}
	tasks := m.Session.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "buy milk" {
		t.Fatalf("expected saved task, got %+v", tasks)
	}
}

func TestFormRejectsEmptyText(t *testing.T) {
	m := newTestModel(t, nil)
	m = pressKey(t, m, "a")
	m = pressKey(t, m, "enter")
	if m.Form.ErrorText == "" {
		t.Fatalf("expected validation error for empty text")
	}
	if len(m.Session.Tasks()) != 0 {
		t.Fatalf("no task must be created on invalid input")
	}
}

func TestFormRejectsUnparseableDue(t *testing.T) {
	m := newTestModel(t, nil)
	m = pressKey(t, m, "a")
	m.Form.textInput.SetValue("task")
	m.Form.dueInput.SetValue("next tuesday")
	m = pressKey(t, m, "enter")
	if m.Form.ErrorText == "" {
		t.Fatalf("expected due parse error")
	}
}

func TestFormEscCancels(t *testing.T) {
	m := newTestModel(t, nil)
	m = pressKey(t, m, "a")
	m = pressKey(t, m, "esc")
	if m.CurrentScreen != ScreenList || m.Form.Active {
		t.Fatalf("expected list screen after esc")
	}
}

func TestSessionEventOpensPromptAndCompletes(t *testing.T) {
	m := newTestModel(t, fixtureTasks())
	updated, _ := m.Update(SessionEventMsg{Event: session.Event{TaskID: 1, Text: "write report", Due: true}})
	m = updated.(Model)
	if m.Prompt == nil {
		t.Fatalf("expected open prompt after event")
	}

	// First choice completes the task.
	m = pressKey(t, m, "enter")
	if m.Prompt != nil {
		t.Fatalf("expected prompt closed after resolve")
	}
	for _, task := range m.Session.Tasks() {
		if task.ID == 1 && !task.Completed {
			t.Fatalf("expected task 1 completed, got %+v", task)
		}
	}
}

func TestSecondEventWaitsForOpenPrompt(t *testing.T) {
	// Two tasks fire close together: the first prompt must stay on
	// screen and the second must queue behind it, so both resolutions
	// reach the session.
	m := newTestModel(t, fixtureTasks())
	updated, _ := m.Update(SessionEventMsg{Event: session.Event{TaskID: 1, Text: "write report", Due: true}})
	m = updated.(Model)
	updated, _ = m.Update(SessionEventMsg{Event: session.Event{TaskID: 2, Text: "water plants", Due: true}})
	m = updated.(Model)

	if m.Prompt == nil || m.Prompt.Event.TaskID != 1 {
		t.Fatalf("first prompt must not be displaced, got %+v", m.Prompt)
	}
	if len(m.PromptQueue) != 1 || m.PromptQueue[0].TaskID != 2 {
		t.Fatalf("second event must queue, got %+v", m.PromptQueue)
	}

	// Resolving the first prompt surfaces the queued one.
	m = pressKey(t, m, "enter")
	if m.Prompt == nil || m.Prompt.Event.TaskID != 2 {
		t.Fatalf("expected queued prompt for task 2, got %+v", m.Prompt)
	}
	if len(m.PromptQueue) != 0 {
		t.Fatalf("queue must drain, got %+v", m.PromptQueue)
	}
	m = pressKey(t, m, "esc")
	if m.Prompt != nil {
		t.Fatalf("expected no prompt after resolving both")
	}

	for _, task := range m.Session.Tasks() {
		switch task.ID {
		case 1:
			if !task.Completed {
				t.Fatalf("first resolution must complete task 1, got %+v", task)
			}
		case 2:
			if task.Completed {
				t.Fatalf("dismiss must not complete task 2, got %+v", task)
			}
		}
	}
}

func TestPromptEscDismisses(t *testing.T) {
	m := newTestModel(t, fixtureTasks())
	updated, _ := m.Update(SessionEventMsg{Event: session.Event{TaskID: 1, Text: "write report", Due: true}})
	m = updated.(Model)
	m = pressKey(t, m, "esc")
	if m.Prompt != nil {
		t.Fatalf("expected prompt closed after esc")
	}
	for _, task := range m.Session.Tasks() {
		if task.ID == 1 && task.Completed {
			t.Fatalf("dismiss must not complete the task")
		}
	}
}

func TestStatusMessages(t *testing.T) {
	m := newTestModel(t, nil)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	m = updated.(Model)
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	updated, _ = m.Update(ClearStatusMsg{})
	m = updated.(Model)
	if m.Status.Text != "" {
		t.Fatalf("expected cleared status, got %+v", m.Status)
	}
}

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		name string
		task model.Task
		want string
	}{
		{"completed", model.Task{Completed: true}, "done"},
		{"no due date", model.Task{}, "no due date"},
		{"malformed due", model.Task{DueDate: "yesterday-ish"}, "bad due date!"},
		{
			"upcoming",
			model.Task{DueDate: timeutil.Format(testNow.Add(2*time.Hour + 5*time.Minute))},
			"due in 2h 5m",
		},
		{
			"overdue",
			model.Task{DueDate: timeutil.Format(testNow.Add(-90 * time.Minute))},
			"overdue 1h 30m",
		},
		{
			"snoozed",
			model.Task{
				DueDate:     timeutil.Format(testNow.Add(-time.Hour)),
				SnoozeUntil: timeutil.Format(testNow.Add(15 * time.Minute)),
			},
			"snoozed 15m",
		},
	}
	for _, tc := range cases {
		if got := statusLabel(tc.task, testNow); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestViewRendersTaskRows(t *testing.T) {
	m := newTestModel(t, fixtureTasks())
	out := m.View()
	if !strings.Contains(out, "write report") || !strings.Contains(out, "water plants") {
		t.Fatalf("expected task rows in view output:\n%s", out)
	}
	if !strings.Contains(out, "remindd") {
		t.Fatalf("expected header in view output:\n%s", out)
	}
}
