package update

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/reminder"
	"github.com/sandeepkv93/remindd/internal/session"
)

var errBadDueInput = errors.New("due date must look like 2026-03-01 09:00")

var dueInputLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDueInput reads the form's due field as local wall-clock time. An
// empty value means no due date.
func parseDueInput(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range dueInputLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, errBadDueInput
}

func (m *Model) openAddForm() {
	m.Form = newFormState()
	m.Form.Active = true
	m.Form.PriorityIdx = 0
	m.Form.textInput.Focus()
	m.CurrentScreen = ScreenForm
}

func (m *Model) openEditForm(t model.Task) {
	m.Form = newFormState()
	m.Form.Active = true
	m.Form.EditID = t.ID
	m.Form.textInput.SetValue(t.Text)
	m.Form.textInput.Focus()
	if due, ok := t.DueTime(); ok {
		m.Form.dueInput.SetValue(due.In(time.Local).Format("2006-01-02 15:04"))
	}
	for i, preset := range reminder.OffsetPresets {
		if preset.Seconds == t.ReminderOffset {
			m.Form.OffsetIdx = i
		}
	}
	for i, p := range priorityCycle {
		if p == t.Priority {
			m.Form.PriorityIdx = i
		}
	}
	m.CurrentScreen = ScreenForm
}

func (m *Model) closeForm() {
	m.Form.Active = false
	m.CurrentScreen = ScreenList
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "edit cancelled"}
		return m, nil
	case "tab", "down":
		m.Form.Field = (m.Form.Field + 1) % formFieldCount
		m.syncFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.Form.Field = (m.Form.Field + formFieldCount - 1) % formFieldCount
		m.syncFormFocus()
		return m, nil
	case "left":
		m.cycleFormChoice(-1)
		return m, nil
	case "right":
		m.cycleFormChoice(1)
		return m, nil
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	switch m.Form.Field {
	case formFieldText:
		m.Form.textInput, cmd = m.Form.textInput.Update(msg)
	case formFieldDue:
		m.Form.dueInput, cmd = m.Form.dueInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) syncFormFocus() {
	m.Form.textInput.Blur()
	m.Form.dueInput.Blur()
	switch m.Form.Field {
	case formFieldText:
		m.Form.textInput.Focus()
	case formFieldDue:
		m.Form.dueInput.Focus()
	}
}

func (m *Model) cycleFormChoice(delta int) {
	switch m.Form.Field {
	case formFieldOffset:
		n := len(reminder.OffsetPresets)
		m.Form.OffsetIdx = (m.Form.OffsetIdx + delta + n) % n
	case formFieldPriority:
		n := len(priorityCycle)
		m.Form.PriorityIdx = (m.Form.PriorityIdx + delta + n) % n
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	due, err := parseDueInput(m.Form.dueInput.Value())
	if err != nil {
		m.Form.ErrorText = err.Error()
		return m, nil
	}
	text := m.Form.textInput.Value()
	offset := reminder.OffsetPresets[m.Form.OffsetIdx].Seconds
	priority := priorityCycle[m.Form.PriorityIdx]

	if m.Form.EditID != 0 {
		err = m.Session.Update(m.Form.EditID, text, due, offset, priority)
	} else {
		_, err = m.Session.Add(text, due, offset, priority)
	}
	switch {
	case err == nil:
		m.closeForm()
		m.Status = StatusBar{Text: "task saved"}
		m.refreshVisible()
	case errors.Is(err, session.ErrEmptyText):
		m.Form.ErrorText = "task text is required"
	case errors.Is(err, session.ErrDueInPast):
		m.Form.ErrorText = "due date is in the past"
	default:
		m.Form.ErrorText = err.Error()
	}
	return m, nil
}
