package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/reminder"
	"github.com/sandeepkv93/remindd/internal/session"
	"github.com/sandeepkv93/remindd/internal/views"
)

func waitForEventCmd(ch <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SessionEventMsg{Event: ev}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Now: t.UTC()}
	})
}

func (m Model) Init() tea.Cmd {
	if m.Session != nil {
		return tea.Batch(waitForEventCmd(m.Session.Events()), tickCmd())
	}
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Prompt != nil {
			return m.handlePromptKey(typed)
		}
		if m.Form.Active {
			return m.handleFormKey(typed)
		}
		return m.handleListKey(typed)

	case TickMsg:
		m.Now = typed.Now
		if m.Session != nil {
			m.NotifiedToday = m.Session.NotificationsToday()
		}
		m.refreshVisible()
		return m, tickCmd()

	case SessionEventMsg:
		// An open prompt stays on screen; later notifications wait their
		// turn so every one of them gets resolved through the session.
		if m.Prompt != nil {
			m.PromptQueue = append(m.PromptQueue, typed.Event)
		} else {
			m.Prompt = &PromptState{Event: typed.Event}
		}
		m.notify(eventTitle(typed.Event), typed.Event.Text)
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", eventTitle(typed.Event), typed.Event.Text)}
		m.refreshVisible()
		if m.Session != nil {
			return m, waitForEventCmd(m.Session.Events())
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "j", "down":
		if m.Cursor < len(m.Visible)-1 {
			m.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "g":
		m.Cursor = 0
		return m, nil
	case "G":
		m.Cursor = len(m.Visible) - 1
		if m.Cursor < 0 {
			m.Cursor = 0
		}
		return m, nil
	case m.Keys.Filter:
		m.Filter = nextFilter(m.Filter)
		m.Cursor = 0
		m.refreshVisible()
		m.Status = StatusBar{Text: "filter: " + string(m.Filter)}
		return m, nil
	case m.Keys.Sort:
		m.Sort = nextSort(m.Sort)
		m.refreshVisible()
		m.Status = StatusBar{Text: "sort: " + string(m.Sort)}
		return m, nil
	case m.Keys.Add:
		m.openAddForm()
		return m, nil
	case m.Keys.Edit:
		if t, ok := m.selectedTask(); ok {
			m.openEditForm(t)
		}
		return m, nil
	case m.Keys.Delete:
		if t, ok := m.selectedTask(); ok {
			if err := m.Session.Delete(t.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: "task deleted"}
			}
			m.refreshVisible()
		}
		return m, nil
	case m.Keys.Toggle, "x":
		if t, ok := m.selectedTask(); ok {
			if err := m.Session.ToggleComplete(t.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			}
			m.refreshVisible()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.Prompt
	switch msg.String() {
	case "j", "down":
		if p.Cursor < promptChoiceCount()-1 {
			p.Cursor++
		}
		return m, nil
	case "k", "up":
		if p.Cursor > 0 {
			p.Cursor--
		}
		return m, nil
	case "enter":
		return m.resolvePrompt(p.Cursor)
	case "esc":
		// Dismiss without touching the latches any further.
		return m.resolvePrompt(1)
	}
	return m, nil
}

// Prompt choices are laid out as: 0 complete, 1 dismiss, 2.. snooze options.
func (m Model) resolvePrompt(choice int) (tea.Model, tea.Cmd) {
	p := m.Prompt
	m.Prompt = nil
	if len(m.PromptQueue) > 0 {
		m.Prompt = &PromptState{Event: m.PromptQueue[0]}
		m.PromptQueue = m.PromptQueue[1:]
	}
	if m.Session == nil || p == nil {
		return m, nil
	}

	var err error
	switch {
	case choice == 0:
		err = m.Session.Resolve(p.Event.TaskID, session.RespondComplete, "")
		m.Status = StatusBar{Text: "task completed"}
	case choice == 1:
		err = m.Session.Resolve(p.Event.TaskID, session.RespondDismiss, "")
		m.Status = StatusBar{Text: "notification dismissed"}
	default:
		opt := reminder.SnoozeOptions[choice-2]
		err = m.Session.Resolve(p.Event.TaskID, session.RespondSnooze, opt)
		m.Status = StatusBar{Text: "snoozed " + opt.Label()}
	}
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
	m.refreshVisible()
	return m, nil
}

func (m Model) View() string {
	body := ""
	switch m.CurrentScreen {
	case ScreenForm:
		body = m.renderForm()
	default:
		body = m.renderList()
	}
	if m.HelpVisible {
		body = strings.TrimSpace(body + "\n\n" + views.RenderMarkdown(helpMarkdown))
	}

	overlay := ""
	if m.Prompt != nil {
		overlay = m.renderPrompt()
	}

	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}

	header := fmt.Sprintf("remindd | %d tasks | %s", len(m.Visible), m.Now.In(time.Local).Format("15:04:05"))
	if m.NotifiedToday > 0 {
		header += fmt.Sprintf(" | %d notified today", m.NotifiedToday)
	}

	return views.RenderApp(views.AppData{
		Header:      header,
		Body:        body,
		Overlay:     overlay,
		StatusLine:  status,
		StatusError: m.Status.IsError,
		Footer: fmt.Sprintf("keys: %s add | %s edit | %s del | space done | %s filter | %s sort | %s help | %s quit",
			m.Keys.Add, m.Keys.Edit, m.Keys.Delete, m.Keys.Filter, m.Keys.Sort, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderList() string {
	rows := make([]views.TaskRowData, 0, len(m.Visible))
	selectedID := int64(0)
	if t, ok := m.selectedTask(); ok {
		selectedID = t.ID
	}
	for _, t := range m.Visible {
		rows = append(rows, views.TaskRowData{
			ID:       t.ID,
			Text:     t.Text,
			Priority: string(t.Priority),
			DueAt:    dueColumn(t),
			Status:   statusLabel(t, m.Now),
			Done:     t.Completed,
		})
	}
	return views.RenderTaskList(views.TaskListData{
		Filter:     string(m.Filter),
		Sort:       string(m.Sort),
		Rows:       rows,
		SelectedID: selectedID,
	})
}

func (m Model) renderForm() string {
	title := "add task"
	if m.Form.EditID != 0 {
		title = fmt.Sprintf("edit task %d", m.Form.EditID)
	}
	return views.RenderForm(views.FormData{
		Title:         title,
		TextView:      m.Form.textInput.View(),
		DueView:       m.Form.dueInput.View(),
		OffsetLabel:   reminder.OffsetPresets[m.Form.OffsetIdx].Label,
		PriorityLabel: string(priorityCycle[m.Form.PriorityIdx]),
		Field:         m.Form.Field,
		ErrorText:     m.Form.ErrorText,
	})
}

func (m Model) renderPrompt() string {
	p := m.Prompt
	choices := make([]views.PromptChoiceData, 0, promptChoiceCount())
	choices = append(choices,
		views.PromptChoiceData{Label: "mark done", Selected: p.Cursor == 0},
		views.PromptChoiceData{Label: "dismiss", Selected: p.Cursor == 1},
	)
	for i, opt := range reminder.SnoozeOptions {
		choices = append(choices, views.PromptChoiceData{
			Label:    "snooze " + opt.Label(),
			Selected: p.Cursor == i+2,
		})
	}
	return views.RenderPrompt(views.PromptData{
		Title:   eventTitle(p.Event),
		Body:    p.Event.Text,
		Choices: choices,
	})
}

func eventTitle(ev session.Event) string {
	switch {
	case ev.Due:
		return "task due"
	case ev.Reminder:
		return "reminder"
	default:
		return "notification"
	}
}

func nextFilter(f model.Filter) model.Filter {
	for i, candidate := range model.Filters {
		if candidate == f {
			return model.Filters[(i+1)%len(model.Filters)]
		}
	}
	return model.FilterAll
}

func nextSort(s model.Sort) model.Sort {
	for i, candidate := range model.Sorts {
		if candidate == s {
			return model.Sorts[(i+1)%len(model.Sorts)]
		}
	}
	return model.SortDueSoonestFirst
}
