package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/reminder"
	"github.com/sandeepkv93/remindd/internal/session"
)

type Screen string

const (
	ScreenList Screen = "List"
	ScreenForm Screen = "Form"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add    string
	Edit   string
	Delete string
	Toggle string
	Filter string
	Sort   string
	Help   string
	Quit   string
}

const (
	formFieldText = iota
	formFieldDue
	formFieldOffset
	formFieldPriority
	formFieldCount
)

// priorityCycle is the order the form's priority field cycles through.
var priorityCycle = []model.Priority{model.PriorityMedium, model.PriorityHigh, model.PriorityLow}

type FormState struct {
	Active      bool
	EditID      int64
	Field       int
	OffsetIdx   int
	PriorityIdx int
	ErrorText   string
	textInput   textinput.Model
	dueInput    textinput.Model
}

// PromptState is an open notification prompt. While set, list keys are
// routed to the prompt and the session suppresses further events for the
// same task.
type PromptState struct {
	Event  session.Event
	Cursor int
}

// promptChoiceCount is complete + dismiss + the snooze options.
func promptChoiceCount() int {
	return 2 + len(reminder.SnoozeOptions)
}

type Model struct {
	Session *session.Session

	CurrentScreen Screen
	Filter        model.Filter
	Sort          model.Sort
	Cursor        int
	Visible       []model.Task

	Form        FormState
	Prompt      *PromptState
	PromptQueue []session.Event
	HelpVisible bool
	Status      StatusBar

	DesktopEnabled bool
	notifier       DesktopNotifier

	Keys          GlobalKeyMap
	Now           time.Time
	NotifiedToday int
	Quitting      bool
}

type Notification struct {
	Title string
	Body  string
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

type SessionEventMsg struct {
	Event session.Event
}

type TickMsg struct {
	Now time.Time
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(sess *session.Session) Model {
	m := Model{
		Session:       sess,
		CurrentScreen: ScreenList,
		Filter:        model.FilterAll,
		Sort:          model.SortDueSoonestFirst,
		notifier:      NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Add:    "a",
			Edit:   "e",
			Delete: "d",
			Toggle: " ",
			Filter: "f",
			Sort:   "s",
			Help:   "?",
			Quit:   "q",
		},
		Now: time.Now().UTC(),
	}
	m.Form = newFormState()
	m.refreshVisible()
	return m
}

func NewModelWithNotifier(sess *session.Session, desktopEnabled bool, notifier DesktopNotifier) Model {
	m := NewModel(sess)
	m.DesktopEnabled = desktopEnabled
	if notifier != nil {
		m.notifier = notifier
	}
	return m
}

func newFormState() FormState {
	text := textinput.New()
	text.Placeholder = "what needs doing?"
	text.CharLimit = 200
	due := textinput.New()
	due.Placeholder = "2026-03-01 09:00"
	due.CharLimit = 16
	return FormState{textInput: text, dueInput: due}
}

// refreshVisible recomputes the filtered, sorted task slice shown on the
// list screen and keeps the cursor on a valid row.
func (m *Model) refreshVisible() {
	if m.Session == nil {
		m.Visible = nil
		return
	}
	tasks := model.FilterTasks(m.Session.Tasks(), m.Filter, m.Now)
	m.Visible = model.SortTasks(tasks, m.Sort)
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	if len(m.Visible) == 0 || m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return model.Task{}, false
	}
	return m.Visible[m.Cursor], true
}

func (m *Model) notify(title, body string) {
	if !m.DesktopEnabled || m.notifier == nil {
		return
	}
	_ = m.notifier.Send(Notification{Title: title, Body: body})
}
