package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID       int64
	Text     string
	Priority string
	DueAt    string
	Status   string
	Done     bool
}

type TaskListData struct {
	Filter     string
	Sort       string
	Rows       []TaskRowData
	SelectedID int64
}

type FormData struct {
	Title         string
	TextView      string
	DueView       string
	OffsetLabel   string
	PriorityLabel string
	Field         int
	ErrorText     string
}

type PromptChoiceData struct {
	Label    string
	Selected bool
}

type PromptData struct {
	Title   string
	Body    string
	Choices []PromptChoiceData
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "filter: %s | sort: %s\n", data.Filter, data.Sort)
	if len(data.Rows) == 0 {
		b.WriteString("no tasks. press [a] to add one.")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		marker := "  "
		if row.ID == data.SelectedID {
			marker = "> "
		}
		check := "[ ]"
		if row.Done {
			check = "[x]"
		}
		fmt.Fprintf(&b, "%s%s %-30s %-6s %-16s %s\n", marker, check, clip(row.Text, 30), row.Priority, row.DueAt, row.Status)
	}
	return strings.TrimSpace(b.String())
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	fields := []struct {
		label string
		value string
	}{
		{"text", data.TextView},
		{"due (YYYY-MM-DD HH:MM)", data.DueView},
		{"remind", data.OffsetLabel},
		{"priority", data.PriorityLabel},
	}
	for i, f := range fields {
		marker := "  "
		if i == data.Field {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s: %s\n", marker, f.label, f.value)
	}
	b.WriteString("actions: [tab]next field [left/right]cycle [enter]save [esc]cancel")
	if data.ErrorText != "" {
		b.WriteString("\nerror: " + data.ErrorText)
	}
	return strings.TrimSpace(b.String())
}

func RenderPrompt(data PromptData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	if data.Body != "" {
		b.WriteString(data.Body + "\n")
	}
	for _, c := range data.Choices {
		marker := "  "
		if c.Selected {
			marker = "> "
		}
		b.WriteString(marker + c.Label + "\n")
	}
	b.WriteString("[j/k]move [enter]choose")
	return strings.TrimSpace(b.String())
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
