package ui

import (
	"fmt"
	"strings"
	"time"

	"taskdeck/internal/task"
)

func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s %s\n", m.spin.View(), m.styles.Loading.Render("Loading tasks..."))
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("taskdeck"))
	b.WriteString("  ")
	b.WriteString(m.styles.Stats.Render(m.viewIndicator()))
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.styles.HelpBox.Render(m.renderShortcuts()))
		b.WriteString("\n")
		return b.String()
	}

	view := m.view()
	if len(view) == 0 {
		if m.repo.Len() == 0 {
			b.WriteString(m.styles.Help.Render("No tasks yet. Press 'a' to add one."))
		} else {
			b.WriteString(m.styles.Help.Render("No tasks match the current view."))
		}
		b.WriteString("\n")
	} else {
		now := time.Now()
		cur := clampCursor(m.cursor, len(view))
		for i, t := range view {
			b.WriteString(m.renderTask(t, i == cur && m.mode == modeList, now))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Stats.Render(renderStats(task.Summarize(m.repo.Tasks(), time.Now()))))
	b.WriteString("\n")

	if m.mode != modeList {
		b.WriteString(m.styles.InputName.Render(m.inputLabel()))
		b.WriteString(" ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		style := m.styles.Status
		if strings.Contains(m.status, "failed") {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.renderFooter()))
	b.WriteString("\n")
	return b.String()
}

// viewIndicator summarizes the transient view parameters in the header.
func (m Model) viewIndicator() string {
	parts := []string{fmt.Sprintf("filter:%s", m.query.Status)}
	parts = append(parts, fmt.Sprintf("sort:%s", m.query.Sort))
	if !m.query.ShowCompleted {
		parts = append(parts, "completed hidden")
	}
	if s := strings.TrimSpace(m.query.Search); s != "" {
		parts = append(parts, fmt.Sprintf("search:%q", s))
	}
	return strings.Join(parts, " | ")
}

func (m Model) renderTask(t task.Task, selected bool, now time.Time) string {
	cursor := " "
	if selected {
		cursor = m.styles.Cursor.Render(">")
	}

	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}

	text := m.styles.TaskText.Render(t.Text)
	if t.Completed {
		text = m.styles.DoneText.Render(t.Text)
	}

	line := fmt.Sprintf("%s %s %s %s %s",
		cursor,
		m.styles.Checkbox.Render(checkbox),
		m.styles.PriorityBadge(t.Priority),
		text,
		m.styles.Category.Render("@"+string(t.Category)),
	)
	if due := m.renderDue(t, now); due != "" {
		line += " " + due
	}
	if strings.TrimSpace(t.Notes) != "" {
		line += " " + m.styles.Help.Render("*")
	}
	return line
}

func (m Model) renderDue(t task.Task, now time.Time) string {
	due, ok := t.Due()
	if !ok {
		return ""
	}
	label := "due:" + t.DueDate
	if t.Completed {
		return m.styles.Due.Render(label)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.Before(today):
		return m.styles.Overdue.Render(label + " (overdue)")
	case day.Equal(today):
		return m.styles.DueToday.Render(label + " (today)")
	default:
		return m.styles.Due.Render(label)
	}
}

func renderStats(s task.Stats) string {
	return fmt.Sprintf("%d total | %d active | %d done | %d overdue | %d due today",
		s.Total, s.Active, s.Completed, s.Overdue, s.DueToday)
}

func (m Model) inputLabel() string {
	switch m.mode {
	case modeAdd:
		return "Add:"
	case modeEdit:
		return "Edit:"
	case modeSearch:
		return "Search:"
	case modeImport:
		return "Import:"
	default:
		return ""
	}
}

func (m Model) renderFooter() string {
	k := m.cfg.Keys
	return fmt.Sprintf("%s/%s move | %s add | %s toggle | %s edit | %s delete | %s search | %s filter | %s help | %s quit",
		k.Up, k.Down, k.Add, keyName(k.Toggle), k.Edit, k.Delete, k.Search, k.Filter, k.Help, k.Quit)
}

func (m Model) renderShortcuts() string {
	k := m.cfg.Keys
	rows := []struct{ key, desc string }{
		{k.Add, "add a task"},
		{k.Edit, "edit the selected task inline"},
		{keyName(k.Toggle), "toggle completed"},
		{k.Delete, "delete (asks y/n)"},
		{k.ClearCompleted, "clear all completed tasks"},
		{k.Up + "/" + k.Down, "move the cursor"},
		{k.MoveUp + "/" + k.MoveDown, "reorder the selected task (full view only)"},
		{k.Filter, "cycle filter all/active/completed"},
		{k.ShowCompleted, "show or hide completed in the all view"},
		{k.Search, "search text or category"},
		{k.SortCreated, "sort by creation time"},
		{k.SortPriority, "sort by priority"},
		{k.SortDue, "sort by due date"},
		{k.PriorityCycle, "cycle priority"},
		{k.CategoryCycle, "cycle category"},
		{k.DueForward + "/" + k.DueBack, "bump due date forward/back"},
		{k.Export, "export tasks to a dated JSON file"},
		{k.Import, "import tasks from a JSON file"},
		{k.Yank, "copy task text to the clipboard"},
		{k.Theme, "toggle dark/light theme"},
		{k.Cancel, "dismiss input, search or this help"},
		{k.Quit, "quit"},
	}
	var b strings.Builder
	b.WriteString("Shortcuts\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-8s %s\n", r.key, r.desc))
	}
	b.WriteString("\nPress any key to close.")
	return b.String()
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
