package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/task"
)

// Styles holds every lipgloss style the view uses. All color choices
// live here so the rest of the package carries no presentation logic.
type Styles struct {
	Dark bool

	Title     lipgloss.Style
	Loading   lipgloss.Style
	Cursor    lipgloss.Style
	Checkbox  lipgloss.Style
	TaskText  lipgloss.Style
	DoneText  lipgloss.Style
	Category  lipgloss.Style
	Due       lipgloss.Style
	Overdue   lipgloss.Style
	DueToday  lipgloss.Style
	Stats     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	HelpBox   lipgloss.Style
	InputName lipgloss.Style

	Priority map[task.Priority]lipgloss.Style
}

func priorityColors() map[task.Priority]lipgloss.Color {
	return map[task.Priority]lipgloss.Color{
		task.PriorityUrgent: lipgloss.Color("#d73a4a"),
		task.PriorityHigh:   lipgloss.Color("#fb8500"),
		task.PriorityMedium: lipgloss.Color("#ffc107"),
		task.PriorityLow:    lipgloss.Color("#4caf50"),
	}
}

// NewStyles builds the style set for the dark or light theme.
func NewStyles(dark bool) Styles {
	var (
		fg     = lipgloss.Color("#1a1a1a")
		dim    = lipgloss.Color("#767676")
		accent = lipgloss.Color("#0969da")
		danger = lipgloss.Color("#cf222e")
		warn   = lipgloss.Color("#9a6700")
		border = lipgloss.Color("#d0d7de")
	)
	if dark {
		fg = lipgloss.Color("#e6e6e6")
		dim = lipgloss.Color("#8b949e")
		accent = lipgloss.Color("#58a6ff")
		danger = lipgloss.Color("#f85149")
		warn = lipgloss.Color("#d29922")
		border = lipgloss.Color("#30363d")
	}

	s := Styles{
		Dark:      dark,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Loading:   lipgloss.NewStyle().Foreground(dim),
		Cursor:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Checkbox:  lipgloss.NewStyle().Foreground(dim),
		TaskText:  lipgloss.NewStyle().Foreground(fg),
		DoneText:  lipgloss.NewStyle().Foreground(dim).Strikethrough(true),
		Category:  lipgloss.NewStyle().Foreground(dim).Italic(true),
		Due:       lipgloss.NewStyle().Foreground(dim),
		Overdue:   lipgloss.NewStyle().Foreground(danger).Bold(true),
		DueToday:  lipgloss.NewStyle().Foreground(warn).Bold(true),
		Stats:     lipgloss.NewStyle().Foreground(dim),
		Status:    lipgloss.NewStyle().Foreground(fg),
		Error:     lipgloss.NewStyle().Foreground(danger),
		Help:      lipgloss.NewStyle().Foreground(dim),
		HelpBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 2),
		InputName: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Priority:  make(map[task.Priority]lipgloss.Style, 4),
	}
	for p, c := range priorityColors() {
		s.Priority[p] = lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return s
}

// PriorityBadge renders the short colored marker for a priority.
func (s Styles) PriorityBadge(p task.Priority) string {
	label := "?"
	switch p {
	case task.PriorityUrgent:
		label = "!!"
	case task.PriorityHigh:
		label = "!"
	case task.PriorityMedium:
		label = "-"
	case task.PriorityLow:
		label = "."
	}
	st, ok := s.Priority[p]
	if !ok {
		return label
	}
	return st.Render(label)
}
