// Package ui is the interaction controller: a Bubble Tea model that
// maps key presses to repository mutations and transient view
// parameters, and re-renders the derived view after every change.
package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/config"
	"taskdeck/internal/export"
	"taskdeck/internal/storage"
	"taskdeck/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeImport
)

// loadedMsg carries the one-time startup load result. A load error is
// absorbed into the empty default; the error is kept for logging only.
type loadedMsg struct {
	tasks []task.Task
	dark  bool
	err   error
}

// persistedMsg reports a fire-and-forget write. Failures are logged,
// never shown.
type persistedMsg struct {
	what string
	err  error
}

type Model struct {
	store *storage.Store
	cfg   config.Config

	repo  *task.Repo
	query task.Query
	edit  task.EditState

	loading bool
	spin    spinner.Model

	dark   bool
	styles Styles

	mode       mode
	input      textinput.Model
	cursor     int
	confirmDel bool
	pendingDel *task.Task
	showHelp   bool
	status     string
}

// Run starts the program and blocks until the user quits.
func Run(store *storage.Store, cfg config.Config) error {
	program := tea.NewProgram(NewModel(store, cfg))
	_, err := program.Run()
	return err
}

// NewModel builds the initial model in its loading state.
func NewModel(store *storage.Store, cfg config.Config) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Line

	return Model{
		store:   store,
		cfg:     cfg,
		repo:    task.NewRepo(nil),
		loading: true,
		spin:    sp,
		styles:  NewStyles(false),
		input:   ti,
		mode:    modeList,
		query: task.Query{
			Status:        task.ParseStatusFilter(cfg.DefaultFilter),
			Sort:          task.SortCreated,
			ShowCompleted: cfg.ShowCompleted,
		},
		status: "Press 'a' to add a task, '?' for all shortcuts.",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, loadCmd(m.store))
}

// loadCmd is the one-time startup read of both persisted entries.
func loadCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		tasks, err := store.LoadTasks()
		if err != nil {
			return loadedMsg{err: err}
		}
		dark, err := store.LoadTheme()
		if err != nil {
			return loadedMsg{tasks: tasks, err: err}
		}
		return loadedMsg{tasks: tasks, dark: dark}
	}
}

// persistTasks snapshots the collection and writes it off the event
// loop. In-memory state stays authoritative whatever the outcome.
func (m Model) persistTasks() tea.Cmd {
	store := m.store
	tasks := m.repo.Tasks()
	return func() tea.Msg {
		return persistedMsg{what: "tasks", err: store.SaveTasks(tasks)}
	}
}

func (m Model) persistTheme() tea.Cmd {
	store := m.store
	dark := m.dark
	return func() tea.Msg {
		return persistedMsg{what: "theme", err: store.SaveTheme(dark)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		m.repo = task.NewRepo(msg.tasks)
		m.dark = msg.dark
		m.styles = NewStyles(m.dark)
		if msg.err != nil {
			log.Printf("startup load degraded to defaults: %v", msg.err)
		}
		return m, nil

	case persistedMsg:
		if msg.err != nil {
			log.Printf("persist %s failed: %v", msg.what, msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			// No interaction until the load resolves.
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.showHelp {
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		m.showHelp = false
		return m, nil
	}
	if m.confirmDel {
		return m.updateDeleteConfirm(key)
	}
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	case modeSearch:
		return m.updateSearchMode(key, msg)
	case modeImport:
		return m.updateImportMode(key, msg)
	default:
		return m.updateListMode(key)
	}
}

// view is the derived projection shown on screen.
func (m Model) view() []task.Task {
	return m.query.Apply(m.repo.Tasks())
}

// selected returns the task under the cursor in the current view.
func (m Model) selected() (task.Task, bool) {
	view := m.view()
	if len(view) == 0 {
		return task.Task{}, false
	}
	return view[clampCursor(m.cursor, len(view))], true
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit

	case k.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.view()))
	case k.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.view()))
		}

	case k.Add:
		m.mode = modeAdd
		m.input.Placeholder = "Task text"
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Add: type the task and press enter."

	case k.Toggle:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.repo.Update(t.ID, func(t task.Task) task.Task {
			t.Completed = !t.Completed
			return t
		})
		m.cursor = clampCursor(m.cursor, len(m.view()))
		return m, m.persistTasks()

	case k.Delete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Text)

	case k.Edit:
		t, ok := m.selected()
		if !ok {
			m.status = "Nothing to edit."
			return m, nil
		}
		m.edit.Start(t)
		m.mode = modeEdit
		m.input.Placeholder = "Task text"
		m.input.SetValue(t.Text)
		m.input.CursorEnd()
		m.input.Focus()
		m.status = "Edit: enter saves, esc discards, empty text discards."

	case k.Search:
		m.mode = modeSearch
		m.input.Placeholder = "Search text or category"
		m.input.SetValue(m.query.Search)
		m.input.CursorEnd()
		m.input.Focus()
		m.status = "Search: matches task text or category."

	case k.Filter:
		m.query.Status = m.query.Status.Next()
		m.cursor = 0
		m.status = fmt.Sprintf("Filter: %s", m.query.Status)

	case k.ShowCompleted:
		m.query.ShowCompleted = !m.query.ShowCompleted
		m.cursor = clampCursor(m.cursor, len(m.view()))
		if m.query.ShowCompleted {
			m.status = "Completed tasks shown."
		} else {
			m.status = "Completed tasks hidden in the all view."
		}

	case k.SortCreated:
		m.query.Sort = task.SortCreated
		m.status = "Sorted by creation time, newest first."
	case k.SortPriority:
		m.query.Sort = task.SortPriority
		m.status = "Sorted by priority."
	case k.SortDue:
		m.query.Sort = task.SortDue
		m.status = "Sorted by due date; undated tasks last."

	case k.MoveUp:
		return m.moveSelected(-1)
	case k.MoveDown:
		return m.moveSelected(1)

	case k.PriorityCycle:
		return m.updateSelected(func(t task.Task) task.Task {
			t.Priority = t.Priority.Next()
			return t
		}, "Priority: %s", func(t task.Task) any { return t.Priority })

	case k.CategoryCycle:
		return m.updateSelected(func(t task.Task) task.Task {
			t.Category = t.Category.Next()
			return t
		}, "Category: %s", func(t task.Task) any { return t.Category })

	case k.DueForward:
		return m.bumpDue(1)
	case k.DueBack:
		return m.bumpDue(-1)

	case k.ClearCompleted:
		removed := m.repo.RemoveWhere(func(t task.Task) bool { return t.Completed })
		m.cursor = clampCursor(m.cursor, len(m.view()))
		m.status = fmt.Sprintf("Cleared %d completed task(s).", removed)
		if removed == 0 {
			return m, nil
		}
		return m, m.persistTasks()

	case k.Export:
		path, err := export.Write(m.repo.Tasks(), m.cfg.ExportDir, time.Now())
		if err != nil {
			m.status = fmt.Sprintf("Export failed: %v", err)
			return m, nil
		}
		m.status = fmt.Sprintf("Exported to %s", path)

	case k.Import:
		m.mode = modeImport
		m.input.Placeholder = "Path to a task export (.json)"
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Import: the file replaces the whole collection."

	case k.Theme:
		m.dark = !m.dark
		m.styles = NewStyles(m.dark)
		return m, m.persistTheme()

	case k.Help:
		m.showHelp = true

	case k.Yank:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := clipboard.WriteAll(t.Text); err != nil {
			log.Printf("clipboard write failed: %v", err)
			return m, nil
		}
		m.status = "Copied task text."

	case k.Cancel, "esc":
		// Dismiss-all: drop the search, reset the status line.
		m.query.Search = ""
		m.cursor = clampCursor(m.cursor, len(m.view()))
		m.status = ""
	}
	return m, nil
}

// updateSelected applies mutate to the task under the cursor and
// persists when something changed.
func (m Model) updateSelected(mutate func(task.Task) task.Task, format string, arg func(task.Task) any) (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	if !m.repo.Update(t.ID, mutate) {
		return m, nil
	}
	if after, ok := m.repo.Get(t.ID); ok {
		m.status = fmt.Sprintf(format, arg(after))
	}
	return m, m.persistTasks()
}

// moveSelected reorders the task under the cursor within the full
// collection. Reordering is only meaningful when the view is the full
// collection, so it is refused under any filter or search.
func (m Model) moveSelected(delta int) (tea.Model, tea.Cmd) {
	if !m.query.Unfiltered() {
		m.status = "Reordering needs the full view: filter all, completed shown, no search."
		return m, nil
	}
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.query.Sort = task.SortManual
	if !m.repo.Move(t.ID, delta) {
		return m, nil
	}
	for i, v := range m.view() {
		if v.ID == t.ID {
			m.cursor = i
			break
		}
	}
	m.status = "Reordered; manual order stays until a sort is chosen."
	return m, m.persistTasks()
}

// bumpDue shifts the selected task's due date by days. An unset due
// date starts at today when bumping forward; bumping back below an
// unset date does nothing.
func (m Model) bumpDue(days int) (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	if t.DueDate == "" && days < 0 {
		return m, nil
	}
	changed := m.repo.Update(t.ID, func(t task.Task) task.Task {
		due, ok := t.Due()
		if !ok {
			t.DueDate = time.Now().Format(task.DateLayout)
			return t
		}
		t.DueDate = due.AddDate(0, 0, days).Format(task.DateLayout)
		return t
	})
	if !changed {
		return m, nil
	}
	if after, ok := m.repo.Get(t.ID); ok {
		m.status = fmt.Sprintf("Due: %s", after.DueDate)
	}
	return m, m.persistTasks()
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled."
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		text := strings.TrimSpace(m.input.Value())
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		if text == "" {
			// Whitespace-only add is a silent no-op.
			m.status = ""
			return m, nil
		}
		m.repo.Add(task.New(text, time.Now()))
		m.cursor = 0
		m.status = "Added task."
		return m, m.persistTasks()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.edit.Cancel()
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Edit cancelled."
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.edit.SetDraft(m.input.Value())
		id, text, ok := m.edit.Commit()
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		if !ok {
			// Empty draft discards the edit without touching the task.
			m.status = "Edit discarded."
			return m, nil
		}
		if !m.repo.Update(id, func(t task.Task) task.Task {
			t.Text = text
			return t
		}) {
			// The task was deleted while editing; nothing to commit.
			m.status = "Task no longer exists."
			return m, nil
		}
		m.status = "Saved."
		return m, m.persistTasks()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.edit.SetDraft(m.input.Value())
		return m, cmd
	}
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.query.Search = ""
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.cursor = 0
		m.status = "Search cleared."
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.mode = modeList
		m.input.Blur()
		m.status = ""
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		// Incremental: the view narrows as the query is typed.
		m.query.Search = m.input.Value()
		m.cursor = 0
		return m, cmd
	}
}

func (m Model) updateImportMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Import cancelled."
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		path := strings.TrimSpace(m.input.Value())
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		if path == "" {
			m.status = "Import cancelled."
			return m, nil
		}
		tasks, err := export.Read(path)
		if err != nil {
			// The one user-visible failure; existing tasks stay put.
			m.status = fmt.Sprintf("Import failed: %v", err)
			return m, nil
		}
		m.repo.ReplaceAll(tasks)
		m.cursor = 0
		m.status = fmt.Sprintf("Imported %d task(s).", len(tasks))
		return m, m.persistTasks()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.confirmDel = false
		if m.pendingDel == nil {
			return m, nil
		}
		id := m.pendingDel.ID
		m.pendingDel = nil
		if !m.repo.Remove(id) {
			m.status = "Task already gone."
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, len(m.view()))
		m.status = "Deleted task."
		return m, m.persistTasks()
	case "n", "N", "esc", m.cfg.Keys.Cancel:
		m.confirmDel = false
		m.pendingDel = nil
		m.status = "Delete cancelled."
		return m, nil
	default:
		return m, nil
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
