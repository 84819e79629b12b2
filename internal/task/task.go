// Package task holds the in-memory task model: the record type, the
// ordered repository, the derived-view queries, and the inline-edit
// state machine. Nothing in this package performs I/O.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	errMissingID   = errors.New("task has no id")
	errEmptyText   = errors.New("task text is empty")
	errBadPriority = errors.New("unknown priority")
	errBadCategory = errors.New("unknown category")
	errBadDueDate  = errors.New("due date is not YYYY-MM-DD")
)

// DateLayout is the calendar-date format used for due dates everywhere
// (storage, export, UI input).
const DateLayout = "2006-01-02"

// Priority of a task. Serialized as its string value.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities for sorting: urgent first, low last.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Next cycles low -> medium -> high -> urgent -> low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	case PriorityHigh:
		return PriorityUrgent
	default:
		return PriorityLow
	}
}

// Category of a task. Serialized as its string value.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryShopping, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

// Next cycles through the categories in declaration order.
func (c Category) Next() Category {
	switch c {
	case CategoryPersonal:
		return CategoryWork
	case CategoryWork:
		return CategoryShopping
	case CategoryShopping:
		return CategoryHealth
	case CategoryHealth:
		return CategoryOther
	default:
		return CategoryPersonal
	}
}

// Task is a single to-do entry.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	Category  Category  `json:"category"`
	DueDate   string    `json:"due_date,omitempty"` // YYYY-MM-DD, empty = none
	CreatedAt time.Time `json:"created_at"`
	Notes     string    `json:"notes,omitempty"`
}

// New builds a task with a fresh ID and defaults. The text is trimmed;
// callers must reject whitespace-only text before calling New.
func New(text string, now time.Time) Task {
	return Task{
		ID:        uuid.New().String(),
		Text:      strings.TrimSpace(text),
		Priority:  PriorityMedium,
		Category:  CategoryPersonal,
		CreatedAt: now,
	}
}

// Due returns the parsed due date and whether one is set.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Validate checks the record invariants: non-empty id and text, known
// priority and category, well-formed due date when present.
func (t Task) Validate() error {
	if t.ID == "" {
		return errMissingID
	}
	if strings.TrimSpace(t.Text) == "" {
		return errEmptyText
	}
	if !t.Priority.Valid() {
		return errBadPriority
	}
	if !t.Category.Valid() {
		return errBadCategory
	}
	if t.DueDate != "" {
		if _, err := time.Parse(DateLayout, t.DueDate); err != nil {
			return errBadDueDate
		}
	}
	return nil
}
