package task

import (
	"sort"
	"strings"
	"time"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// Next cycles all -> active -> completed -> all.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// ParseStatusFilter maps a config string to a filter, defaulting to all.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterActive:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// SortKey selects the ordering of the derived view.
type SortKey string

const (
	// SortManual keeps the collection order; it is selected implicitly
	// when the user reorders tasks.
	SortManual   SortKey = "manual"
	SortCreated  SortKey = "created"
	SortPriority SortKey = "priority"
	SortDue      SortKey = "due"
)

// Query holds the transient view parameters. The zero value shows the
// full collection in manual order.
type Query struct {
	Status StatusFilter
	Search string
	Sort   SortKey

	// ShowCompleted only matters when Status is FilterAll; when false,
	// completed tasks are hidden from the all view.
	ShowCompleted bool
}

// Unfiltered reports whether the query passes the whole collection
// through, which is the precondition for manual reordering.
func (q Query) Unfiltered() bool {
	return (q.Status == FilterAll || q.Status == "") &&
		q.ShowCompleted &&
		strings.TrimSpace(q.Search) == ""
}

// Apply computes the derived view: status filter, then search, then
// sort. The input slice is never modified.
func (q Query) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, t := range tasks {
		switch q.Status {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		default:
			if !q.ShowCompleted && t.Completed {
				continue
			}
		}
		if needle != "" {
			text := strings.ToLower(t.Text)
			cat := strings.ToLower(string(t.Category))
			if !strings.Contains(text, needle) && !strings.Contains(cat, needle) {
				continue
			}
		}
		out = append(out, t)
	}

	switch q.Sort {
	case SortCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	case SortDue:
		sort.SliceStable(out, func(i, j int) bool {
			return dueLess(out[i], out[j])
		})
	}
	return out
}

// dueLess orders by due date ascending; tasks without a due date sort
// after every dated task.
func dueLess(a, b Task) bool {
	ad, aok := a.Due()
	bd, bok := b.Due()
	switch {
	case aok && bok:
		return ad.Before(bd)
	case aok:
		return true
	default:
		return false
	}
}

// Stats are summary counts over the unfiltered collection.
type Stats struct {
	Total     int
	Active    int
	Completed int
	Overdue   int
	DueToday  int
}

// Summarize counts the collection relative to now. Overdue means not
// completed with a due date on an earlier calendar day; a task due
// today is never overdue.
func Summarize(tasks []Task, now time.Time) Stats {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var s Stats
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
			continue
		}
		s.Active++
		due, ok := t.Due()
		if !ok {
			continue
		}
		due = time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
		switch {
		case due.Before(today):
			s.Overdue++
		case due.Equal(today):
			s.DueToday++
		}
	}
	return s
}
