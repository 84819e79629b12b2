package task

// Repo is the ordered in-memory task collection. It is the
// authoritative state for a session; persistence happens after the
// fact from a snapshot and never rolls a mutation back.
//
// All methods report whether they changed anything, so the caller
// knows when a persist is due.
type Repo struct {
	tasks []Task
}

// NewRepo wraps an initial collection, typically the startup load
// result. The slice is copied.
func NewRepo(tasks []Task) *Repo {
	r := &Repo{}
	r.tasks = append(r.tasks, tasks...)
	return r
}

// Len returns the number of tasks.
func (r *Repo) Len() int { return len(r.tasks) }

// Tasks returns a snapshot copy in collection order.
func (r *Repo) Tasks() []Task {
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Get looks a task up by id.
func (r *Repo) Get(id string) (Task, bool) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Add prepends a task (newest first). A task whose text trims to empty
// is ignored.
func (r *Repo) Add(t Task) bool {
	if err := t.Validate(); err != nil {
		return false
	}
	r.tasks = append([]Task{t}, r.tasks...)
	return true
}

// Update replaces the task with the given id by applying mutate to a
// copy. ID and CreatedAt are immutable; mutations to them are
// discarded. No-op when the id is absent or the result is invalid.
func (r *Repo) Update(id string, mutate func(Task) Task) bool {
	for i, t := range r.tasks {
		if t.ID != id {
			continue
		}
		next := mutate(t)
		next.ID = t.ID
		next.CreatedAt = t.CreatedAt
		if err := next.Validate(); err != nil {
			return false
		}
		r.tasks[i] = next
		return true
	}
	return false
}

// Remove deletes the task with the given id. No-op when absent.
func (r *Repo) Remove(id string) bool {
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveWhere deletes every task matching pred and returns how many
// were removed.
func (r *Repo) RemoveWhere(pred func(Task) bool) int {
	kept := r.tasks[:0]
	removed := 0
	for _, t := range r.tasks {
		if pred(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	r.tasks = kept
	return removed
}

// ReplaceAll swaps the whole collection, used by import. The incoming
// slice is copied.
func (r *Repo) ReplaceAll(tasks []Task) {
	r.tasks = r.tasks[:0]
	r.tasks = append(r.tasks, tasks...)
}

// Move shifts the task with the given id by delta positions within the
// collection, clamped to the ends. Returns false when the id is absent
// or the position does not change.
func (r *Repo) Move(id string, delta int) bool {
	from := -1
	for i, t := range r.tasks {
		if t.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to >= len(r.tasks) {
		to = len(r.tasks) - 1
	}
	if to == from {
		return false
	}
	t := r.tasks[from]
	r.tasks = append(r.tasks[:from], r.tasks[from+1:]...)
	rest := append([]Task{t}, r.tasks[to:]...)
	r.tasks = append(r.tasks[:to], rest...)
	return true
}
