package task

import "strings"

// EditState is the inline-edit state machine: idle, or editing exactly
// one task identified by id with a draft text buffer. The zero value
// is idle.
type EditState struct {
	id    string
	draft string
}

// Editing reports whether an edit is in progress and for which task.
func (e EditState) Editing() (id string, ok bool) {
	return e.id, e.id != ""
}

// Draft returns the current draft text.
func (e EditState) Draft() string { return e.draft }

// Start begins editing t, seeding the draft from its text. Any edit
// already in progress is abandoned.
func (e *EditState) Start(t Task) {
	e.id = t.ID
	e.draft = t.Text
}

// SetDraft replaces the draft buffer. Ignored when idle.
func (e *EditState) SetDraft(s string) {
	if e.id == "" {
		return
	}
	e.draft = s
}

// Commit ends the edit. It returns the task id and trimmed text with
// ok=true only when the draft trims non-empty; an empty draft discards
// the edit. Either way the machine returns to idle.
func (e *EditState) Commit() (id, text string, ok bool) {
	id = e.id
	text = strings.TrimSpace(e.draft)
	e.id = ""
	e.draft = ""
	if id == "" || text == "" {
		return "", "", false
	}
	return id, text, true
}

// Cancel returns to idle without committing.
func (e *EditState) Cancel() {
	e.id = ""
	e.draft = ""
}
