package task

import (
	"fmt"
	"testing"
	"time"
)

func mkTask(text string) Task {
	return New(text, time.Now())
}

func TestRepo_AddPrepends(t *testing.T) {
	r := NewRepo(nil)
	first := mkTask("first")
	second := mkTask("second")
	if !r.Add(first) || !r.Add(second) {
		t.Fatal("Add failed")
	}
	tasks := r.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}
	if tasks[0].ID != second.ID {
		t.Errorf("newest task should be first, got %q", tasks[0].Text)
	}
}

func TestRepo_AddWhitespaceOnlyIsNoop(t *testing.T) {
	r := NewRepo(nil)
	if r.Add(New("   \t ", time.Now())) {
		t.Error("whitespace-only add should report no change")
	}
	if r.Len() != 0 {
		t.Errorf("len = %d, want 0", r.Len())
	}
}

func TestRepo_IDUniqueness(t *testing.T) {
	r := NewRepo(nil)
	for i := 0; i < 50; i++ {
		r.Add(mkTask(fmt.Sprintf("task %d", i)))
	}
	r.Remove(r.Tasks()[10].ID)
	r.Update(r.Tasks()[3].ID, func(t Task) Task {
		t.Text = "renamed"
		return t
	})

	seen := map[string]bool{}
	for _, task := range r.Tasks() {
		if seen[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestRepo_UpdatePreservesIdentity(t *testing.T) {
	r := NewRepo(nil)
	orig := mkTask("buy milk")
	r.Add(orig)

	changed := r.Update(orig.ID, func(t Task) Task {
		t.Text = "buy oat milk"
		t.ID = "hijacked"
		t.CreatedAt = t.CreatedAt.Add(time.Hour)
		return t
	})
	if !changed {
		t.Fatal("Update reported no change")
	}
	got, ok := r.Get(orig.ID)
	if !ok {
		t.Fatal("task vanished")
	}
	if got.Text != "buy oat milk" {
		t.Errorf("Text = %q", got.Text)
	}
	if !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Error("CreatedAt must be immutable")
	}
}

func TestRepo_UpdateEmptyTextRejected(t *testing.T) {
	r := NewRepo(nil)
	orig := mkTask("keep me")
	r.Add(orig)
	if r.Update(orig.ID, func(t Task) Task {
		t.Text = "   "
		return t
	}) {
		t.Error("empty-text update should be rejected")
	}
	got, _ := r.Get(orig.ID)
	if got.Text != "keep me" {
		t.Errorf("Text = %q, want unchanged", got.Text)
	}
}

func TestRepo_UpdateAbsentIsNoop(t *testing.T) {
	r := NewRepo(nil)
	r.Add(mkTask("a"))
	if r.Update("missing", func(t Task) Task { return t }) {
		t.Error("update of absent id should be a no-op")
	}
}

func TestRepo_RemoveAbsentIsNoop(t *testing.T) {
	r := NewRepo(nil)
	r.Add(mkTask("a"))
	if r.Remove("missing") {
		t.Error("remove of absent id should be a no-op")
	}
	if r.Len() != 1 {
		t.Errorf("len = %d, want 1", r.Len())
	}
}

func TestRepo_RemoveWhereClearsExactlyCompleted(t *testing.T) {
	r := NewRepo(nil)
	done := mkTask("done")
	done.Completed = true
	alsoDone := mkTask("also done")
	alsoDone.Completed = true
	open := mkTask("open")
	r.Add(done)
	r.Add(open)
	r.Add(alsoDone)

	removed := r.RemoveWhere(func(t Task) bool { return t.Completed })
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	tasks := r.Tasks()
	if len(tasks) != 1 || tasks[0].ID != open.ID {
		t.Errorf("survivors = %v, want only the open task", tasks)
	}
}

func TestRepo_Move(t *testing.T) {
	r := NewRepo(nil)
	a := mkTask("a")
	b := mkTask("b")
	c := mkTask("c")
	r.ReplaceAll([]Task{a, b, c})

	if !r.Move(c.ID, -1) {
		t.Fatal("move up reported no change")
	}
	order := func() []string {
		var ids []string
		for _, t := range r.Tasks() {
			ids = append(ids, t.Text)
		}
		return ids
	}
	got := order()
	want := []string{"a", "c", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	// Clamped at the top edge.
	if !r.Move(c.ID, -5) {
		t.Fatal("clamped move should still change position")
	}
	if order()[0] != "c" {
		t.Errorf("order = %v, want c first", order())
	}
	if r.Move(c.ID, -1) {
		t.Error("moving the first task up should be a no-op")
	}
	if r.Move("missing", 1) {
		t.Error("moving an absent id should be a no-op")
	}
}

func TestRepo_ReplaceAllCopies(t *testing.T) {
	in := []Task{mkTask("x"), mkTask("y")}
	r := NewRepo(nil)
	r.ReplaceAll(in)
	in[0].Text = "mutated"
	if r.Tasks()[0].Text != "x" {
		t.Error("ReplaceAll must copy the input slice")
	}
}

func TestRepo_Scenario_BuyMilk(t *testing.T) {
	r := NewRepo(nil)
	milk := New("Buy milk", time.Now())
	milk.Category = CategoryShopping
	milk.Priority = PriorityMedium
	if !r.Add(milk) {
		t.Fatal("add failed")
	}

	s := Summarize(r.Tasks(), time.Now())
	if s.Total != 1 || s.Active != 1 || s.Completed != 0 {
		t.Fatalf("after add: %+v", s)
	}

	r.Update(milk.ID, func(t Task) Task {
		t.Completed = !t.Completed
		return t
	})
	s = Summarize(r.Tasks(), time.Now())
	if s.Active != 0 || s.Completed != 1 {
		t.Fatalf("after toggle: %+v", s)
	}

	r.RemoveWhere(func(t Task) bool { return t.Completed })
	if r.Len() != 0 {
		t.Fatalf("after clear completed: len = %d, want 0", r.Len())
	}
}
