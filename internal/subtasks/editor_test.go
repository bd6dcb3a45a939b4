package subtasks

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nikitabhat/focusd/internal/model"
)

func testEditor(subs ...model.Subtask) Editor {
	e := NewEditor(subs)
	n := 0
	e.newID = func() string {
		n++
		return fmt.Sprintf("sub-%d", n)
	}
	return e
}

func TestAddBlankTextIsNoOp(t *testing.T) {
	e := testEditor()
	next := e.Add("   ")
	if len(next.Subtasks) != 0 {
		t.Fatalf("expected no subtasks, got %d", len(next.Subtasks))
	}
}

func TestAddTrimsAndDefaults(t *testing.T) {
	e := testEditor(model.Subtask{ID: "existing", Text: "first", Order: 1})
	next := e.Add("  Study  ")
	if len(next.Subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(next.Subtasks))
	}
	got := next.Subtasks[1]
	if got.Text != "Study" || got.Title != "Study" {
		t.Fatalf("title/text not trimmed and mirrored: %+v", got)
	}
	if got.Order != 2 {
		t.Fatalf("expected order 2, got %d", got.Order)
	}
	if got.AIEstimatedDuration != 30 {
		t.Fatalf("expected default estimate 30, got %d", got.AIEstimatedDuration)
	}
	if got.Difficulty != model.DifficultyMedium || got.Phase != model.PhasePractice {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if got.Completed {
		t.Fatal("new subtask must start incomplete")
	}
	if got.Skills == nil || len(got.Skills) != 0 {
		t.Fatalf("expected empty skills, got %v", got.Skills)
	}
	if got.Resources == nil || len(got.Resources) != 0 {
		t.Fatalf("expected empty resources, got %v", got.Resources)
	}
	if len(e.Subtasks) != 1 {
		t.Fatal("add must not mutate the previous state")
	}
}

func TestAddClearsPendingInput(t *testing.T) {
	e := testEditor()
	e.Pending = "Study"
	next := e.Add(e.Pending)
	if next.Pending != "" {
		t.Fatalf("expected cleared pending input, got %q", next.Pending)
	}
}

func TestOrderKeepsGapsAfterRemoval(t *testing.T) {
	e := testEditor()
	e = e.Add("one")
	e = e.Add("two")
	e = e.Add("three")

	e, _ = e.RequestRemove(e.Subtasks[1].ID)
	e = e.ConfirmRemove()
	if len(e.Subtasks) != 2 {
		t.Fatalf("expected 2 after removal, got %d", len(e.Subtasks))
	}
	if e.Subtasks[0].Order != 1 || e.Subtasks[1].Order != 3 {
		t.Fatalf("orders must not be renumbered: %d, %d", e.Subtasks[0].Order, e.Subtasks[1].Order)
	}

	e = e.Add("four")
	if got := e.Subtasks[2].Order; got != 3 {
		t.Fatalf("append order is length+1, want 3, got %d", got)
	}
}

func TestRemoveIsTwoPhase(t *testing.T) {
	e := testEditor()
	e = e.Add("keep me")
	id := e.Subtasks[0].ID

	requested, prompt := e.RequestRemove(id)
	if prompt.SubtaskID != id || prompt.Title != "keep me" {
		t.Fatalf("unexpected prompt: %+v", prompt)
	}
	if len(requested.Subtasks) != 1 {
		t.Fatal("request alone must not remove")
	}

	cancelled := requested.CancelRemove()
	if len(cancelled.Subtasks) != 1 {
		t.Fatal("cancel must leave the collection untouched")
	}
	if _, pending := cancelled.PendingRemoval(); pending {
		t.Fatal("cancel must clear the pending removal")
	}

	confirmed := requested.ConfirmRemove()
	if len(confirmed.Subtasks) != 0 {
		t.Fatal("confirm must remove the subtask")
	}
}

func TestConfirmRemoveMissingIDIsNoOp(t *testing.T) {
	e := testEditor(model.Subtask{ID: "a", Text: "a"})
	e, _ = e.RequestRemove("ghost")
	next := e.ConfirmRemove()
	if len(next.Subtasks) != 1 {
		t.Fatal("removing a missing id must be a silent no-op")
	}
}

func TestBeginEditDurationSeedsBuffer(t *testing.T) {
	e := testEditor(
		model.Subtask{ID: "a", Text: "a", AIEstimatedDuration: 45},
		model.Subtask{ID: "b", Text: "b"},
	)
	opened := e.BeginEditDuration("a")
	if buf := opened.DurationBuffer(); buf != "45" {
		t.Fatalf("expected buffer 45, got %q", buf)
	}
	opened = e.BeginEditDuration("b")
	if buf := opened.DurationBuffer(); buf != "30" {
		t.Fatalf("unset estimate must seed 30, got %q", buf)
	}
}

func TestNewEditAbandonsPreviousBuffer(t *testing.T) {
	e := testEditor(
		model.Subtask{ID: "a", Text: "a", AIEstimatedDuration: 45},
		model.Subtask{ID: "b", Text: "b", AIEstimatedDuration: 10},
	)
	e = e.BeginEditDuration("a")
	e = e.SetDurationBuffer("999")
	e = e.BeginEditDuration("b")
	if id, _ := e.Editing(); id != "b" {
		t.Fatalf("expected editing b, got %q", id)
	}
	if buf := e.DurationBuffer(); buf != "10" {
		t.Fatalf("previous buffer must be abandoned, got %q", buf)
	}
	if e.Subtasks[0].AIEstimatedDuration != 45 {
		t.Fatal("abandoning an edit must not write")
	}
}

func TestCommitEditDurationRejectsInvalid(t *testing.T) {
	for _, bad := range []string{"abc", "0", "-5", ""} {
		e := testEditor(model.Subtask{ID: "a", Text: "a", AIEstimatedDuration: 45})
		e = e.BeginEditDuration("a")
		e = e.SetDurationBuffer(bad)
		next, err := e.CommitEditDuration()
		if !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("buffer %q: expected ErrInvalidDuration, got %v", bad, err)
		}
		if next.Subtasks[0].AIEstimatedDuration != 45 {
			t.Fatalf("buffer %q: estimate must be unchanged", bad)
		}
		if _, editing := next.Editing(); !editing {
			t.Fatalf("buffer %q: edit must stay open on failure", bad)
		}
	}
}

func TestCommitEditDurationSuccess(t *testing.T) {
	e := testEditor(
		model.Subtask{ID: "a", Text: "a", AIEstimatedDuration: 45, EstimatedDuration: 20},
		model.Subtask{ID: "b", Text: "b", AIEstimatedDuration: 15},
	)
	e = e.BeginEditDuration("a")
	e = e.SetDurationBuffer(" 60 ")
	next, err := e.CommitEditDuration()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Subtasks[0].AIEstimatedDuration != 60 {
		t.Fatalf("expected 60, got %d", next.Subtasks[0].AIEstimatedDuration)
	}
	if next.Subtasks[0].EstimatedDuration != 20 {
		t.Fatal("commit must only touch AIEstimatedDuration")
	}
	if next.Subtasks[1].AIEstimatedDuration != 15 {
		t.Fatal("other subtasks must be untouched")
	}
	if _, editing := next.Editing(); editing {
		t.Fatal("successful commit must close the edit")
	}
	if next.DurationBuffer() != "" {
		t.Fatal("successful commit must clear the buffer")
	}
}

func TestCancelEditDuration(t *testing.T) {
	e := testEditor(model.Subtask{ID: "a", Text: "a", AIEstimatedDuration: 45})
	e = e.BeginEditDuration("a")
	e = e.SetDurationBuffer("abc")
	next := e.CancelEditDuration()
	if _, editing := next.Editing(); editing {
		t.Fatal("cancel must close the edit")
	}
	if next.DurationBuffer() != "" {
		t.Fatal("cancel must clear the buffer")
	}
	if next.Subtasks[0].AIEstimatedDuration != 45 {
		t.Fatal("cancel must not write")
	}
}

func TestToggle(t *testing.T) {
	e := testEditor(model.Subtask{ID: "a", Text: "a"})
	next := e.Toggle("a")
	if !next.Subtasks[0].Completed {
		t.Fatal("expected completed after toggle")
	}
	if e.Subtasks[0].Completed {
		t.Fatal("toggle must not mutate the previous state")
	}
	same := next.Toggle("ghost")
	if !same.Subtasks[0].Completed {
		t.Fatal("toggling a missing id must be a no-op")
	}
}

func TestDefaultIDsAreTimeBased(t *testing.T) {
	e := NewEditor(nil)
	e = e.Add("one")
	if len(e.Subtasks) != 1 || e.Subtasks[0].ID == "" {
		t.Fatalf("expected generated id, got %+v", e.Subtasks)
	}
}
