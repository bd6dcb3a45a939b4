// Package subtasks holds the mutation handlers for a task's subtask
// collection. The Editor follows the same value-in, value-out convention as
// the rest of the app: every operation returns the next editor state and
// leaves the previous slice untouched, so change detection by reference
// comparison keeps working.
package subtasks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nikitabhat/focusd/internal/model"
)

var ErrInvalidDuration = errors.New("subtasks: duration must be a positive number of minutes")

// RemovalPrompt describes a pending delete for the confirmation dialog.
type RemovalPrompt struct {
	SubtaskID string
	Title     string
	Message   string
}

// Editor carries a subtask collection together with its transient editing
// state: the quick-add buffer, the single duration edit slot, and a pending
// removal awaiting confirmation.
type Editor struct {
	Subtasks []model.Subtask
	Pending  string

	editingID      string
	durationBuffer string
	removalID      string

	newID func() string
}

func NewEditor(subs []model.Subtask) Editor {
	return Editor{Subtasks: subs}
}

// Add appends a subtask built from the trimmed text. Blank text is a silent
// no-op. New subtasks start in the practice phase with a 30 minute estimate
// and an order of previous length plus one; removal gaps are never closed.
func (e Editor) Add(text string) Editor {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return e
	}
	sub := model.Subtask{
		ID:                  e.nextID(),
		Title:               trimmed,
		Text:                trimmed,
		Completed:           false,
		AIEstimatedDuration: 30,
		Difficulty:          model.DifficultyMedium,
		Order:               len(e.Subtasks) + 1,
		Phase:               model.PhasePractice,
		Skills:              []string{},
		Resources:           []model.Resource{},
	}
	next := make([]model.Subtask, 0, len(e.Subtasks)+1)
	next = append(next, e.Subtasks...)
	next = append(next, sub)
	e.Subtasks = next
	e.Pending = ""
	return e
}

// RequestRemove records the subtask as pending deletion and returns the
// prompt for the confirmation dialog. Nothing is removed until
// ConfirmRemove.
func (e Editor) RequestRemove(id string) (Editor, RemovalPrompt) {
	e.removalID = id
	title := ""
	for _, s := range e.Subtasks {
		if s.ID == id {
			title = s.Title
			break
		}
	}
	return e, RemovalPrompt{
		SubtaskID: id,
		Title:     title,
		Message:   fmt.Sprintf("Delete subtask %q?", title),
	}
}

// ConfirmRemove deletes the pending subtask. A missing id (already gone, or
// nothing requested) is a silent no-op.
func (e Editor) ConfirmRemove() Editor {
	id := e.removalID
	e.removalID = ""
	if id == "" {
		return e
	}
	next := make([]model.Subtask, 0, len(e.Subtasks))
	for _, s := range e.Subtasks {
		if s.ID != id {
			next = append(next, s)
		}
	}
	e.Subtasks = next
	return e
}

// CancelRemove drops the pending removal without touching the collection.
func (e Editor) CancelRemove() Editor {
	e.removalID = ""
	return e
}

// PendingRemoval returns the id awaiting delete confirmation, if any.
func (e Editor) PendingRemoval() (string, bool) {
	return e.removalID, e.removalID != ""
}

// BeginEditDuration opens the duration edit slot for the subtask, seeding
// the buffer from its current estimate ("30" when unset). Opening a new edit
// abandons any unsaved buffer from a previous one.
func (e Editor) BeginEditDuration(id string) Editor {
	e.editingID = id
	e.durationBuffer = "30"
	for _, s := range e.Subtasks {
		if s.ID == id && s.AIEstimatedDuration > 0 {
			e.durationBuffer = strconv.Itoa(s.AIEstimatedDuration)
			break
		}
	}
	return e
}

// SetDurationBuffer replaces the edit buffer text.
func (e Editor) SetDurationBuffer(text string) Editor {
	e.durationBuffer = text
	return e
}

// CommitEditDuration parses the buffer and writes the new estimate. A
// non-numeric or non-positive value returns ErrInvalidDuration with the edit
// still open and no subtask changed. Success closes the edit and clears the
// buffer; only AIEstimatedDuration of the edited subtask is written.
func (e Editor) CommitEditDuration() (Editor, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(e.durationBuffer))
	if err != nil || minutes <= 0 {
		return e, ErrInvalidDuration
	}
	next := make([]model.Subtask, len(e.Subtasks))
	copy(next, e.Subtasks)
	for i := range next {
		if next[i].ID == e.editingID {
			next[i].AIEstimatedDuration = minutes
			break
		}
	}
	e.Subtasks = next
	e.editingID = ""
	e.durationBuffer = ""
	return e, nil
}

// CancelEditDuration closes the edit slot without writing anything.
func (e Editor) CancelEditDuration() Editor {
	e.editingID = ""
	e.durationBuffer = ""
	return e
}

// Editing returns the id under duration edit and whether one is open.
func (e Editor) Editing() (string, bool) {
	return e.editingID, e.editingID != ""
}

func (e Editor) DurationBuffer() string {
	return e.durationBuffer
}

// Toggle flips the completion flag of the matching subtask. A missing id is
// a silent no-op.
func (e Editor) Toggle(id string) Editor {
	next := make([]model.Subtask, len(e.Subtasks))
	copy(next, e.Subtasks)
	for i := range next {
		if next[i].ID == id {
			next[i].Completed = !next[i].Completed
			break
		}
	}
	e.Subtasks = next
	return e
}

// Collisions within one session are accepted as negligible; ids only need
// to be unique within the owning task.
func (e Editor) nextID() string {
	if e.newID != nil {
		return e.newID()
	}
	return fmt.Sprintf("sub-%d", time.Now().UnixNano())
}
