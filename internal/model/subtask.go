package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPhase = errors.New("model: invalid subtask phase")

type Phase string

const (
	PhaseKnowledge   Phase = "knowledge"
	PhasePractice    Phase = "practice"
	PhaseApplication Phase = "application"
	PhaseReflection  Phase = "reflection"
	PhaseOutput      Phase = "output"
	// PhaseReview never appears on newly created subtasks but is accepted
	// by label, icon, and color lookups for historical data.
	PhaseReview Phase = "review"
)

// CanonicalPhases is the fixed ordering used by phase histograms.
var CanonicalPhases = []Phase{
	PhaseKnowledge,
	PhasePractice,
	PhaseApplication,
	PhaseReflection,
	PhaseOutput,
}

func (p Phase) IsValid() bool {
	switch p {
	case PhaseKnowledge, PhasePractice, PhaseApplication, PhaseReflection, PhaseOutput:
		return true
	default:
		return false
	}
}

// IsDisplayable reports whether label/icon lookups recognize the phase.
// The displayable set is the canonical set plus review.
func (p Phase) IsDisplayable() bool {
	return p.IsValid() || p == PhaseReview
}

// Resource is a pointer to recommended study material for a subtask.
type Resource struct {
	Title string
	URL   string
}

// Subtask is owned by exactly one Task and has no existence outside it.
//
// Title and Text are intentionally redundant: Text carries the authoritative
// content, Title is a display alias kept in sync at creation. The same goes
// for AIEstimatedDuration (the field duration edits write) versus
// EstimatedDuration (the field time aggregation reads, defaulting to 30).
// Both pairs came from merging two historical subtask shapes and are kept
// separate on purpose.
type Subtask struct {
	ID                  string
	Title               string
	Text                string
	Completed           bool
	AIEstimatedDuration int // minutes, 0 means unset
	EstimatedDuration   int // minutes, 0 means unset; aggregation substitutes 30
	Difficulty          Difficulty
	Order               int // 1-based append position, never renumbered
	Phase               Phase
	Skills              []string
	Resources           []Resource
}

func (s Subtask) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: subtask id is required")
	}
	if strings.TrimSpace(s.Text) == "" {
		return errors.New("model: subtask text is required")
	}
	if s.Difficulty != "" && !s.Difficulty.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, s.Difficulty)
	}
	if s.Phase != "" && !s.Phase.IsDisplayable() {
		return fmt.Errorf("%w: %q", ErrInvalidPhase, s.Phase)
	}
	if s.Order < 0 {
		return errors.New("model: subtask order must not be negative")
	}
	if s.AIEstimatedDuration < 0 || s.EstimatedDuration < 0 {
		return errors.New("model: subtask duration must not be negative")
	}
	return nil
}
