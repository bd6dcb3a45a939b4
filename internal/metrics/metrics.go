// Package metrics derives display values from the task domain model. Every
// function here is pure and total: any input, including nil slices and
// unrecognized enum values, produces a defined result without panicking.
package metrics

import (
	"fmt"
	"math"

	"github.com/nikitabhat/focusd/internal/locale"
	"github.com/nikitabhat/focusd/internal/model"
)

// DefaultEstimateMinutes is substituted when a subtask carries no estimate.
const DefaultEstimateMinutes = 30

// PhaseStats counts subtasks per canonical phase. The result always carries
// all five canonical keys, zeroes included; subtasks with a missing or
// non-canonical phase (review included) are left out of every count.
//
// A nil slice yields an empty map rather than the zeroed five-key map. The
// asymmetry is deliberate: callers distinguish "no subtask collection" from
// "a collection with nothing in any phase".
func PhaseStats(subs []model.Subtask) map[model.Phase]int {
	if subs == nil {
		return map[model.Phase]int{}
	}
	out := make(map[model.Phase]int, len(model.CanonicalPhases))
	for _, p := range model.CanonicalPhases {
		out[p] = 0
	}
	for _, s := range subs {
		if s.Phase.IsValid() {
			out[s.Phase]++
		}
	}
	return out
}

// CompletedCount returns how many subtasks are completed. Nil yields 0.
func CompletedCount(subs []model.Subtask) int {
	n := 0
	for _, s := range subs {
		if s.Completed {
			n++
		}
	}
	return n
}

// CompletionPercent returns the rounded completion percentage. Empty and nil
// collections yield 0.
func CompletionPercent(subs []model.Subtask) int {
	if len(subs) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(CompletedCount(subs)) / float64(len(subs))))
}

// TotalEstimatedMinutes sums subtask estimates, substituting
// DefaultEstimateMinutes where the estimate is unset. Nil yields 0.
func TotalEstimatedMinutes(subs []model.Subtask) int {
	total := 0
	for _, s := range subs {
		if s.EstimatedDuration > 0 {
			total += s.EstimatedDuration
		} else {
			total += DefaultEstimateMinutes
		}
	}
	return total
}

// PhaseLabel resolves the localized label for a phase. Non-displayable
// phases yield "" even when a translator is supplied; the translation key is
// never attempted for them. A nil translator falls back to the raw phase key.
func PhaseLabel(p model.Phase, tr locale.Translator) string {
	if !p.IsDisplayable() {
		return ""
	}
	if tr == nil {
		return string(p)
	}
	return tr(fmt.Sprintf("phases.%s", p))
}

// PhaseIcon returns the single-glyph marker for a phase. Non-displayable
// phases get the pending marker.
func PhaseIcon(p model.Phase) string {
	switch p {
	case model.PhaseKnowledge:
		return "📖"
	case model.PhasePractice:
		return "✏️"
	case model.PhaseApplication:
		return "🔧"
	case model.PhaseReflection:
		return "💭"
	case model.PhaseOutput:
		return "📤"
	case model.PhaseReview:
		return "🔁"
	default:
		return "⏳"
	}
}

// TimeBlockLabel renders a task's scheduled window as "HH:MM" or
// "HH:MM-HH:MM". An end time without a start time is treated as absent.
func TimeBlockLabel(t model.Task) string {
	start, end := t.ScheduleWindow()
	if start == "" {
		return ""
	}
	if end == "" {
		return start
	}
	return start + "-" + end
}
