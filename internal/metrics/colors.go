package metrics

import "github.com/nikitabhat/focusd/internal/model"

// Color is a semantic color token. The theme layer decides what each token
// looks like on screen; this package only classifies.
type Color string

const (
	ColorSuccess Color = "success"
	ColorWarning Color = "warning"
	ColorError   Color = "error"
	ColorNeutral Color = "neutral"

	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
	ColorTeal   Color = "teal"
	ColorPink   Color = "pink"
)

// DifficultyColor maps a difficulty to its badge color. Unspecified and
// unrecognized values map to neutral.
func DifficultyColor(d model.Difficulty) Color {
	switch d {
	case model.DifficultyEasy:
		return ColorSuccess
	case model.DifficultyMedium:
		return ColorWarning
	case model.DifficultyHard:
		return ColorError
	default:
		return ColorNeutral
	}
}

// PriorityColor maps a priority to its badge color. Unspecified and
// unrecognized values map to neutral.
func PriorityColor(p model.Priority) Color {
	switch p {
	case model.PriorityLow:
		return ColorSuccess
	case model.PriorityMedium:
		return ColorWarning
	case model.PriorityHigh:
		return ColorError
	default:
		return ColorNeutral
	}
}

// PhaseColor maps each displayable phase onto a fixed six-color palette.
// Anything else maps to neutral.
func PhaseColor(p model.Phase) Color {
	switch p {
	case model.PhaseKnowledge:
		return ColorBlue
	case model.PhasePractice:
		return ColorGreen
	case model.PhaseApplication:
		return ColorOrange
	case model.PhaseReflection:
		return ColorPurple
	case model.PhaseOutput:
		return ColorTeal
	case model.PhaseReview:
		return ColorPink
	default:
		return ColorNeutral
	}
}
