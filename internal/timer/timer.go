// Package timer converts focus-session seconds into display values. The
// caller owns the clock; nothing here reads wall time or schedules ticks.
package timer

import "fmt"

// Progress returns the elapsed percentage of a session given the remaining
// and target seconds. A zero target yields 0. The result is not clamped:
// remaining below zero or above target pushes it outside [0, 100] and the
// caller clamps if its display needs to.
func Progress(remainingSec, targetSec int) float64 {
	if targetSec == 0 {
		return 0
	}
	return float64(targetSec-remainingSec) / float64(targetSec) * 100
}

// Format renders seconds as a zero-padded MM:SS string. Input is assumed
// non-negative.
func Format(totalSeconds int) string {
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
