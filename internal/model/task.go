package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDifficulty = errors.New("model: invalid task difficulty")
	ErrInvalidPriority   = errors.New("model: invalid task priority")
	ErrInvalidSchedule   = errors.New("model: scheduled end time requires a start time")
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type Task struct {
	ID               string
	Title            string
	Description      string
	Completed        bool
	Difficulty       Difficulty // empty means unspecified
	Priority         Priority   // empty means unspecified
	DurationMinutes  int        // planned minutes, 0 means unset
	ScheduledTime    string     // "HH:MM", empty means absent
	ScheduledEndTime string     // "HH:MM", only meaningful with a start time
	DueDate          string     // "2006-01-02", empty means absent
	Subtasks         []Subtask
	CreatedAt        time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.Difficulty != "" && !t.Difficulty.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, t.Difficulty)
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.ScheduledTime != "" {
		if err := validateClock(t.ScheduledTime); err != nil {
			return err
		}
	}
	if t.ScheduledEndTime != "" {
		if t.ScheduledTime == "" {
			return ErrInvalidSchedule
		}
		if err := validateClock(t.ScheduledEndTime); err != nil {
			return err
		}
	}
	if t.DueDate != "" {
		if _, err := time.Parse("2006-01-02", t.DueDate); err != nil {
			return fmt.Errorf("model: invalid due date %q: %w", t.DueDate, err)
		}
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	for i := range t.Subtasks {
		if err := t.Subtasks[i].Validate(); err != nil {
			return fmt.Errorf("model: subtask %d: %w", i, err)
		}
	}
	return nil
}

// ScheduleWindow returns the displayable start and end times. An end time
// without a start time is treated as absent.
func (t Task) ScheduleWindow() (start, end string) {
	if t.ScheduledTime == "" {
		return "", ""
	}
	return t.ScheduledTime, t.ScheduledEndTime
}

func validateClock(v string) error {
	if _, err := time.Parse("15:04", v); err != nil {
		return fmt.Errorf("model: invalid clock time %q: %w", v, err)
	}
	return nil
}
