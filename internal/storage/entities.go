package storage

import "time"

type Task struct {
	ID               string
	Title            string
	Description      string
	Completed        bool
	Difficulty       string
	Priority         string
	DurationMinutes  int
	ScheduledTime    string
	ScheduledEndTime string
	DueDate          string
	CreatedAt        time.Time
}

type Subtask struct {
	ID                  string
	TaskID              string
	Title               string
	Text                string
	Completed           bool
	AIEstimatedDuration int
	EstimatedDuration   int
	Difficulty          string
	OrderIndex          int
	Phase               string
	Skills              []string
	Resources           []Resource
}

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type TaskListFilter struct {
	Completed *bool
	Priority  string
	Limit     int
	Offset    int
}
