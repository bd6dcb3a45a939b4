package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	// ReplaceSubtasks swaps a task's entire subtask collection in one
	// transaction. The UI edits subtasks copy-on-write, so full replacement
	// is the natural write shape.
	ReplaceSubtasks(ctx context.Context, taskID string, subs []Subtask) error
	ListSubtasks(ctx context.Context, taskID string) ([]Subtask, error)
}
