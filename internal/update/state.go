package update

import (
	"context"
	"time"

	domainmodel "github.com/nikitabhat/focusd/internal/model"
	"github.com/nikitabhat/focusd/internal/storage"
)

const persistTimeout = 3 * time.Second

// loadTasks hydrates the full task list, subtasks included, at startup.
func loadTasks(repo storage.Repository) ([]domainmodel.Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	rows, err := repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return nil, err
	}
	tasks := make([]domainmodel.Task, 0, len(rows))
	for _, row := range rows {
		subs, err := repo.ListSubtasks(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, taskFromStorage(row, subs))
	}
	return tasks, nil
}

// Persistence failures surface on the status bar but never block the UI; the
// in-memory model stays authoritative for the session.
func (m *Model) persistNewTask(task domainmodel.Task) {
	if m.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := m.repo.CreateTask(ctx, taskToStorage(task)); err != nil {
		m.Status = StatusBar{Text: "save failed: " + err.Error(), IsError: true}
		m.LastError = err
	}
}

func (m *Model) persistTask(task domainmodel.Task) {
	if m.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := m.repo.UpdateTask(ctx, taskToStorage(task)); err != nil {
		m.Status = StatusBar{Text: "save failed: " + err.Error(), IsError: true}
		m.LastError = err
	}
}

func (m *Model) persistSubtasks(task domainmodel.Task) {
	if m.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := m.repo.ReplaceSubtasks(ctx, task.ID, subtasksToStorage(task.ID, task.Subtasks)); err != nil {
		m.Status = StatusBar{Text: "save failed: " + err.Error(), IsError: true}
		m.LastError = err
	}
}

func taskToStorage(t domainmodel.Task) storage.Task {
	return storage.Task{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Completed:        t.Completed,
		Difficulty:       string(t.Difficulty),
		Priority:         string(t.Priority),
		DurationMinutes:  t.DurationMinutes,
		ScheduledTime:    t.ScheduledTime,
		ScheduledEndTime: t.ScheduledEndTime,
		DueDate:          t.DueDate,
		CreatedAt:        t.CreatedAt,
	}
}

func taskFromStorage(row storage.Task, subs []storage.Subtask) domainmodel.Task {
	return domainmodel.Task{
		ID:               row.ID,
		Title:            row.Title,
		Description:      row.Description,
		Completed:        row.Completed,
		Difficulty:       domainmodel.Difficulty(row.Difficulty),
		Priority:         domainmodel.Priority(row.Priority),
		DurationMinutes:  row.DurationMinutes,
		ScheduledTime:    row.ScheduledTime,
		ScheduledEndTime: row.ScheduledEndTime,
		DueDate:          row.DueDate,
		Subtasks:         subtasksFromStorage(subs),
		CreatedAt:        row.CreatedAt,
	}
}

func subtasksToStorage(taskID string, subs []domainmodel.Subtask) []storage.Subtask {
	out := make([]storage.Subtask, 0, len(subs))
	for _, s := range subs {
		resources := make([]storage.Resource, 0, len(s.Resources))
		for _, r := range s.Resources {
			resources = append(resources, storage.Resource{Title: r.Title, URL: r.URL})
		}
		out = append(out, storage.Subtask{
			ID:                  s.ID,
			TaskID:              taskID,
			Title:               s.Title,
			Text:                s.Text,
			Completed:           s.Completed,
			AIEstimatedDuration: s.AIEstimatedDuration,
			EstimatedDuration:   s.EstimatedDuration,
			Difficulty:          string(s.Difficulty),
			OrderIndex:          s.Order,
			Phase:               string(s.Phase),
			Skills:              s.Skills,
			Resources:           resources,
		})
	}
	return out
}

func subtasksFromStorage(rows []storage.Subtask) []domainmodel.Subtask {
	out := make([]domainmodel.Subtask, 0, len(rows))
	for _, row := range rows {
		resources := make([]domainmodel.Resource, 0, len(row.Resources))
		for _, r := range row.Resources {
			resources = append(resources, domainmodel.Resource{Title: r.Title, URL: r.URL})
		}
		out = append(out, domainmodel.Subtask{
			ID:                  row.ID,
			Title:               row.Title,
			Text:                row.Text,
			Completed:           row.Completed,
			AIEstimatedDuration: row.AIEstimatedDuration,
			EstimatedDuration:   row.EstimatedDuration,
			Difficulty:          domainmodel.Difficulty(row.Difficulty),
			Order:               row.OrderIndex,
			Phase:               domainmodel.Phase(row.Phase),
			Skills:              row.Skills,
			Resources:           resources,
		})
	}
	return out
}
