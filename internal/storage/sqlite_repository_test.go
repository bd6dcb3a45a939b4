package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "focusd-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-08-24T12:00:00Z")

	task := Task{
		ID:               "task-1",
		Title:            "Learn SQL window functions",
		Description:      "Work through the exercises",
		Difficulty:       "medium",
		Priority:         "high",
		DurationMinutes:  90,
		ScheduledTime:    "09:30",
		ScheduledEndTime: "11:00",
		DueDate:          "2026-08-30",
		CreatedAt:        created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.Priority != "high" || got.ScheduledEndTime != "11:00" {
		t.Fatalf("unexpected task get result: %#v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at round trip mismatch: %v", got.CreatedAt)
	}

	task.Title = "Learn window functions properly"
	task.Completed = true
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	done := true
	completed, err := repo.ListTasks(ctx, TaskListFilter{Completed: &done})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != task.ID {
		t.Fatalf("unexpected completed list: %#v", completed)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestUpdateMissingTaskReturnsNotFound(t *testing.T) {
	repo := setupRepo(t)
	err := repo.UpdateTask(context.Background(), Task{ID: "ghost", Title: "x", CreatedAt: time.Now()})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestReplaceSubtasksRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	task := Task{ID: "task-1", Title: "Parent", CreatedAt: parseRFC3339(t, "2026-08-24T12:00:00Z")}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	subs := []Subtask{
		{
			ID: "sub-2", TaskID: task.ID, Title: "Second", Text: "Second",
			AIEstimatedDuration: 45, EstimatedDuration: 45,
			Difficulty: "medium", OrderIndex: 2, Phase: "practice",
			Skills:    []string{"sql"},
			Resources: []Resource{{Title: "Docs", URL: "https://example.com"}},
		},
		{
			ID: "sub-1", TaskID: task.ID, Title: "First", Text: "First",
			Difficulty: "easy", OrderIndex: 1, Phase: "knowledge",
		},
	}
	if err := repo.ReplaceSubtasks(ctx, task.ID, subs); err != nil {
		t.Fatalf("replace subtasks: %v", err)
	}

	got, err := repo.ListSubtasks(ctx, task.ID)
	if err != nil {
		t.Fatalf("list subtasks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(got))
	}
	if got[0].ID != "sub-1" || got[1].ID != "sub-2" {
		t.Fatalf("expected order_index ordering, got %s, %s", got[0].ID, got[1].ID)
	}
	if got[1].Skills[0] != "sql" || got[1].Resources[0].URL != "https://example.com" {
		t.Fatalf("json columns did not round trip: %#v", got[1])
	}

	if err := repo.ReplaceSubtasks(ctx, task.ID, got[:1]); err != nil {
		t.Fatalf("replace with fewer: %v", err)
	}
	got, err = repo.ListSubtasks(ctx, task.ID)
	if err != nil {
		t.Fatalf("list subtasks after shrink: %v", err)
	}
	if len(got) != 1 || got[0].ID != "sub-1" {
		t.Fatalf("unexpected subtasks after replace: %#v", got)
	}
}

func TestDeleteTaskCascadesSubtasks(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	task := Task{ID: "task-1", Title: "Parent", CreatedAt: parseRFC3339(t, "2026-08-24T12:00:00Z")}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	subs := []Subtask{{ID: "sub-1", TaskID: task.ID, Title: "Child", Text: "Child", OrderIndex: 1}}
	if err := repo.ReplaceSubtasks(ctx, task.ID, subs); err != nil {
		t.Fatalf("replace subtasks: %v", err)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	got, err := repo.ListSubtasks(ctx, task.ID)
	if err != nil {
		t.Fatalf("list subtasks: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected cascade delete, got %d subtasks", len(got))
	}
}
