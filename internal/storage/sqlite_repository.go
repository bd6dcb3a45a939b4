package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, completed, difficulty, priority, duration_minutes, scheduled_time, scheduled_end_time, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, boolInt(in.Completed), in.Difficulty, in.Priority,
		in.DurationMinutes, in.ScheduledTime, in.ScheduledEndTime, in.DueDate, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, completed, difficulty, priority, duration_minutes, scheduled_time, scheduled_end_time, due_date, created_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, completed = ?, difficulty = ?, priority = ?, duration_minutes = ?, scheduled_time = ?, scheduled_end_time = ?, due_date = ?
		WHERE id = ?`,
		in.Title, in.Description, boolInt(in.Completed), in.Difficulty, in.Priority,
		in.DurationMinutes, in.ScheduledTime, in.ScheduledEndTime, in.DueDate, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT id, title, description, completed, difficulty, priority, duration_minutes, scheduled_time, scheduled_end_time, due_date, created_at FROM tasks`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, boolInt(*filter.Completed))
	}
	if filter.Priority != "" {
		clauses = append(clauses, "priority = ?")
		args = append(args, filter.Priority)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ReplaceSubtasks(ctx context.Context, taskID string, subs []Subtask) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, taskID); err != nil {
		return err
	}
	for _, sub := range subs {
		skills, resources, encodeErr := encodeSubtaskJSON(sub)
		if encodeErr != nil {
			return encodeErr
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO subtasks (id, task_id, title, text, completed, ai_estimated_duration, estimated_duration, difficulty, order_index, phase, skills, resources)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sub.ID, taskID, sub.Title, sub.Text, boolInt(sub.Completed),
			sub.AIEstimatedDuration, sub.EstimatedDuration, sub.Difficulty,
			sub.OrderIndex, sub.Phase, skills, resources,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListSubtasks(ctx context.Context, taskID string) ([]Subtask, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, title, text, completed, ai_estimated_duration, estimated_duration, difficulty, order_index, phase, skills, resources
		FROM subtasks WHERE task_id = ? ORDER BY order_index ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Subtask, 0)
	for rows.Next() {
		sub, scanErr := scanSubtask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func encodeSubtaskJSON(sub Subtask) (skills string, resources string, err error) {
	skillList := sub.Skills
	if skillList == nil {
		skillList = []string{}
	}
	resourceList := sub.Resources
	if resourceList == nil {
		resourceList = []Resource{}
	}
	skillBytes, err := json.Marshal(skillList)
	if err != nil {
		return "", "", fmt.Errorf("encode skills: %w", err)
	}
	resourceBytes, err := json.Marshal(resourceList)
	if err != nil {
		return "", "", fmt.Errorf("encode resources: %w", err)
	}
	return string(skillBytes), string(resourceBytes), nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	clause := ""
	if limit > 0 {
		clause += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		clause += " OFFSET ?"
		*args = append(*args, offset)
	}
	return clause
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var completed int
	var created string
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &completed, &out.Difficulty, &out.Priority,
		&out.DurationMinutes, &out.ScheduledTime, &out.ScheduledEndTime, &out.DueDate, &created); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}

func scanSubtask(s scanner) (Subtask, error) {
	var out Subtask
	var completed int
	var skills string
	var resources string
	if err := s.Scan(&out.ID, &out.TaskID, &out.Title, &out.Text, &completed,
		&out.AIEstimatedDuration, &out.EstimatedDuration, &out.Difficulty,
		&out.OrderIndex, &out.Phase, &skills, &resources); err != nil {
		return Subtask{}, err
	}
	out.Completed = completed == 1
	if err := json.Unmarshal([]byte(skills), &out.Skills); err != nil {
		return Subtask{}, fmt.Errorf("decode skills: %w", err)
	}
	if err := json.Unmarshal([]byte(resources), &out.Resources); err != nil {
		return Subtask{}, fmt.Errorf("decode resources: %w", err)
	}
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
