package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/model"
)

// InsertTask inserts a new task for userID. Status and priority are only
// written when the candidate carries them; otherwise the column defaults
// apply. A constraint rejection comes back as *backend.WriteError with no
// field-level detail.
func (s *SQLiteStore) InsertTask(
	ctx context.Context,
	userID string,
	candidate model.TaskCandidate,
) (*model.Task, error) {
	if strings.TrimSpace(candidate.Title) == "" {
		return nil, fmt.Errorf("task title must not be empty")
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC()

	cols := []string{"id", "user_id", "project_id", "title", "description", "is_important", "emoji", "created_at"}
	args := []interface{}{
		id, userID, candidate.ProjectID, candidate.Title,
		candidate.Description, boolToInt(candidate.IsImportant),
		candidate.Emoji, createdAt,
	}
	if candidate.Status != "" {
		cols = append(cols, "status")
		args = append(args, candidate.Status)
	}
	if candidate.Priority != "" {
		cols = append(cols, "priority")
		args = append(args, candidate.Priority)
	}

	query := fmt.Sprintf(
		"INSERT INTO tasks (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, &backend.WriteError{Table: "tasks", Cause: err}
	}

	// Read the row back so the caller sees the store-assigned defaults.
	task, err := s.getTask(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("reading back inserted task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a partial update to a task owned by userID. Nil
// fields are left untouched.
func (s *SQLiteStore) UpdateTask(
	ctx context.Context,
	userID, taskID string,
	fields backend.TaskFields,
) error {
	var sets []string
	var args []interface{}

	if fields.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *fields.Status)
	}
	if fields.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *fields.Priority)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, taskID, userID)
	query := fmt.Sprintf(
		"UPDATE tasks SET %s WHERE id = ? AND user_id = ?",
		strings.Join(sets, ", "),
	)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return &backend.WriteError{Table: "tasks", Cause: err}
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return backend.ErrNotFound
	}
	return nil
}

// DeleteTask removes a task owned by userID.
func (s *SQLiteStore) DeleteTask(ctx context.Context, userID, taskID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", taskID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return backend.ErrNotFound
	}
	return nil
}

// QueryTasks retrieves all of userID's tasks, most recent first.
func (s *SQLiteStore) QueryTasks(
	ctx context.Context,
	userID string,
) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM tasks WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// getTask retrieves one task scoped to its owner.
func (s *SQLiteStore) getTask(
	ctx context.Context,
	userID, taskID string,
) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT * FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)

	task, err := scanTaskRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, backend.ErrNotFound
		}
		return nil, fmt.Errorf("getting task %s: %w", taskID, err)
	}
	return &task, nil
}

// scanTask scans a task row from a sqlx.Rows result set.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	var (
		task      model.Task
		important int
		createdAt time.Time
	)

	err := rows.Scan(
		&task.ID, &task.UserID, &task.ProjectID,
		&task.Title, &task.Description, &task.Status, &task.Priority,
		&important, &task.Emoji, &createdAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.IsImportant = important != 0
	task.CreatedAt = createdAt
	return task, nil
}

// scanTaskRow scans a single task row from a sqlx.Row.
func scanTaskRow(row *sqlx.Row) (model.Task, error) {
	var (
		task      model.Task
		important int
		createdAt time.Time
	)

	err := row.Scan(
		&task.ID, &task.UserID, &task.ProjectID,
		&task.Title, &task.Description, &task.Status, &task.Priority,
		&important, &task.Emoji, &createdAt,
	)
	if err != nil {
		return model.Task{}, err
	}

	task.IsImportant = important != 0
	task.CreatedAt = createdAt
	return task, nil
}
