// Package tasks implements the task write path, including the
// reduced-field retry used when the store rejects a status or priority
// value it does not recognize.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/model"
)

// Writer persists task mutations on behalf of a signed-in user.
//
// The store's status/priority vocabulary is not known to this client, so
// a rejected insert is retried exactly once with both fields stripped,
// letting the store apply its own column defaults. The reduction is
// hardcoded to those two fields: a write rejection carries no field-level
// detail, so there is nothing smarter to do.
type Writer struct {
	store  backend.DataStore
	logger *slog.Logger
}

// NewWriter creates a Writer over the given data store.
func NewWriter(store backend.DataStore, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{store: store, logger: logger}
}

// Create persists a new task for the session's user. At most two store
// calls are issued: the full candidate, then (only after a write
// rejection) the candidate with status and priority removed. Any other
// failure, and a failure of the second attempt, is returned as-is.
func (w *Writer) Create(
	ctx context.Context,
	sess *model.Session,
	candidate model.TaskCandidate,
) (*model.Task, error) {
	if strings.TrimSpace(candidate.Title) == "" {
		return nil, fmt.Errorf("task title must not be empty")
	}

	task, err := w.store.InsertTask(ctx, sess.UserID, candidate)
	if err == nil {
		return task, nil
	}
	if !backend.IsWriteError(err) {
		return nil, err
	}

	w.logger.Warn("task insert rejected, retrying without status/priority",
		"user_id", sess.UserID,
		"title", candidate.Title,
		"error", err,
	)

	reduced := candidate
	reduced.Status = ""
	reduced.Priority = ""

	task, retryErr := w.store.InsertTask(ctx, sess.UserID, reduced)
	if retryErr != nil {
		w.logger.Error("task insert retry failed",
			"user_id", sess.UserID,
			"title", candidate.Title,
			"error", retryErr,
		)
		return nil, retryErr
	}
	return task, nil
}

// SetStatus updates a task's status. A rejected value has no useful
// reduced form, so write rejections are logged and returned without retry.
func (w *Writer) SetStatus(ctx context.Context, sess *model.Session, taskID, status string) error {
	err := w.store.UpdateTask(ctx, sess.UserID, taskID, backend.TaskFields{Status: &status})
	if err != nil && backend.IsWriteError(err) {
		w.logger.Warn("status update rejected",
			"user_id", sess.UserID, "task_id", taskID, "status", status, "error", err)
	}
	return err
}

// SetPriority updates a task's priority with the same no-retry policy as
// SetStatus.
func (w *Writer) SetPriority(ctx context.Context, sess *model.Session, taskID, priority string) error {
	err := w.store.UpdateTask(ctx, sess.UserID, taskID, backend.TaskFields{Priority: &priority})
	if err != nil && backend.IsWriteError(err) {
		w.logger.Warn("priority update rejected",
			"user_id", sess.UserID, "task_id", taskID, "priority", priority, "error", err)
	}
	return err
}

// Delete removes a task owned by the session's user.
func (w *Writer) Delete(ctx context.Context, sess *model.Session, taskID string) error {
	return w.store.DeleteTask(ctx, sess.UserID, taskID)
}

// List returns the session user's tasks, most recent first.
func (w *Writer) List(ctx context.Context, sess *model.Session) ([]model.Task, error) {
	return w.store.QueryTasks(ctx, sess.UserID)
}
