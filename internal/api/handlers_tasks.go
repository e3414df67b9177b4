package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/classify"
	"github.com/taskvault/taskvault/internal/model"
	"github.com/taskvault/taskvault/internal/tasks"
)

// TaskHandler serves the task list and mutations.
//
// Mutation failures follow the fail-silent policy: a create, update, or
// delete the store ultimately rejects is logged for the operator and
// acknowledged to the client without an error body. The user notices
// only that the list did not change, and can simply retry.
type TaskHandler struct {
	writer *tasks.Writer
	logger *slog.Logger
}

// NewTaskHandler creates the task handler.
func NewTaskHandler(writer *tasks.Writer, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{writer: writer, logger: logger}
}

// taskView is a task plus its derived render metadata.
type taskView struct {
	model.Task
	Display taskDisplay `json:"display"`
}

type taskDisplay struct {
	Status   classify.StatusClass   `json:"status"`
	Priority classify.PriorityClass `json:"priority"`
}

type taskListResponse struct {
	Tasks         []taskView `json:"tasks"`
	StatusOptions []string   `json:"status_options"`
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	list, err := h.writer.List(r.Context(), sess)
	if err != nil {
		h.logger.Error("listing tasks failed", "user_id", sess.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	views := make([]taskView, 0, len(list))
	for _, t := range list {
		views = append(views, taskView{
			Task: t,
			Display: taskDisplay{
				Status:   classify.Status(t.Status),
				Priority: classify.Priority(t.Priority),
			},
		})
	}

	writeJSON(w, http.StatusOK, taskListResponse{
		Tasks:         views,
		StatusOptions: classify.StatusOptions(list),
	})
}

type createTaskRequest struct {
	ProjectID   *string `json:"project_id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	IsImportant bool    `json:"is_important"`
	Emoji       string  `json:"emoji,omitempty"`
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	candidate := model.TaskCandidate{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		IsImportant: req.IsImportant,
		Emoji:       req.Emoji,
	}
	if candidate.Status == "" {
		// Best-guess default; the store may still reject it, in which
		// case the writer retries with no status at all.
		candidate.Status = "todo"
	}

	task, err := h.writer.Create(r.Context(), sess, candidate)
	if err != nil {
		h.logger.Error("task create dropped", "user_id", sess.UserID,
			"title", req.Title, "error", err)
		w.WriteHeader(http.StatusAccepted)
		return
	}

	writeJSON(w, http.StatusCreated, taskView{
		Task: *task,
		Display: taskDisplay{
			Status:   classify.Status(task.Status),
			Priority: classify.Priority(task.Priority),
		},
	})
}

type updateTaskRequest struct {
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

// Update handles PATCH /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	taskID := chi.URLParam(r, "id")

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Status == nil && req.Priority == nil {
		writeError(w, http.StatusBadRequest, "status or priority is required")
		return
	}

	var err error
	switch {
	case req.Status != nil:
		err = h.writer.SetStatus(r.Context(), sess, taskID, *req.Status)
	default:
		err = h.writer.SetPriority(r.Context(), sess, taskID, *req.Priority)
	}

	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		// Write rejections fall under the fail-silent policy.
		h.logger.Error("task update dropped", "user_id", sess.UserID,
			"task_id", taskID, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	taskID := chi.URLParam(r, "id")

	if err := h.writer.Delete(r.Context(), sess, taskID); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		h.logger.Error("task delete dropped", "user_id", sess.UserID,
			"task_id", taskID, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
