package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/model"
)

// ProjectHandler serves project listing and mutations.
type ProjectHandler struct {
	store  backend.DataStore
	logger *slog.Logger
}

// NewProjectHandler creates the project handler.
func NewProjectHandler(store backend.DataStore, logger *slog.Logger) *ProjectHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectHandler{store: store, logger: logger}
}

// List handles GET /projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	projects, err := h.store.QueryProjects(r.Context(), sess.UserID)
	if err != nil {
		h.logger.Error("listing projects failed", "user_id", sess.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji,omitempty"`
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	project, err := h.store.InsertProject(r.Context(), sess.UserID, model.Project{
		Name:        req.Name,
		Description: req.Description,
		Emoji:       req.Emoji,
	})
	if err != nil {
		h.logger.Error("project create failed", "user_id", sess.UserID,
			"name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// Delete handles DELETE /projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	projectID := chi.URLParam(r, "id")

	if err := h.store.DeleteProject(r.Context(), sess.UserID, projectID); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error("project delete failed", "user_id", sess.UserID,
			"project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
