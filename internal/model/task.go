package model

import "time"

// DefaultStatusOptions is offered by the UI when no tasks are loaded yet.
// The store owns the real vocabulary; these are only a starting point.
var DefaultStatusOptions = []string{"todo", "in_progress", "done"}

// Task is a single work item owned by one user.
//
// Status and Priority are free text on purpose: their vocabulary is
// enforced by the store, not by this client, so any string value must
// round-trip without breaking callers.
type Task struct {
	// ID is the store-assigned unique identifier.
	ID string `json:"id" db:"id"`

	// UserID is the owning user. Every task belongs to exactly one user.
	UserID string `json:"user_id" db:"user_id"`

	// ProjectID optionally groups this task under a project.
	ProjectID *string `json:"project_id,omitempty" db:"project_id"`

	// Title is the human-readable summary. Required, non-empty.
	Title string `json:"title" db:"title"`

	// Description is the optional body text.
	Description string `json:"description" db:"description"`

	// Status is the store-defaulted lifecycle value ("todo", "done", ...).
	Status string `json:"status" db:"status"`

	// Priority is the optional urgency value ("low", "high", ...).
	Priority string `json:"priority,omitempty" db:"priority"`

	// IsImportant flags the task for emphasis in list views.
	IsImportant bool `json:"is_important" db:"is_important"`

	// Emoji is an optional short display glyph.
	Emoji string `json:"emoji,omitempty" db:"emoji"`

	// CreatedAt is when the row was inserted.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TaskCandidate is the caller-supplied input for a new task, before the
// store assigns an ID and fills column defaults.
type TaskCandidate struct {
	ProjectID   *string `json:"project_id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	IsImportant bool    `json:"is_important"`
	Emoji       string  `json:"emoji,omitempty"`
}
