// Package backend defines the contracts this service consumes from its
// hosted data store and session manager. The concrete implementation in
// internal/store satisfies all of them; everything above this package
// talks only to these interfaces.
package backend

import (
	"context"

	"github.com/taskvault/taskvault/internal/model"
)

// UserMetadata carries optional profile fields supplied at user creation.
type UserMetadata struct {
	Username string
}

// SessionManager issues and validates user sessions.
type SessionManager interface {
	// SignIn exchanges credentials for a session. Bad credentials return
	// an *AuthError; anything else is an infrastructure failure.
	SignIn(ctx context.Context, email, password string) (*model.Session, error)

	// SignOut invalidates the session for token. It succeeds even when
	// no such session exists.
	SignOut(ctx context.Context, token string) error

	// CurrentUser resolves the identity behind a session token. An
	// unknown or expired token returns an *AuthError.
	CurrentUser(ctx context.Context, token string) (*model.UserIdentity, error)
}

// UserAdmin creates user accounts. This is a privileged operation not
// reachable from ordinary sessions; only the demo provisioner uses it.
type UserAdmin interface {
	CreateUser(ctx context.Context, email, password string, meta UserMetadata) (*model.UserIdentity, error)
}

// DataStore is the thin client over the hosted row store. All operations
// scope rows to the owning user; a caller never sees another user's rows.
//
// Insert and update failures caused by schema or enum rejection surface as
// *WriteError with no field-level detail, mirroring the store's opaque
// validation responses.
type DataStore interface {
	InsertTask(ctx context.Context, userID string, candidate model.TaskCandidate) (*model.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, fields TaskFields) error
	DeleteTask(ctx context.Context, userID, taskID string) error

	// QueryTasks returns the user's tasks ordered most-recent-first.
	QueryTasks(ctx context.Context, userID string) ([]model.Task, error)

	InsertProject(ctx context.Context, userID string, p model.Project) (*model.Project, error)
	DeleteProject(ctx context.Context, userID, projectID string) error
	QueryProjects(ctx context.Context, userID string) ([]model.Project, error)
}

// TaskFields is a partial update: nil fields are left untouched.
type TaskFields struct {
	Status   *string
	Priority *string
}
