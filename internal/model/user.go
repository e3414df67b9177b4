package model

import "time"

// UserIdentity is the authenticated principal as reported by the
// session manager.
type UserIdentity struct {
	ID       string `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	Username string `json:"username,omitempty" db:"username"`
}

// Session is a live sign-in. It is transient: created at sign-in,
// destroyed at sign-out, and passed explicitly to every operation that
// acts on behalf of a user.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
