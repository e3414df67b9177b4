package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/model"
)

// defaultSessionTTL applies when no lifetime has been configured.
const defaultSessionTTL = 72 * time.Hour

// SetSessionTTL overrides the default session lifetime.
func (s *SQLiteStore) SetSessionTTL(ttl time.Duration) {
	if ttl > 0 {
		s.sessionTTL = ttl
	}
}

// SignIn validates credentials and issues a new session token. Wrong
// email or password both come back as the same *backend.AuthError so the
// response does not leak which one was wrong.
func (s *SQLiteStore) SignIn(
	ctx context.Context,
	email, password string,
) (*model.Session, error) {
	userID, hash, err := s.lookupCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &backend.AuthError{Message: "Invalid login credentials"}
		}
		return nil, fmt.Errorf("looking up credentials: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, &backend.AuthError{Message: "Invalid login credentials"}
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ttl := s.sessionTTL
	if ttl == 0 {
		ttl = defaultSessionTTL
	}

	sess := model.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		sess.Token, sess.UserID, time.Now().UTC(), sess.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &sess, nil
}

// SignOut invalidates the session for token. Deleting a token that does
// not exist is not an error.
func (s *SQLiteStore) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// CurrentUser resolves the identity behind a session token. Unknown and
// expired tokens are indistinguishable to the caller.
func (s *SQLiteStore) CurrentUser(
	ctx context.Context,
	token string,
) (*model.UserIdentity, error) {
	if token == "" {
		return nil, &backend.AuthError{Message: "no active session"}
	}

	var (
		userID    string
		expiresAt time.Time
	)
	row := s.db.QueryRowxContext(ctx,
		"SELECT user_id, expires_at FROM sessions WHERE token = ?", token)
	if err := row.Scan(&userID, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &backend.AuthError{Message: "no active session"}
		}
		return nil, fmt.Errorf("looking up session: %w", err)
	}

	if time.Now().UTC().After(expiresAt) {
		// Expired sessions are lazily reaped on lookup.
		_, _ = s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
		return nil, &backend.AuthError{Message: "session expired"}
	}

	return s.getUser(ctx, userID)
}
