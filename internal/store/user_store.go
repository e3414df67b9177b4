package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/model"
)

// CreateUser creates a new account with a bcrypt-hashed password. A
// duplicate email is reported as a write rejection.
func (s *SQLiteStore) CreateUser(
	ctx context.Context,
	email, password string,
	meta backend.UserMetadata,
) (*model.UserIdentity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email must not be empty")
	}
	if password == "" {
		return nil, fmt.Errorf("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := model.UserIdentity{
		ID:       uuid.New().String(),
		Email:    email,
		Username: meta.Username,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, username, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, string(hash), user.Username, time.Now().UTC(),
	)
	if err != nil {
		return nil, &backend.WriteError{Table: "users", Cause: err}
	}

	return &user, nil
}

// lookupCredentials fetches the stored hash for an email. Unknown emails
// return sql.ErrNoRows.
func (s *SQLiteStore) lookupCredentials(
	ctx context.Context,
	email string,
) (userID, hash string, err error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT id, password_hash FROM users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)),
	)
	err = row.Scan(&userID, &hash)
	return userID, hash, err
}

// getUser retrieves a user's identity by id.
func (s *SQLiteStore) getUser(ctx context.Context, id string) (*model.UserIdentity, error) {
	var user model.UserIdentity
	row := s.db.QueryRowxContext(ctx,
		"SELECT id, email, username FROM users WHERE id = ?", id)
	if err := row.Scan(&user.ID, &user.Email, &user.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, backend.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return &user, nil
}
