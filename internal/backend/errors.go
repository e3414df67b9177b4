package backend

import (
	"errors"
	"fmt"
)

// AuthError indicates a sign-in or session validation failure. Its
// message is safe to surface to the user.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// WriteError indicates the store rejected an insert or update. The store
// does not say which field offended, so this carries no structured cause;
// callers can only retry with a reduced field set or give up.
type WriteError struct {
	Table string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write rejected on %s: %v", e.Table, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }

// IsWriteError reports whether err (or any error in its chain) is a WriteError.
func IsWriteError(err error) bool {
	var writeErr *WriteError
	return errors.As(err, &writeErr)
}

// ErrNotFound is returned when an id does not resolve to a row owned by
// the requesting user.
var ErrNotFound = errors.New("not found")
