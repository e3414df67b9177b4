// Package testutil provides shared helpers for store-backed tests.
package testutil

import (
	"context"
	"testing"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/model"
	"github.com/taskvault/taskvault/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestUser creates a user directly through the store's admin surface.
func NewTestUser(t *testing.T, s *store.SQLiteStore, email string) *model.UserIdentity {
	t.Helper()

	user, err := s.CreateUser(context.Background(), email, "password123",
		backend.UserMetadata{Username: "Test User"})
	if err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return user
}
