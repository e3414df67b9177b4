package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/model"
)

// InsertProject inserts a new project for userID.
func (s *SQLiteStore) InsertProject(
	ctx context.Context,
	userID string,
	p model.Project,
) (*model.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.UserID = userID
	p.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, user_id, name, description, emoji, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.Description, p.Emoji, p.CreatedAt,
	)
	if err != nil {
		return nil, &backend.WriteError{Table: "projects", Cause: err}
	}
	return &p, nil
}

// DeleteProject removes a project owned by userID. Associated tasks get
// project_id set to NULL.
func (s *SQLiteStore) DeleteProject(ctx context.Context, userID, projectID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM projects WHERE id = ? AND user_id = ?", projectID, userID)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", projectID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return backend.ErrNotFound
	}
	return nil
}

// QueryProjects retrieves all of userID's projects ordered by name.
func (s *SQLiteStore) QueryProjects(
	ctx context.Context,
	userID string,
) ([]model.Project, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM projects WHERE user_id = ? ORDER BY name", userID)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Name,
			&p.Description, &p.Emoji, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
