// Package demo provisions the throwaway demo account with a seed project
// and tasks so a first-time visitor has something to explore.
package demo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/model"
)

// Result reports the outcome of a provisioning run.
type Result struct {
	UserID string `json:"user_id"`
}

// Provisioner creates the demo account and its seed data. Every step
// after user creation is best-effort: a missing project or seed task
// only degrades the demo, it does not fail it.
type Provisioner struct {
	admin  backend.UserAdmin
	store  backend.DataStore
	auth   backend.SessionManager
	cfg    model.DemoConfig
	logger *slog.Logger
}

// NewProvisioner creates a Provisioner for the configured demo identity.
func NewProvisioner(
	admin backend.UserAdmin,
	store backend.DataStore,
	auth backend.SessionManager,
	cfg model.DemoConfig,
	logger *slog.Logger,
) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provisioner{admin: admin, store: store, auth: auth, cfg: cfg, logger: logger}
}

// seedTask is one of the fixed tasks inserted for a fresh demo account.
type seedTask struct {
	title       string
	description string
	status      string
	priority    string
	important   bool
	emoji       string
}

var seedTasks = []seedTask{
	{
		title:       "Welcome to TaskVault!",
		description: "This is your first task. Click the status buttons to change its state.",
		status:      "todo",
		priority:    "medium",
		important:   true,
		emoji:       "👋",
	},
	{
		title:       "Explore the dark theme",
		description: "Notice the edgy design with glass effects and neon glows.",
		status:      "in_progress",
		priority:    "low",
		emoji:       "🌙",
	},
	{
		title:       "Add your own tasks",
		description: "Use the form above to create your own tasks and organize your work.",
		status:      "done",
		priority:    "high",
		emoji:       "✅",
	},
	{
		title:       "Delete tasks you don't need",
		description: "Click the trash icon to remove tasks when you're done with them.",
		status:      "todo",
		priority:    "medium",
		emoji:       "🗑️",
	},
}

// Provision creates the demo user, a seed project, and the seed tasks.
// Only user creation failure is fatal; project and task failures are
// logged and tolerated, so a successful result may still be missing some
// seed data.
func (p *Provisioner) Provision(ctx context.Context) (*Result, error) {
	user, err := p.admin.CreateUser(ctx, p.cfg.Email, p.cfg.Password,
		backend.UserMetadata{Username: "Demo User"})
	if err != nil {
		return nil, fmt.Errorf("creating demo user: %w", err)
	}

	var projectID *string
	project, err := p.store.InsertProject(ctx, user.ID, model.Project{
		Name:        "Welcome Project",
		Description: "Your first project to get started with TaskVault",
		Emoji:       "🚀",
	})
	if err != nil {
		p.logger.Warn("demo project creation failed, seeding tasks without a project",
			"error", err)
	} else {
		projectID = &project.ID
	}

	for _, seed := range seedTasks {
		candidate := model.TaskCandidate{
			ProjectID:   projectID,
			Title:       seed.title,
			Description: seed.description,
			Status:      seed.status,
			Priority:    seed.priority,
			IsImportant: seed.important,
			Emoji:       seed.emoji,
		}

		_, err := p.store.InsertTask(ctx, user.ID, candidate)
		if err == nil {
			continue
		}
		p.logger.Warn("seed task insert failed, retrying without priority",
			"title", seed.title, "error", err)

		// One retry per task with the priority removed; a second failure
		// moves on to the next seed task.
		reduced := candidate
		reduced.Priority = ""
		if _, err := p.store.InsertTask(ctx, user.ID, reduced); err != nil {
			p.logger.Error("seed task retry failed", "title", seed.title, "error", err)
		}
	}

	return &Result{UserID: user.ID}, nil
}

// SignIn signs into the demo account, provisioning it first if it does
// not exist yet.
func (p *Provisioner) SignIn(ctx context.Context) (*model.Session, error) {
	sess, err := p.auth.SignIn(ctx, p.cfg.Email, p.cfg.Password)
	if err == nil {
		return sess, nil
	}
	if !backend.IsAuthError(err) {
		return nil, err
	}

	if _, err := p.Provision(ctx); err != nil {
		return nil, err
	}
	return p.auth.SignIn(ctx, p.cfg.Email, p.cfg.Password)
}
