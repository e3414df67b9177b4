package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/demo"
	"github.com/taskvault/taskvault/internal/tasks"
)

// NewRouter creates the chi router with all routes and middleware.
func NewRouter(
	auth backend.SessionManager,
	store backend.DataStore,
	writer *tasks.Writer,
	provisioner *demo.Provisioner,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	authH := NewAuthHandler(auth, provisioner)
	taskH := NewTaskHandler(writer, logger)
	projectH := NewProjectHandler(store, logger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin", authH.SignIn)
		r.Post("/demo", authH.SignInDemo)
		r.Post("/signout", authH.SignOut)
		r.Get("/me", authH.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(auth))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskH.List)
			r.Post("/", taskH.Create)
			r.Patch("/{id}", taskH.Update)
			r.Delete("/{id}", taskH.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectH.List)
			r.Post("/", projectH.Create)
			r.Delete("/{id}", projectH.Delete)
		})
	})

	return r
}
