package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/taskvault/internal/api"
	"github.com/taskvault/taskvault/internal/demo"
	"github.com/taskvault/taskvault/internal/model"
	"github.com/taskvault/taskvault/internal/tasks"
	"github.com/taskvault/taskvault/tests/testutil"
)

// newTestRouter wires the full router over an in-memory store.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	s := testutil.NewTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	writer := tasks.NewWriter(s, logger)
	provisioner := demo.NewProvisioner(s, s, s, model.DemoConfig{
		Email:    "demo@taskvault.com",
		Password: "demo123456",
	}, logger)

	return api.NewRouter(s, s, writer, provisioner, logger)
}

// do issues a request against the router, attaching the session cookie
// when one is given, and returns the recorded response.
func do(t *testing.T, r http.Handler, method, path, cookie, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: api.SessionCookie, Value: cookie})
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// sessionCookie extracts the session token from a response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == api.SessionCookie {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

type taskListBody struct {
	Tasks []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Status   string `json:"status"`
		Priority string `json:"priority"`
		Display  struct {
			Status struct {
				Kind  string `json:"kind"`
				Icon  string `json:"icon"`
				Color string `json:"color"`
			} `json:"status"`
		} `json:"display"`
	} `json:"tasks"`
	StatusOptions []string `json:"status_options"`
}

func TestDemoSignInSeedsTasks(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/auth/demo", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /auth/demo = %d, body %s", rec.Code, rec.Body.String())
	}
	token := sessionCookie(t, rec)

	rec = do(t, r, http.MethodGet, "/tasks", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /tasks = %d", rec.Code)
	}

	var body taskListBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding task list: %v", err)
	}
	if len(body.Tasks) != 4 {
		t.Fatalf("seed tasks = %d, want 4", len(body.Tasks))
	}

	// Seed statuses are todo/in_progress/done, so the derived options
	// cover all three with duplicates collapsed.
	opts := map[string]bool{}
	for _, o := range body.StatusOptions {
		if opts[o] {
			t.Errorf("duplicate status option %q", o)
		}
		opts[o] = true
	}
	for _, want := range []string{"todo", "in_progress", "done"} {
		if !opts[want] {
			t.Errorf("status options missing %q: %v", want, body.StatusOptions)
		}
	}

	// A second demo sign-in reuses the account instead of reprovisioning.
	rec = do(t, r, http.MethodPost, "/auth/demo", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("second POST /auth/demo = %d", rec.Code)
	}
	rec = do(t, r, http.MethodGet, "/tasks", sessionCookie(t, rec), "")
	var again taskListBody
	if err := json.Unmarshal(rec.Body.Bytes(), &again); err != nil {
		t.Fatalf("decoding task list: %v", err)
	}
	if len(again.Tasks) != 4 {
		t.Errorf("tasks after repeat sign-in = %d, want still 4", len(again.Tasks))
	}
}

func TestCreateTaskFallsBackOnRejectedStatus(t *testing.T) {
	r := newTestRouter(t)
	token := sessionCookie(t, do(t, r, http.MethodPost, "/auth/demo", "", ""))

	rec := do(t, r, http.MethodPost, "/tasks", token,
		`{"title": "odd status", "status": "blocked_on_review"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /tasks = %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created task: %v", err)
	}
	if created.Status != "todo" || created.Priority != "medium" {
		t.Errorf("got status=%q priority=%q, want store defaults after fallback",
			created.Status, created.Priority)
	}
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	r := newTestRouter(t)
	token := sessionCookie(t, do(t, r, http.MethodPost, "/auth/demo", "", ""))

	rec := do(t, r, http.MethodPost, "/tasks", token, `{"description": "no title"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /tasks without title = %d, want 400", rec.Code)
	}
}

func TestUpdateAndDeleteTask(t *testing.T) {
	r := newTestRouter(t)
	token := sessionCookie(t, do(t, r, http.MethodPost, "/auth/demo", "", ""))

	rec := do(t, r, http.MethodPost, "/tasks", token, `{"title": "flip me"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /tasks = %d", rec.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created task: %v", err)
	}

	rec = do(t, r, http.MethodPatch, "/tasks/"+created.ID, token, `{"status": "done"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PATCH /tasks = %d", rec.Code)
	}

	// A rejected status is silently dropped: same 204, list unchanged.
	rec = do(t, r, http.MethodPatch, "/tasks/"+created.ID, token, `{"status": "archived"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PATCH with rejected status = %d, want 204 (fail silent)", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/tasks", token, "")
	var body taskListBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding task list: %v", err)
	}
	if body.Tasks[0].Status != "done" {
		t.Errorf("status = %q, want done (rejected update dropped)", body.Tasks[0].Status)
	}
	if body.Tasks[0].Display.Status.Kind != "complete" {
		t.Errorf("display kind = %q, want complete", body.Tasks[0].Display.Status.Kind)
	}

	rec = do(t, r, http.MethodDelete, "/tasks/"+created.ID, token, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE /tasks = %d", rec.Code)
	}

	rec = do(t, r, http.MethodPatch, "/tasks/"+created.ID, token, `{"status": "done"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("PATCH after delete = %d, want 404", rec.Code)
	}
}

func TestSignInAndSignOut(t *testing.T) {
	r := newTestRouter(t)

	// Establish the demo account, then use the regular sign-in path.
	do(t, r, http.MethodPost, "/auth/demo", "", "")

	rec := do(t, r, http.MethodPost, "/auth/signin", "",
		`{"email": "demo@taskvault.com", "password": "demo123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /auth/signin = %d", rec.Code)
	}
	token := sessionCookie(t, rec)

	rec = do(t, r, http.MethodGet, "/auth/me", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /auth/me = %d", rec.Code)
	}

	rec = do(t, r, http.MethodPost, "/auth/signout", token, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("POST /auth/signout = %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/auth/me", token, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /auth/me after signout = %d, want 401", rec.Code)
	}

	// Sign-out with no session still succeeds.
	rec = do(t, r, http.MethodPost, "/auth/signout", "", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("sign-out with no session = %d, want 204", rec.Code)
	}
}

func TestSignInBadCredentialsSurfacesMessage(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/auth/demo", "", "")

	rec := do(t, r, http.MethodPost, "/auth/signin", "",
		`{"email": "demo@taskvault.com", "password": "nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad credentials = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid login credentials") {
		t.Errorf("body %q should carry the auth message", rec.Body.String())
	}
}

func TestTaskRoutesRequireSession(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodGet, "/projects"},
	} {
		rec := do(t, r, tc.method, tc.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without session = %d, want 401", tc.method, tc.path, rec.Code)
		}
	}
}

func TestProjectLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := sessionCookie(t, do(t, r, http.MethodPost, "/auth/demo", "", ""))

	rec := do(t, r, http.MethodPost, "/projects", token,
		`{"name": "Side Quests", "description": "everything else", "emoji": "🧪"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /projects = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created project: %v", err)
	}

	rec = do(t, r, http.MethodGet, "/projects", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /projects = %d", rec.Code)
	}
	var projects []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &projects); err != nil {
		t.Fatalf("decoding projects: %v", err)
	}
	// The demo provisioner seeded "Welcome Project" already.
	if len(projects) != 2 {
		t.Fatalf("len(projects) = %d, want 2", len(projects))
	}

	rec = do(t, r, http.MethodDelete, "/projects/"+created.ID, token, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE /projects = %d", rec.Code)
	}
	rec = do(t, r, http.MethodDelete, "/projects/"+created.ID, token, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("repeat DELETE = %d, want 404", rec.Code)
	}
}
