package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/taskvault/taskvault/internal/backend"
	"github.com/taskvault/taskvault/internal/demo"
	"github.com/taskvault/taskvault/internal/model"
)

// AuthHandler serves sign-in, sign-out, demo access, and identity lookup.
type AuthHandler struct {
	auth        backend.SessionManager
	provisioner *demo.Provisioner
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(auth backend.SessionManager, provisioner *demo.Provisioner) *AuthHandler {
	return &AuthHandler{auth: auth, provisioner: provisioner}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	sess, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if authErr, ok := asAuthError(err); ok {
			writeError(w, http.StatusUnauthorized, authErr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	setSessionCookie(w, sess)
	writeJSON(w, http.StatusOK, signInResponse{UserID: sess.UserID, Email: sess.Email})
}

// SignInDemo handles POST /auth/demo: sign into the demo account,
// provisioning it on first use.
func (h *AuthHandler) SignInDemo(w http.ResponseWriter, r *http.Request) {
	sess, err := h.provisioner.SignIn(r.Context())
	if err != nil {
		if authErr, ok := asAuthError(err); ok {
			writeError(w, http.StatusUnauthorized, authErr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to set up the demo account")
		return
	}

	setSessionCookie(w, sess)
	writeJSON(w, http.StatusOK, signInResponse{UserID: sess.UserID, Email: sess.Email})
}

// SignOut handles POST /auth/signout. It clears the session cookie and
// reports success whether or not a session was active.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	_ = h.auth.SignOut(r.Context(), sessionToken(r))

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CurrentUser(r.Context(), sessionToken(r))
	if err != nil {
		if backend.IsAuthError(err) {
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func setSessionCookie(w http.ResponseWriter, sess *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// asAuthError unwraps a *backend.AuthError if one is in the chain.
func asAuthError(err error) (*backend.AuthError, bool) {
	var authErr *backend.AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
