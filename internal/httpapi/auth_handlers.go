package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aalopez23/county-hr-dashboard/internal/audit"
	"github.com/aalopez23/county-hr-dashboard/internal/auth"
	"github.com/aalopez23/county-hr-dashboard/internal/session"
	"github.com/aalopez23/county-hr-dashboard/internal/store"
)

type loginRequest struct {
	Role string `json:"role"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      session.User `json:"user"`
}

const tokenTTL = 12 * time.Hour

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	role := session.Role(strings.TrimSpace(strings.ToLower(req.Role)))
	user, err := a.sessions.Login(r.Context(), role)
	if err != nil {
		if errors.Is(err, session.ErrUnknownRole) {
			writeError(w, r, http.StatusBadRequest, "role must be employee or admin")
			return
		}
		a.handleStorageError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role), tokenTTL)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	expiresAt := time.Now().UTC().Add(tokenTTL)
	_ = audit.LogEvent(r.Context(), "session.login", map[string]any{
		"user_id":    user.ID,
		"role":       user.Role,
		"expires_at": expiresAt.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if err := a.sessions.Logout(r.Context()); err != nil {
		a.handleStorageError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "session.logout", nil)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		user, ok := a.actor(r)
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "session expired")
			return
		}
		writeJSON(w, http.StatusOK, user)
	case http.MethodPatch:
		var upd session.Update
		if err := decodeJSON(w, r, &upd); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		user, err := a.sessions.Update(r.Context(), upd)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				writeError(w, r, http.StatusUnauthorized, "session expired")
				return
			}
			a.handleStorageError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "profile.updated", nil)
		writeJSON(w, http.StatusOK, user)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch)
	}
}

// handleStorageError is the wired failure path for storage errors: a JSON
// error body plus an audit line. Nothing is retried.
func (a *API) handleStorageError(w http.ResponseWriter, r *http.Request, err error) {
	_ = audit.LogEvent(r.Context(), "storage.error", map[string]any{
		"error": err.Error(),
	})
	switch {
	case errors.Is(err, store.ErrCorrupt), errors.Is(err, store.ErrSchema):
		writeError(w, r, http.StatusInternalServerError, "stored data is corrupted")
	default:
		writeError(w, r, http.StatusInternalServerError, "storage failure")
	}
}
