package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aalopez23/county-hr-dashboard/internal/auth"
	"github.com/aalopez23/county-hr-dashboard/internal/session"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

var publicPaths = []string{
	"/v1/auth/login",
	"/metrics",
	"/healthz",
	"/readyz",
	"/v1/info",
}

type actorCtxKey struct{}

// withAuth is the authenticated guard: every non-public route requires a
// valid bearer token whose subject matches the persisted session. Logging
// out invalidates outstanding tokens because the session they point at is
// gone.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := auth.ParseAndValidate(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidToken):
				writeError(w, r, http.StatusUnauthorized, "invalid token")
			default:
				writeError(w, r, http.StatusInternalServerError, "authentication error")
			}
			return
		}

		user, ok, err := a.sessions.Current(r.Context())
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "session load failed")
			return
		}
		if !ok || user.ID != claims.Subject {
			writeError(w, r, http.StatusUnauthorized, "session expired")
			return
		}

		ctx := auth.ContextWithUser(r.Context(), user.ID, string(user.Role))
		ctx = context.WithValue(ctx, actorCtxKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// actor returns the session user attached by withAuth.
func (a *API) actor(r *http.Request) (session.User, bool) {
	user, ok := r.Context().Value(actorCtxKey{}).(session.User)
	return user, ok
}

// adminOnly writes the admin-guard refusal. The redirect field mirrors the
// portal's old behavior of bouncing non-admins to the dashboard route.
func adminOnly(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"error":    "admin only",
		"redirect": "/",
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, http.StatusForbidden, payload)
}

// requireAdmin enforces the admin guard; returns false when the response has
// already been written.
func (a *API) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !auth.IsAdmin(r.Context()) {
		adminOnly(w, r)
		return false
	}
	return true
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
