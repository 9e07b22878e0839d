package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aalopez23/county-hr-dashboard/internal/audit"
	"github.com/aalopez23/county-hr-dashboard/internal/bulletin"
)

func (a *API) handleAnnouncementsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := a.bulletins.List(r.Context())
		if err != nil {
			a.handleStorageError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		a.postAnnouncement(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleAnnouncementResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/announcements/")
	id = strings.TrimSuffix(id, "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		a.editAnnouncement(w, r, id)
	case http.MethodDelete:
		a.deleteAnnouncement(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) postAnnouncement(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	actor, ok := a.actor(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session expired")
		return
	}
	var in bulletin.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	ann, err := a.bulletins.Post(r.Context(), actor, in)
	if err != nil {
		a.handleBulletinError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "announcement.posted", map[string]any{
		"announcement_id": ann.ID,
		"priority":        ann.Priority,
	})
	writeJSON(w, http.StatusCreated, ann)
}

func (a *API) editAnnouncement(w http.ResponseWriter, r *http.Request, id string) {
	if !a.requireAdmin(w, r) {
		return
	}
	actor, ok := a.actor(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session expired")
		return
	}
	var in bulletin.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	ann, err := a.bulletins.Edit(r.Context(), actor, id, in)
	if err != nil {
		a.handleBulletinError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "announcement.edited", map[string]any{
		"announcement_id": ann.ID,
	})
	writeJSON(w, http.StatusOK, ann)
}

func (a *API) deleteAnnouncement(w http.ResponseWriter, r *http.Request, id string) {
	if !a.requireAdmin(w, r) {
		return
	}
	actor, ok := a.actor(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session expired")
		return
	}
	if err := a.bulletins.Delete(r.Context(), actor, id); err != nil {
		a.handleBulletinError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "announcement.deleted", map[string]any{
		"announcement_id": id,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleBulletinError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, bulletin.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "announcement not found")
	case errors.Is(err, bulletin.ErrAdminOnly):
		adminOnly(w, r)
	default:
		a.handleStorageError(w, r, err)
	}
}
